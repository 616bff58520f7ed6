// ABOUTME: Interactive prompt UI functions for user input
// ABOUTME: Handles the single-character confirmation that guards destructive runs
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/suitepurge/suitepurge/internal/config"
)

// ErrUserCancelled is returned when the user declines a confirmation
var ErrUserCancelled = errors.New("cancelled by user")

// Confirm prompts on stdout and reads the answer from stdin
func Confirm(prompt string) (bool, error) {
	return ConfirmFrom(os.Stdin, os.Stdout, prompt)
}

// ConfirmFrom prompts for [y/N] confirmation. Only a single "y" or "Y" confirms;
// anything else, including "yes" or an empty line, declines.
func ConfirmFrom(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if config.YesFlag {
		return true, nil
	}

	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(input), "y"), nil
}
