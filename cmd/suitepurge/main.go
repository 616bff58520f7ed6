// ABOUTME: Entry point for the suitepurge CLI tool
// ABOUTME: Initializes and executes the root command
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/suitepurge/suitepurge/internal/commands"
	"github.com/suitepurge/suitepurge/internal/ui"
)

var version = "dev" // Injected at build time via -ldflags

func main() {
	commands.SetVersion(version)

	if err := commands.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err))
		os.Exit(1)
	}
}
