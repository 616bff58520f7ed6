// ABOUTME: Blocking launcher for uninstallers and vendor removal tools
// ABOUTME: Waits for every process; only start failures are returned as errors
package launcher

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Launcher starts external processes and waits for them to exit
type Launcher struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Launcher that discards child output
func New() *Launcher {
	return &Launcher{}
}

// Run starts exe with args and blocks until it exits.
// A non-zero exit is reported through the code, not the error.
func (l *Launcher) Run(ctx context.Context, exe string, args ...string) (int, error) {
	return l.wait(ctx, exec.CommandContext(ctx, exe, args...))
}

// RunShell runs a full command line through the system shell and blocks until it exits
func (l *Launcher) RunShell(ctx context.Context, line string) (int, error) {
	return l.wait(ctx, shellCommand(ctx, line))
}

func (l *Launcher) wait(ctx context.Context, cmd *exec.Cmd) (int, error) {
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return -1, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// Succeeded reports whether an installer exit code means the removal went through.
// 3010 and 1641 are the Windows Installer "restart required/initiated" codes.
func Succeeded(code int) bool {
	switch code {
	case 0, 3010, 1641:
		return true
	}
	return false
}
