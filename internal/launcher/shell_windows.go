//go:build windows

package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// shellCommand hands the uninstall string to cmd.exe verbatim; /s keeps its inner quotes intact
func shellCommand(ctx context.Context, line string) *exec.Cmd {
	comspec := os.Getenv("ComSpec")
	if comspec == "" {
		comspec = `C:\Windows\System32\cmd.exe`
	}

	cmd := exec.CommandContext(ctx, comspec)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: fmt.Sprintf(`"%s" /s /c "%s"`, comspec, line),
	}
	return cmd
}
