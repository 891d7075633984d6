//go:build windows

package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

func defaultShell() string {
	if comspec := os.Getenv("ComSpec"); comspec != "" {
		return comspec
	}
	return "cmd.exe"
}

// buildCommand passes the command line to cmd.exe verbatim; cmd.exe does its
// own parsing and does not follow the CommandLineToArgvW rules Go quotes for.
func buildCommand(shell, command string) *exec.Cmd {
	base := strings.ToLower(filepath.Base(shell))
	if base != "cmd" && base != "cmd.exe" {
		return exec.Command(shell, "-c", command)
	}

	cmd := exec.Command(shell)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: syscall.EscapeArg(shell) + ` /d /s /c "` + command + `"`,
	}
	return cmd
}
