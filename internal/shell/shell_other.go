//go:build !windows

package shell

import "os/exec"

func defaultShell() string {
	return "/bin/sh"
}

func buildCommand(shell, command string) *exec.Cmd {
	return exec.Command(shell, "-c", command)
}
