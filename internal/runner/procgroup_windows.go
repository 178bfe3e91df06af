//go:build windows

package runner

import (
	"os/exec"

	"golang.org/x/sys/windows"
)

// setProcessGroup starts c in a new process group (CREATE_NEW_PROCESS_GROUP).
// No job object is created. Not exercised by the (Unix-hosted) test suite;
// see SPEC_FULL.md §6.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &windows.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// signalGroup kills the shell process itself with Process.Kill in place of
// POSIX SIGINT. Processes the shell has spawned are not killed by it.
func signalGroup(c *exec.Cmd) error {
	return c.Process.Kill()
}
