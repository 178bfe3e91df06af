//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places c in its own process group so that signalGroup's
// kill reaches every descendant the shell spawns, not just the shell
// itself.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup sends SIGINT to c's process group. A nil return does not mean
// the child is still alive; ESRCH (no such process) is returned as an error
// here and treated as "already exited" by the caller, which falls through
// to an unconditional wait either way.
func signalGroup(c *exec.Cmd) error {
	return syscall.Kill(-c.Process.Pid, syscall.SIGINT)
}
