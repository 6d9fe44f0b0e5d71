//go:build unix

package proc

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// OSRunner is the unix [Runner]. Children are real OS processes started in
// their own process group; reaping goes through wait4(-1) so a single
// supervisor loop observes every child, in the order the kernel reports them.
type OSRunner struct{}

func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Spawn starts cmd in a new process group with stdout/stderr inherited.
//
// The returned pid is reaped by [OSRunner.WaitAny], never by [exec.Cmd.Wait],
// so the Cmd handle is released here and not retained.
func (r *OSRunner) Spawn(cmd string, args []string) (int, error) {
	c := exec.Command(cmd, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := c.Start(); err != nil {
		return 0, err
	}
	pid := c.Process.Pid
	_ = c.Process.Release()
	return pid, nil
}

// WaitAny blocks in wait4(-1) until a child exits. ECHILD becomes
// [ErrNoChildren]; EINTR is retried.
func (r *OSRunner) WaitAny() (int, int, error) {
	var ws syscall.WaitStatus
	for {
		pid, err := syscall.Wait4(-1, &ws, 0, nil)
		switch {
		case errors.Is(err, syscall.EINTR):
			continue
		case errors.Is(err, syscall.ECHILD):
			return 0, 0, ErrNoChildren
		case err != nil:
			return 0, 0, err
		}
		return pid, exitStatus(ws), nil
	}
}

// Signal delivers SIGTERM or SIGKILL to pid. A pid that no longer exists is
// not an error; the escalation timer is expected to lose races with exits.
func (r *OSRunner) Signal(pid int, sig Sig) error {
	s := syscall.SIGTERM
	if sig == SigForced {
		s = syscall.SIGKILL
	}
	err := syscall.Kill(pid, s)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}

// A signal death has no exit code from the kernel; report it shell-style as
// 128+signo so it reads as an abnormal exit.
func exitStatus(ws syscall.WaitStatus) int {
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}
