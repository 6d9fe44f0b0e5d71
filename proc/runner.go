// Package proc is the process control seam between a supervisor and the
// operating system. The [Runner] interface covers the three primitives a
// supervisor needs: spawn a child, wait for any child to exit, and signal a
// child. [OSRunner] binds them to the host OS; tests substitute a mock.
package proc

import "errors"

//go:generate mockgen -source=runner.go -destination=procmock/runner.go -package=procmock

// Sig selects which termination request [Runner.Signal] delivers.
type Sig int

const (
	// SigGraceful asks the child to shut down and gives it a chance to clean
	// up. Maps to SIGTERM on unix.
	SigGraceful Sig = iota

	// SigForced terminates the child without appeal. Maps to SIGKILL on unix.
	SigForced
)

func (s Sig) String() string {
	if s == SigForced {
		return "forced"
	}
	return "graceful"
}

// ErrNoChildren is returned by [Runner.WaitAny] when the calling process has
// no children left to wait for. It is a condition, not a failure; the caller
// decides whether it means "done" or "nothing launched yet".
var ErrNoChildren = errors.New("no child processes to wait for")

// Runner starts, reaps and signals child processes.
//
// Signal must treat an already-exited pid as a no-op: the supervisor's
// shutdown escalation may race a child's own exit and the loser of that race
// must be harmless.
type Runner interface {
	// Spawn starts cmd with args as a child of the current process and
	// returns its pid. The child runs concurrently; Spawn does not wait.
	Spawn(cmd string, args []string) (int, error)

	// WaitAny blocks until any child exits and returns its pid and exit
	// status. Returns [ErrNoChildren] when there is no child to wait for.
	WaitAny() (pid int, status int, err error)

	// Signal sends a termination request to pid.
	Signal(pid int, sig Sig) error
}
