package supervisor

import (
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/uberbrodt/fungo/fun"
)

// ChildSpecOpt configures a [ChildSpec] at construction.
type ChildSpecOpt func(cs ChildSpec) ChildSpec

func SetArgs(args ...string) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Args = args
		return cs
	}
}

func SetRestart(restart Restart) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Restart = restart
		return cs
	}
}

func SetShutdown(shutdown ShutdownOpt) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Shutdown = shutdown
		return cs
	}
}

func SetChildType(t ChildType) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Type = t
		return cs
	}
}

// NewChildSpec describes one supervised command. Defaults: Permanent restart,
// worker child, 5000ms shutdown timeout.
func NewChildSpec(id string, cmd string, opts ...ChildSpecOpt) ChildSpec {
	cs := ChildSpec{
		ID:       id,
		Cmd:      cmd,
		Restart:  Permanent,
		Shutdown: ShutdownOpt{Timeout: 5_000},
		Type:     WorkerChild,
		restarts: []time.Time{},
	}

	for _, opt := range opts {
		cs = opt(cs)
	}
	return cs
}

// ChildSpec describes a supervised OS process and carries its runtime state.
// The exported fields are fixed at construction; the supervisor owns the rest.
type ChildSpec struct {
	// used to identify the child internally by the Supervisor. Must be unique
	// within one supervisor.
	ID string
	// executable path the child runs
	Cmd string
	// arguments passed to Cmd
	Args     []string
	Restart  Restart
	Shutdown ShutdownOpt
	Type     ChildType

	// pid of the live process, 0 when not running. Replaced on every restart.
	pid int
	// ref identifies one incarnation of the process, so a shutdown escalation
	// armed for an old pid cannot fire on its successor.
	ref xid.ID
	// set once TerminateChild is called; never cleared. A terminating child is
	// not restart-eligible under any policy.
	terminating bool
	// instants at which this child was restarted, pruned to the restart window
	restarts []time.Time
}

func (cs *ChildSpec) IsSupervisor() bool {
	return cs.Type == SupervisorChild
}

func (cs *ChildSpec) IsWorker() bool {
	return !cs.IsSupervisor()
}

func (cs *ChildSpec) validate() error {
	if cs.ID == "" {
		return fmt.Errorf("childspec has no id")
	}
	if cs.Cmd == "" {
		return fmt.Errorf("childspec %s has no command", cs.ID)
	}
	if cs.Shutdown.Timeout < 0 {
		return fmt.Errorf("childspec %s has a negative shutdown timeout", cs.ID)
	}
	switch cs.Restart {
	case Permanent, Transient, Temporary:
	default:
		return fmt.Errorf("childspec %s has unrecognized restart type: %s", cs.ID, cs.Restart)
	}
	return nil
}

// allowsRestart applies the restart type to an exit status.
func (cs *ChildSpec) allowsRestart(status int) bool {
	switch cs.Restart {
	case Permanent:
		return true
	case Temporary:
		return false
	default:
		// transient: only an abnormal exit comes back
		return status != 0
	}
}

// recordRestart notes that the child was restarted at [now]. Called once per
// actual restart, never for a decision that ends in no restart.
func (cs *ChildSpec) recordRestart(now time.Time) {
	cs.restarts = append(cs.restarts, now)
}

// restartsWithinWindow drops restarts that have aged out of [window] and
// returns how many remain. Membership is strict: a restart exactly [window]
// ago no longer counts.
func (cs *ChildSpec) restartsWithinWindow(window time.Duration, now time.Time) int {
	cs.restarts = fun.Filter(cs.restarts, func(t time.Time) bool {
		return now.Sub(t) < window
	})
	return len(cs.restarts)
}

// tooManyRestarts is checked before the would-be restart is recorded, so a
// child gets exactly [max] restarts within a window before it is abandoned.
func (cs *ChildSpec) tooManyRestarts(max int, window time.Duration, now time.Time) bool {
	return cs.restartsWithinWindow(window, now) >= max
}

// shouldRestart is the composite restart decision for one observed exit.
// A terminating child is never restarted, whatever its restart type says.
func (cs *ChildSpec) shouldRestart(status int, max int, window time.Duration, now time.Time) bool {
	if cs.tooManyRestarts(max, window, now) {
		return false
	}
	return cs.allowsRestart(status) && !cs.terminating
}
