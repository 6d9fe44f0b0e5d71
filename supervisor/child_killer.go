package supervisor

import (
	"time"

	"github.com/rs/xid"

	"github.com/wardenproc/warden/chronos"
	"github.com/wardenproc/warden/proc"
)

// TerminateChild initiates shutdown of the named child and returns without
// waiting for the exit. The spec is marked terminating first, so however the
// exit notification races this call, the monitor loop will not restart the
// child.
//
// Shutdown follows the child's [ShutdownOpt]: BrutalKill sends the forced
// signal immediately; Infinity sends only the graceful signal; otherwise the
// graceful signal is sent now and a forced kill is scheduled for when Timeout
// elapses, armed for this incarnation only.
//
// Returns [ErrNotFound] for an unknown ID. A child that is not running is
// only marked terminating.
func (s *Supervisor) TerminateChild(childID string) error {
	s.mu.Lock()
	cs, err := s.children.get(childID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	cs.terminating = true
	pid := cs.pid
	ref := cs.ref
	shutdown := cs.Shutdown
	s.mu.Unlock()

	if pid == 0 {
		return nil
	}

	switch {
	case shutdown.BrutalKill:
		s.signal(childID, pid, proc.SigForced)
	case shutdown.Infinity:
		s.signal(childID, pid, proc.SigGraceful)
	default:
		s.signal(childID, pid, proc.SigGraceful)
		time.AfterFunc(chronos.DurMs(shutdown.Timeout), func() {
			s.escalate(childID, pid, ref)
		})
	}
	return nil
}

// escalate fires when a graceful shutdown's timeout elapses. It re-checks
// that the same incarnation is still registered and that the pid is still
// live before sending the forced kill; a child that exited in the meantime
// makes this a no-op.
func (s *Supervisor) escalate(childID string, pid int, ref xid.ID) {
	s.mu.Lock()
	cs, err := s.children.get(childID)
	live := err == nil && cs.pid == pid && cs.ref == ref
	s.mu.Unlock()
	if !live {
		return
	}

	if ok, err := s.pidExists(int32(pid)); err == nil && !ok {
		return
	}

	s.log.Printf("child %s did not stop within %dms, killing pid %d", childID, cs.Shutdown.Timeout, pid)
	s.signal(childID, pid, proc.SigForced)
}

// signal delivers sig and logs a delivery failure. A signal to an
// already-exited pid is absorbed by the runner and is not a failure.
func (s *Supervisor) signal(childID string, pid int, sig proc.Sig) {
	if err := s.runner.Signal(pid, sig); err != nil {
		s.log.Printf("could not send %v signal to child %s (pid %d): %v", sig, childID, pid, err)
	}
}
