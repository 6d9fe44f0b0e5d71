package supervisor

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/wardenproc/warden/chronos"
	"github.com/wardenproc/warden/proc"
)

// how often the monitor loop re-checks the wait primitive while nothing has
// been started yet
var monitorPollInterval = chronos.Dur("100ms")

// SupFlagsS configures supervisor behavior: the restart strategy and the
// per-child restart rate limit.
//
// Create using [NewSupFlags] with functional options:
//
//	flags := supervisor.NewSupFlags(
//		supervisor.SetIntensity(3),
//		supervisor.SetPeriod(10),
//	)
type SupFlagsS struct {
	// Strategy determines which children to restart when one exits. Only
	// [OneForOne] is accepted by [New].
	Strategy Strategy

	// Period is the time window in seconds for counting restarts. Restarts
	// older than Period seconds do not count toward Intensity. Each child
	// has its own restart history evaluated against the shared limits.
	//
	// Default: 5 seconds
	Period int

	// Intensity is the maximum number of restarts allowed per child within
	// Period seconds. A child that already restarted Intensity times within
	// the window is abandoned on its next failure: the exit is logged and the
	// child is never restarted again.
	//
	// Default: 1
	Intensity int
}

// SupFlag is a functional option for configuring [SupFlagsS].
type SupFlag func(flags SupFlagsS) SupFlagsS

// SetStrategy sets the supervisor's restart strategy.
func SetStrategy(strategy Strategy) SupFlag {
	return func(flags SupFlagsS) SupFlagsS {
		flags.Strategy = strategy
		return flags
	}
}

// SetPeriod sets the restart evaluation window in seconds.
func SetPeriod(period int) SupFlag {
	return func(flags SupFlagsS) SupFlagsS {
		flags.Period = period
		return flags
	}
}

// SetIntensity sets the maximum number of restarts allowed per child within
// the period.
func SetIntensity(intensity int) SupFlag {
	return func(flags SupFlagsS) SupFlagsS {
		flags.Intensity = intensity
		return flags
	}
}

// NewSupFlags creates supervisor flags with the given options.
//
// Default values:
//   - Strategy: [OneForOne]
//   - Period: 5 seconds
//   - Intensity: 1 restart
func NewSupFlags(flags ...SupFlag) SupFlagsS {
	f := SupFlagsS{
		Strategy:  OneForOne,
		Period:    5,
		Intensity: 1,
	}

	for _, x := range flags {
		f = x(f)
	}
	return f
}

// Opt configures a [Supervisor] at construction.
type Opt func(s *Supervisor)

// SetLogger routes the supervisor's log records to l instead of the default
// stdout logger.
func SetLogger(l ILogger) Opt {
	return func(s *Supervisor) {
		s.log = l
	}
}

// Supervisor launches the child processes in its registry, waits for their
// exits on [Supervisor.Monitor], and restarts them according to each child's
// restart type and the shared rate limit.
//
// Monitor is a blocking sequential loop meant to run on its own goroutine;
// [Supervisor.TerminateChild] and [Supervisor.StartNewChild] may be called
// concurrently from other goroutines. One mutex guards the registry and all
// per-child runtime state, which is what makes a TerminateChild racing an
// exit notification safe: the terminating flag is visible before the exit is
// dispatched.
type Supervisor struct {
	runner proc.Runner
	log    ILogger
	flags  SupFlagsS

	mu       sync.Mutex
	children *registry
	started  bool

	// liveness probe used before an escalated kill; swapped in tests
	pidExists func(pid int32) (bool, error)
}

// New validates flags and specs and builds a supervisor. No process is
// spawned until [Supervisor.Start].
//
// Construction fails if:
//   - the strategy is not one of the four named strategies ([ErrInvalidStrategy])
//   - the strategy is a named group strategy, which this supervisor does not
//     implement ([ErrUnsupportedStrategy])
//   - two specs share an ID ([ErrDuplicateChild]) or a spec fails validation
func New(runner proc.Runner, flags SupFlagsS, specs []ChildSpec, opts ...Opt) (*Supervisor, error) {
	switch flags.Strategy {
	case OneForOne:
	case OneForAll, RestForOne, SimpleOneForOne:
		return nil, UnsupportedStrategyError{Strategy: flags.Strategy}
	default:
		return nil, InvalidStrategyError{Strategy: flags.Strategy}
	}

	children, err := newRegistry(specs)
	if err != nil {
		return nil, err
	}

	s := &Supervisor{
		runner:    runner,
		log:       defaultLogger(),
		flags:     flags,
		children:  children,
		pidExists: process.PidExists,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start spawns every registered child in registry order and marks the
// supervisor as started. It returns once the processes are launched; it does
// not wait for any of them to finish. The first spawn failure propagates.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cs := range s.children.list() {
		if err := s.startProcess(cs); err != nil {
			return err
		}
	}
	s.started = true
	return nil
}

// StartProcess spawns a new process for the named child and stores its pid on
// the spec. Fails with [ErrNotFound] for an unknown ID and propagates spawn
// failures, leaving the spec with no process.
func (s *Supervisor) StartProcess(childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, err := s.children.get(childID)
	if err != nil {
		return err
	}
	return s.startProcess(cs)
}

// startProcess spawns cs and installs the new pid and incarnation ref.
// Callers hold s.mu.
func (s *Supervisor) startProcess(cs *ChildSpec) error {
	pid, err := s.runner.Spawn(cs.Cmd, cs.Args)
	if err != nil {
		return &SpawnError{ChildID: cs.ID, Err: err}
	}
	cs.pid = pid
	cs.ref = xid.New()
	s.log.Printf("Started %s with pid %d", cs.ID, pid)
	return nil
}

// StartNewChild registers spec and immediately starts it. An existing spec
// with the same ID is replaced; its position in the start order is kept.
func (s *Supervisor) StartNewChild(spec ChildSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cs := spec
	s.children.put(&cs)
	return s.startProcess(&cs)
}

// Monitor blocks waiting for child exits and dispatches each one, in the
// order the OS reports them. It returns only when the wait primitive reports
// no children left after [Supervisor.Start] has completed; before that a
// no-children report just means nothing has been launched yet, so the loop
// keeps waiting.
func (s *Supervisor) Monitor() {
	for {
		pid, status, err := s.runner.WaitAny()
		if err != nil {
			if !errors.Is(err, proc.ErrNoChildren) {
				s.log.Printf("wait for child exits failed: %v", err)
			} else if s.hasStarted() {
				return
			}
			time.Sleep(monitorPollInterval)
			continue
		}
		s.handleFinishedProcess(pid, status)
	}
}

func (s *Supervisor) hasStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// handleFinishedProcess applies the restart decision to one observed exit.
// An exit that matches no live child is ignored; the OS may report processes
// the supervisor never owned.
func (s *Supervisor) handleFinishedProcess(pid int, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.children.findByPID(pid)
	if !ok {
		return
	}

	now := chronos.Now("")
	if cs.shouldRestart(status, s.flags.Intensity, s.window(), now) {
		cs.recordRestart(now)
		if err := s.startProcess(cs); err != nil {
			cs.pid = 0
			s.log.Printf("could not restart %s: %v", cs.ID, err)
		}
		return
	}

	cs.pid = 0
	s.log.Printf("%s child %s finished and will not be restarted", capitalize(string(cs.Restart)), cs.ID)
}

func (s *Supervisor) window() time.Duration {
	return chronos.DurSecs(s.flags.Period)
}

// WhichChildren reports every registered child and its current status.
func (s *Supervisor) WhichChildren() []ChildInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]ChildInfo, 0, len(s.children.list()))
	for _, cs := range s.children.list() {
		infos = append(infos, ChildInfo{
			ID:      cs.ID,
			PID:     cs.pid,
			Type:    cs.Type,
			Status:  childStatus(cs),
			Restart: cs.Restart,
		})
	}
	return infos
}

// CountChildren reports registry totals by status and child type.
func (s *Supervisor) CountChildren() ChildCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count ChildCount
	for _, cs := range s.children.list() {
		count.Specs++
		if cs.pid != 0 {
			count.Active++
		}
		if cs.IsSupervisor() {
			count.Supervisors++
		} else {
			count.Workers++
		}
	}
	return count
}

func childStatus(cs *ChildSpec) ChildStatus {
	switch {
	case cs.pid != 0:
		return ChildRunning
	case cs.terminating:
		return ChildTerminated
	default:
		return ChildUndefined
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
