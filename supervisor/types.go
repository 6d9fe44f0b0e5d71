package supervisor

// Strategy defines how a supervisor responds when a child process exits.
//
// Only [OneForOne] is implemented. The group strategies are defined so that
// configuration written against the full Erlang vocabulary parses, but [New]
// rejects them with [UnsupportedStrategyError] rather than quietly degrading
// them to per-child handling.
type Strategy string

const (
	// OneForOne restarts only the exited child process. Other children are
	// unaffected. This is the default strategy.
	OneForOne Strategy = "one_for_one"

	// OneForAll would stop all children and restart them together when any
	// one exits. Not implemented; rejected by [New].
	OneForAll Strategy = "one_for_all"

	// RestForOne would stop the exited child and every child started after
	// it, then restart them in start order. Not implemented; rejected by [New].
	RestForOne Strategy = "rest_for_one"

	// SimpleOneForOne would manage a dynamic set of identical children.
	// Not implemented; rejected by [New].
	SimpleOneForOne Strategy = "simple_one_for_one"
)

// Restart defines when a child process should be restarted after it exits.
// This is set per-child in the [ChildSpec].
type Restart string

const (
	// Permanent children are always restarted, regardless of exit status.
	// This is the default restart type.
	//
	// Use for long-running services that should always be available.
	Permanent Restart = "permanent"

	// Temporary children are never restarted. The spec stays in the registry
	// with no process behind it once the child exits.
	Temporary Restart = "temporary"

	// Transient children are restarted only if they exit abnormally, that is
	// with a non-zero exit status. A clean exit (status 0) is final.
	//
	// Use for jobs that should complete successfully but retry on failure.
	Transient Restart = "transient"
)

// ShutdownOpt specifies how a child is terminated by [Supervisor.TerminateChild].
//
// Only one of BrutalKill, Infinity, or Timeout should be meaningfully set;
// they are evaluated in that priority order.
//
// Default behavior (zero value is replaced by [NewChildSpec]): 5000ms timeout.
type ShutdownOpt struct {
	// BrutalKill, if true, delivers a forced kill immediately with no chance
	// for the child to clean up. Takes precedence over Timeout and Infinity.
	BrutalKill bool

	// Timeout is the number of milliseconds the child gets to exit after the
	// graceful termination signal. If it is still running when the timeout
	// elapses, it is forcefully killed. Ignored if BrutalKill or Infinity is
	// set; must not be negative.
	Timeout int

	// Infinity, if true, sends only the graceful termination signal and never
	// escalates. The child may in principle run forever.
	//
	// Recommended for children that are themselves supervisors, so their own
	// subtree gets time to shut down.
	Infinity bool
}

// ChildType indicates whether a child is a worker process or another
// supervisor. Informational only; the supervisor does not treat the two
// differently beyond reporting.
type ChildType string

const (
	// SupervisorChild indicates the child process is itself a supervisor.
	// Usually paired with ShutdownOpt{Infinity: true}.
	SupervisorChild ChildType = "supervisor"

	// WorkerChild indicates the child is a leaf worker process. The default.
	WorkerChild ChildType = "worker"
)

// ChildStatus represents the current state of a child process.
// Used in [ChildInfo] returned by [Supervisor.WhichChildren].
type ChildStatus string

const (
	// ChildRunning indicates the child process is currently running.
	ChildRunning ChildStatus = "running"

	// ChildTerminated indicates a deliberate shutdown was initiated via
	// [Supervisor.TerminateChild] and the child is not running.
	ChildTerminated ChildStatus = "terminated"

	// ChildUndefined indicates the child is not running and was not
	// deliberately stopped: it has not started yet, or it exited and was not
	// restarted.
	ChildUndefined ChildStatus = "undefined"
)

// ChildInfo describes one supervised child, as reported by
// [Supervisor.WhichChildren].
type ChildInfo struct {
	ID      string
	PID     int
	Type    ChildType
	Status  ChildStatus
	Restart Restart
}

// ChildCount holds the totals reported by [Supervisor.CountChildren].
type ChildCount struct {
	// Specs is the total number of child specifications in the registry,
	// running or not.
	Specs int

	// Active is the number of children with a live process.
	Active int

	Supervisors int
	Workers     int
}
