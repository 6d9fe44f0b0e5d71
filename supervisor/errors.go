package supervisor

import (
	"errors"
	"fmt"
)

// Errors surfaced by supervisor construction and child management.
// Use [errors.Is] to check for specific conditions.
var (
	// ErrNotFound is returned when a child ID does not exist in the registry.
	// Returned by [Supervisor.TerminateChild] and [Supervisor.StartProcess].
	ErrNotFound = errors.New("child not found")

	// ErrInvalidStrategy is returned by [New] when the strategy is not one of
	// the four named strategies. Construction never defaults a bad strategy.
	ErrInvalidStrategy = errors.New("unrecognized restart strategy")

	// ErrUnsupportedStrategy is returned by [New] for [OneForAll],
	// [RestForOne] and [SimpleOneForOne]: the names are defined but their
	// group-restart semantics are not implemented, and accepting them would
	// silently behave like [OneForOne].
	ErrUnsupportedStrategy = errors.New("restart strategy not implemented")

	// ErrDuplicateChild is returned by [New] when two child specs share an ID.
	ErrDuplicateChild = errors.New("duplicate childspec id")
)

// SpawnError wraps the OS error from a failed process launch with the child
// it was launched for. The child keeps no process handle; there is no
// automatic retry (a child that never started has no exit to react to).
type SpawnError struct {
	ChildID string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start child %s: %v", e.ChildID, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// InvalidStrategyError is returned by [New] for a strategy outside the named
// set. Matches [ErrInvalidStrategy] under [errors.Is].
type InvalidStrategyError struct {
	Strategy Strategy
}

func (e InvalidStrategyError) Error() string {
	return fmt.Sprintf("unrecognized restart strategy: %q", string(e.Strategy))
}

// Unwrap returns [ErrInvalidStrategy] so that [errors.Is] works correctly.
func (e InvalidStrategyError) Unwrap() error {
	return ErrInvalidStrategy
}

// UnsupportedStrategyError is returned by [New] for a named strategy whose
// semantics are not implemented. Matches [ErrUnsupportedStrategy] under
// [errors.Is].
type UnsupportedStrategyError struct {
	Strategy Strategy
}

func (e UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("restart strategy %q is not implemented; only %q is supported", string(e.Strategy), string(OneForOne))
}

// Unwrap returns [ErrUnsupportedStrategy] so that [errors.Is] works correctly.
func (e UnsupportedStrategyError) Unwrap() error {
	return ErrUnsupportedStrategy
}
