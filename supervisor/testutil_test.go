package supervisor

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/wardenproc/warden/proc/procmock"
)

// testLogger records log lines so tests can assert on what the supervisor
// reported.
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) Println(v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintln(v...))
}

func (l *testLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *testLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func (l *testLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// waitResult scripts one return value of the mocked WaitAny.
type waitResult struct {
	pid    int
	status int
	err    error
}

func newTestSup(t *testing.T, runner *procmock.MockRunner, flags SupFlagsS, specs []ChildSpec) (*Supervisor, *testLogger) {
	t.Helper()
	tl := &testLogger{}
	sup, err := New(runner, flags, specs, SetLogger(tl))
	if err != nil {
		t.Fatalf("could not build supervisor: %v", err)
	}
	// keep escalation decisions off host pid state
	sup.pidExists = func(pid int32) (bool, error) { return true, nil }
	return sup, tl
}

func newMockRunner(t *testing.T) *procmock.MockRunner {
	t.Helper()
	ctrl := gomock.NewController(t)
	return procmock.NewMockRunner(ctrl)
}
