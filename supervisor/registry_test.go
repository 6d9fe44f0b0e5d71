package supervisor

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNewRegistry_RejectsDuplicateIDs(t *testing.T) {
	_, err := newRegistry([]ChildSpec{
		NewChildSpec("one", "/bin/true"),
		NewChildSpec("two", "/bin/true"),
		NewChildSpec("one", "/bin/false"),
	})

	assert.Assert(t, errors.Is(err, ErrDuplicateChild))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, err := newRegistry([]ChildSpec{NewChildSpec("one", "/bin/true")})
	assert.NilError(t, err)

	_, err = r.get("nope")
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_PutKeepsInsertionOrder(t *testing.T) {
	r, err := newRegistry([]ChildSpec{
		NewChildSpec("a", "/bin/true"),
		NewChildSpec("b", "/bin/true"),
		NewChildSpec("c", "/bin/true"),
	})
	assert.NilError(t, err)

	replacement := NewChildSpec("b", "/bin/other")
	r.put(&replacement)
	appended := NewChildSpec("d", "/bin/true")
	r.put(&appended)

	var ids []string
	for _, cs := range r.list() {
		ids = append(ids, cs.ID)
	}
	assert.DeepEqual(t, ids, []string{"a", "b", "c", "d"})

	b, err := r.get("b")
	assert.NilError(t, err)
	assert.Equal(t, b.Cmd, "/bin/other")
}

func TestRegistry_FindByPIDIgnoresDeadSpecs(t *testing.T) {
	r, err := newRegistry([]ChildSpec{
		NewChildSpec("a", "/bin/true"),
		NewChildSpec("b", "/bin/true"),
	})
	assert.NilError(t, err)

	a, _ := r.get("a")
	a.pid = 4242

	got, ok := r.findByPID(4242)
	assert.Assert(t, ok)
	assert.Equal(t, got.ID, "a")

	// specs without a live process have pid 0 and must never match a
	// wait result for pid 0
	_, ok = r.findByPID(0)
	assert.Assert(t, !ok)

	a.pid = 0
	_, ok = r.findByPID(4242)
	assert.Assert(t, !ok)
}
