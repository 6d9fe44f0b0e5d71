package supervisor

import "fmt"

// registry is the insertion-ordered set of child specs. Order determines
// start order. Callers hold the supervisor mutex; the registry itself does
// no locking.
type registry struct {
	specs []*ChildSpec
}

func newRegistry(specs []ChildSpec) (*registry, error) {
	r := &registry{specs: make([]*ChildSpec, 0, len(specs))}
	for i := range specs {
		cs := specs[i]
		if err := cs.validate(); err != nil {
			return nil, err
		}
		if _, err := r.get(cs.ID); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChild, cs.ID)
		}
		r.specs = append(r.specs, &cs)
	}
	return r, nil
}

func (r *registry) get(childID string) (*ChildSpec, error) {
	for _, child := range r.specs {
		if child.ID == childID {
			return child, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, childID)
}

// findByPID matches a live process only; a spec whose process already exited
// has pid 0 and can never match.
func (r *registry) findByPID(pid int) (*ChildSpec, bool) {
	if pid == 0 {
		return nil, false
	}
	for _, child := range r.specs {
		if child.pid == pid {
			return child, true
		}
	}
	return nil, false
}

// put upserts a spec, keeping the original position when the ID already
// exists and appending otherwise.
func (r *registry) put(cs *ChildSpec) {
	for idx, child := range r.specs {
		if child.ID == cs.ID {
			r.specs[idx] = cs
			return
		}
	}
	r.specs = append(r.specs, cs)
}

func (r *registry) list() []*ChildSpec {
	return r.specs
}
