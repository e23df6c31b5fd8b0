package body

import "sync/atomic"

// Sequence allocates body identifiers for one simulation session
// Zero value is ready to use, first ID is 0
type Sequence struct {
	next atomic.Uint64
}

// Peek returns the ID the next New call will assign
func (s *Sequence) Peek() ID {
	return ID(s.next.Load())
}

// New builds a body with a fresh ID, panicking on assertion violations
func (s *Sequence) New(spec Spec) *Body {
	b, err := s.Make(spec)
	if err != nil {
		panic(err)
	}
	return b
}

// Make builds a body with a fresh ID
// No ID is consumed when the spec is rejected
func (s *Sequence) Make(spec Spec) (*Body, error) {
	if err := Check(spec); err != nil {
		return nil, err
	}
	return build(ID(s.next.Add(1)-1), spec)
}

// Reissue builds a body that takes over an ID whose previous holder has been destroyed
// Used by merges to keep the followed body's identity stable
func (s *Sequence) Reissue(id ID, spec Spec) (*Body, error) {
	return build(id, spec)
}
