package events

import "sync/atomic"

// Sequence hands out monotonically increasing event IDs. It is seeded once at
// startup from the highest ID already persisted so that IDs keep increasing
// across restarts.
type Sequence struct {
	next atomic.Int64
}

// NewSequence returns a sequence whose first ID is 1.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.next.Store(1)
	return s
}

// InitAutoId sets the next ID to be returned by Next.
func (s *Sequence) InitAutoId(seed int) {
	s.next.Store(int64(seed))
}

// Next allocates and returns the next unused ID.
func (s *Sequence) Next() int {
	return int(s.next.Add(1) - 1)
}

// Peek returns the ID the following call to Next will return.
func (s *Sequence) Peek() int {
	return int(s.next.Load())
}
