// internal/effect/set.go
package effect

// Set holds the active power-ups of one session. Every mutation bumps the
// version so cached aggregates are dropped.
type Set struct {
	items   []PowerUp
	version uint64
	nextID  uint64
	nextSeq uint64
	cache   Cache
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{nextID: 1, nextSeq: 1}
}

// Activate adds p, assigning a fresh ID when p.ID is zero and the next
// activation sequence. Immediate power-ups are not kept. The stored copy is
// returned.
func (s *Set) Activate(p PowerUp) PowerUp {
	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	p.Seq = s.nextSeq
	s.nextSeq++
	if p.Duration.Kind == Waves && p.WavesRemaining == 0 {
		p.WavesRemaining = p.Duration.Waves
	}
	if p.Expired() {
		return p
	}
	s.items = append(s.items, p)
	s.version++
	return p
}

// Restore reinstates power-ups from a snapshot, keeping their IDs, sequence
// numbers and counters.
func (s *Set) Restore(items []PowerUp) {
	s.items = s.items[:0]
	for _, p := range items {
		if p.Expired() {
			continue
		}
		s.items = append(s.items, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		if p.Seq >= s.nextSeq {
			s.nextSeq = p.Seq + 1
		}
	}
	s.version++
}

// CompleteWave decrements every wave-limited power-up exactly once and drops
// the ones that reached zero. The removed entries are returned.
func (s *Set) CompleteWave() []PowerUp {
	var expired []PowerUp
	kept := s.items[:0]
	for _, p := range s.items {
		if p.Duration.Kind == Waves {
			p.WavesRemaining--
		}
		if p.Expired() {
			expired = append(expired, p)
			continue
		}
		kept = append(kept, p)
	}
	s.items = kept
	s.version++
	return expired
}

// Active returns a copy of the active power-ups in activation order.
func (s *Set) Active() []PowerUp {
	out := make([]PowerUp, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of active power-ups.
func (s *Set) Len() int {
	return len(s.items)
}

// Version changes whenever the active set changes.
func (s *Set) Version() uint64 {
	return s.version
}

// Aggregate returns the cached aggregate for t.
func (s *Set) Aggregate(t EffectType) float64 {
	return s.cache.Get(s.version, s.items, t)
}

// Multiplier returns 1 + Aggregate(t).
func (s *Set) Multiplier(t EffectType) float64 {
	return 1 + s.Aggregate(t)
}
