// Package rng provides the engine's single seeded pseudo-random source. The
// kernel never lets subsystems seed their own generator: every draw goes
// through the one instance handed out via the tick context, so that two
// runs with the same seed and the same system list produce identical
// draws forever.
//
// The generator is xoshiro256**, chosen because its entire state is four
// uint64 words with no hidden fields, which lets Source.State round-trip
// through the opaque "rng_state" list in a snapshot exactly. Restoring a
// snapshot on a different PRNG implementation will not reproduce the same
// draws; implementations sharing state must also share this algorithm.
package rng

import "math/rand"

// Source is a xoshiro256** generator satisfying rand.Source64.
type Source struct {
	s [4]uint64
}

// NewSource seeds a generator from a single 64-bit seed using SplitMix64 to
// fill the initial 256 bits of state, the standard way to seed
// xoshiro-family generators from a short seed.
func NewSource(seed int64) *Source {
	src := &Source{}
	src.Seed(seed)
	return src
}

// Seed reseeds the generator deterministically from seed.
func (s *Source) Seed(seed int64) {
	sm := uint64(seed)
	next := func() uint64 {
		sm += 0x9E3779B97F4A7C15
		z := sm
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
	for i := range s.s {
		s.s[i] = next()
	}
}

func rotl(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// Uint64 returns the next 64-bit draw and advances the state.
func (s *Source) Uint64() uint64 {
	result := rotl(s.s[1]*5, 7) * 9

	t := s.s[1] << 17
	s.s[2] ^= s.s[0]
	s.s[3] ^= s.s[1]
	s.s[1] ^= s.s[2]
	s.s[0] ^= s.s[3]
	s.s[2] ^= t
	s.s[3] = rotl(s.s[3], 45)

	return result
}

// Int63 implements rand.Source.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// State returns a copy of the generator's internal state as an opaque list
// of four unsigned integers, suitable for embedding in a snapshot.
func (s *Source) State() []uint64 {
	return []uint64{s.s[0], s.s[1], s.s[2], s.s[3]}
}

// SetState installs a previously captured state. It is the caller's
// responsibility to supply exactly four words; a short or malformed slice
// is rejected rather than silently zero-padded.
func (s *Source) SetState(state []uint64) error {
	if len(state) != 4 {
		return errInvalidState
	}
	copy(s.s[:], state)
	return nil
}

var errInvalidState = stateError("rng: state must have exactly 4 words")

type stateError string

func (e stateError) Error() string { return string(e) }

// New wraps a Source in a *rand.Rand, the type every subsystem actually
// draws from via the tick context.
func New(seed int64) *rand.Rand {
	return rand.New(NewSource(seed))
}

// FromState reconstructs a *rand.Rand and its underlying Source from a
// snapshot's opaque state list. The seed argument only matters if state is
// empty (fresh generator); otherwise state fully determines future draws.
func FromState(seed int64, state []uint64) (*rand.Rand, *Source, error) {
	src := NewSource(seed)
	if len(state) > 0 {
		if err := src.SetState(state); err != nil {
			return nil, nil, err
		}
	}
	return rand.New(src), src, nil
}
