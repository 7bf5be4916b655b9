// Package backoff implements jittered exponential backoff.
//
// The pool itself never retries anything: submission errors are
// synchronous and its timeout contract is one-shot. This package is
// used by cmd/poolctl to retry a submission rejected with
// ErrShuttingDown during a rolling-restart demo.
package backoff

import (
	"math/rand"
	"time"
)

// Backoff produces a jittered, exponentially increasing sequence of
// durations. The base duration doubles from initial up to max, and each
// returned value lies between half the base and the base.
type Backoff struct {
	initial time.Duration
	max     time.Duration
	seed    int64
	attempt int
	rng     *rand.Rand
}

// New returns a Backoff seeded from seed, starting at initial and
// never exceeding max.
func New(initial, max time.Duration, seed int64) *Backoff {
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	if max <= 0 || max < initial {
		max = initial
	}
	return &Backoff{initial: initial, max: max, seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next backoff duration and advances the sequence.
func (b *Backoff) Next() time.Duration {
	d := b.initial << uint(b.attempt)
	if d <= 0 || d > b.max {
		d = b.max
	}
	b.attempt++
	jitter := time.Duration(b.rng.Int63n(int64(d)/2 + 1))
	return d/2 + jitter
}

// Reset restarts the sequence at its initial duration and reseeds the
// jitter source, so the values that follow match a fresh Backoff built
// with the same seed.
func (b *Backoff) Reset() {
	b.attempt = 0
	b.rng = rand.New(rand.NewSource(b.seed))
}
