package slow

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// LatencyGenerator produces the delays injected by a slow filesystem.
// Implementations must be safe for concurrent use.
type LatencyGenerator interface {
	// NextLatency draws the next delay.
	NextLatency() time.Duration

	// Sleep blocks for the next delay.
	Sleep()
}

// normalLatency draws delays from a normal distribution with a standard
// deviation of a tenth of the mean, clamped at zero.
type normalLatency struct {
	average time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLatencyGenerator returns a generator drawing from a normal
// distribution around average. The same seed always yields the same
// sequence.
func NewLatencyGenerator(average time.Duration, seed uint64) LatencyGenerator {
	return &normalLatency{
		average: average,
		rng:     rand.New(rand.NewPCG(seed, seed)),
	}
}

// NewRandomLatencyGenerator returns a generator seeded from the runtime's
// random source.
func NewRandomLatencyGenerator(average time.Duration) LatencyGenerator {
	return NewLatencyGenerator(average, rand.Uint64())
}

func (g *normalLatency) NextLatency() time.Duration {
	g.mu.Lock()
	sample := g.rng.NormFloat64()
	g.mu.Unlock()

	mean := float64(g.average)
	d := time.Duration(mean + sample*mean*0.1)
	return max(d, 0)
}

func (g *normalLatency) Sleep() {
	time.Sleep(g.NextLatency())
}

// FixedLatency is a generator that always returns the same delay.
type FixedLatency time.Duration

// NextLatency returns the fixed delay.
func (f FixedLatency) NextLatency() time.Duration {
	return time.Duration(f)
}

// Sleep blocks for the fixed delay.
func (f FixedLatency) Sleep() {
	time.Sleep(time.Duration(f))
}

// CountingLatency wraps a generator and counts how many delays were drawn.
type CountingLatency struct {
	LatencyGenerator
	n atomic.Int64
}

// NewCountingLatency wraps gen.
func NewCountingLatency(gen LatencyGenerator) *CountingLatency {
	return &CountingLatency{LatencyGenerator: gen}
}

// NextLatency draws from the wrapped generator and counts the draw.
func (c *CountingLatency) NextLatency() time.Duration {
	c.n.Add(1)
	return c.LatencyGenerator.NextLatency()
}

// Sleep blocks for the next delay.
func (c *CountingLatency) Sleep() {
	time.Sleep(c.NextLatency())
}

// Count returns the number of delays drawn so far.
func (c *CountingLatency) Count() int64 {
	return c.n.Load()
}
