package coordinator

import "sync/atomic"

// Generation tags asynchronous work with the view state it was started for.
type Generation uint64

// GenerationGuard is a monotonic counter. Work captured under an older
// generation is discarded on completion.
type GenerationGuard struct {
	n atomic.Uint64
}

// Bump invalidates all outstanding work and returns the new generation.
func (g *GenerationGuard) Bump() Generation {
	return Generation(g.n.Add(1))
}

// Current returns the latest generation without advancing it.
func (g *GenerationGuard) Current() Generation {
	return Generation(g.n.Load())
}

// IsCurrent reports whether gen is still the latest generation.
func (g *GenerationGuard) IsCurrent(gen Generation) bool {
	return g.Current() == gen
}
