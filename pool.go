package graphviz

import (
	"context"
	"runtime"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer can run.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent renderer processes.
	MaxPoolSize = 16
)

// RenderPool bounds how many renderer processes run at the same time.
// It is a counting semaphore; the zero value is not usable, use NewRenderPool.
type RenderPool struct {
	slots chan struct{}
}

// NewRenderPool creates a pool allowing n concurrent renders (at least one).
func NewRenderPool(n int) *RenderPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &RenderPool{slots: make(chan struct{}, n)}
}

// Acquire takes a slot, blocking until one is free or ctx is done.
func (p *RenderPool) Acquire(ctx context.Context) error {
	// Fast path: a done context never gets a slot, even if one is free.
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case p.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (p *RenderPool) Release() {
	<-p.slots
}

// Size returns the pool capacity.
func (p *RenderPool) Size() int {
	return cap(p.slots)
}

// ResolvePoolSize determines the number of concurrent renders.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in containers).
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
