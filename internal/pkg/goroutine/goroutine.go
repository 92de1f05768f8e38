package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/regmail/internal/pkg/stacktrace"
)

// ErrPanic is joined into Wait's result when a task panicked.
var ErrPanic = errors.New("goroutine panicked")

// Manager runs functions in goroutines with a fixed concurrency limit.
//
// Go blocks while the limit is reached, so every accepted task eventually
// runs. Errors returned by tasks are collected and reported by Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
	sema chan struct{}
}

// NewManager creates a new Manager. A limit below one is treated as one.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = 1
	}

	return &Manager{sema: make(chan struct{}, limit)}
}

// Go waits for a free slot and runs f in a new goroutine. It returns false,
// without running f, when ctx is done before a slot frees up.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	select {
	case g.sema <- struct{}{}:
	case <-ctx.Done():
		slog.WarnContext(ctx, "goroutine not started", "because", ctx.Err())
		return false
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", stacktrace.InternalFrames(2))
				g.record(fmt.Errorf("%w: %v", ErrPanic, rvr))
			}
		}()

		if err := f(ctx); err != nil {
			g.record(err)
		}
	}()

	return true
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait blocks until all started goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
