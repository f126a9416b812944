// Stoppable/Startable context

package scontext

import (
	"context"
	"errors"
	"sync"
)

// StartStopContext derives a cancellable context from a parent context.
// It may be started again after being stopped, as long as the parent is alive.
// Safe for concurrent use.
type StartStopContext struct {
	mutex          sync.Mutex
	parentCtx, ctx context.Context
	cancel         context.CancelFunc
}

var (
	ErrRunning       = errors.New("already running")
	ErrStopped       = errors.New("not running")
	ErrParentStopped = errors.New("parent context stopped")
)

func New(ctx context.Context) *StartStopContext {
	return &StartStopContext{
		parentCtx: ctx,
	}
}

// Context returns parent context if not started and cancellable context if
// Start was previously called and was not cancelled using Stop.
func (sc *StartStopContext) Context() context.Context {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.cancel == nil {
		return sc.parentCtx
	}
	return sc.ctx
}

// Start creates a cancellable context and returns it.
// Fails when already started or parent context was cancelled.
func (sc *StartStopContext) Start() (context.Context, error) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.cancel != nil {
		return nil, ErrRunning
	}

	select {
	case <-sc.parentCtx.Done():
		return nil, ErrParentStopped
	default:
	}

	sc.ctx, sc.cancel = context.WithCancel(sc.parentCtx)
	return sc.ctx, nil
}

// Stop cancels the context created by Start.
// Fails if not started or the context is already done.
func (sc *StartStopContext) Stop() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.cancel == nil {
		return ErrStopped
	}

	defer func() { sc.cancel = nil }()
	select {
	case <-sc.ctx.Done():
		sc.cancel()
		return ErrStopped
	default:
	}

	sc.cancel()
	return nil
}

// Running reports whether Start was called and the context is still alive
func (sc *StartStopContext) Running() bool {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.cancel == nil {
		return false
	}
	return sc.ctx.Err() == nil
}
