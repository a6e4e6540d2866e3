package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after all components have started.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers hooks that run once the ready check has passed.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers hooks that run before components are stopped, such as
// flushing trace and metric exporters. They run concurrently.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks in order and stops at the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

// runHooksConcurrently runs every hook to completion and returns the first
// error. One failing hook does not cancel the others.
func runHooksConcurrently(ctx context.Context, hooks []Hook) error {
	var g errgroup.Group
	for i, h := range hooks {
		g.Go(func() error {
			if err := h(ctx); err != nil {
				return fmt.Errorf("hook %d failed: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
