package test

import (
	"context"
	"errors"

	"go.uber.org/fx"
)

// LifecycleRecorder collects fx hooks so tests can start and stop components by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs OnStart hooks in registration order and stops at the first failure.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs OnStop hooks in reverse order, like fx does, and joins their errors.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	var errs []error
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		if l.Hooks[i].OnStop == nil {
			continue
		}
		if err := l.Hooks[i].OnStop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShutdownerStub signals Called once per shutdown request without blocking.
type ShutdownerStub struct {
	Called chan struct{}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
