package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type fakeReconciler struct {
	calls   atomic.Int32
	results []error
	panics  bool
}

func (f *fakeReconciler) RunReconciliationPass(_ context.Context) error {
	n := int(f.calls.Add(1))
	if f.panics && n == 1 {
		panic("unexpected failure")
	}
	if n <= len(f.results) {
		return f.results[n-1]
	}
	return nil
}

func TestScheduler_Run_StopsOnContextCancel(t *testing.T) {
	rec := &fakeReconciler{}
	s := New(rec, newNoopLogger(), 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}
	assert.GreaterOrEqual(t, int(rec.calls.Load()), 2)
}

func TestScheduler_Run_SurvivesPassError(t *testing.T) {
	// Первый проход падает ошибкой, цикл должен продолжиться
	rec := &fakeReconciler{results: []error{errors.New("db error"), nil}}
	s := New(rec, newNoopLogger(), 50*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Пауза после ошибки укорочена до backoff, второй проход успевает
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, int(rec.calls.Load()), 2)
}

func TestScheduler_Run_SurvivesPanic(t *testing.T) {
	rec := &fakeReconciler{panics: true}
	s := New(rec, newNoopLogger(), 50*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler died after panic in reconciliation pass")
	}
	assert.GreaterOrEqual(t, int(rec.calls.Load()), 2)
}

func TestScheduler_runPass_RecoversPanic(t *testing.T) {
	rec := &fakeReconciler{panics: true}
	s := New(rec, newNoopLogger(), time.Hour, time.Minute)

	err := s.runPass(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}
