package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller(t *testing.T) {
	t.Run("runs immediately and on ticks", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(10*time.Millisecond, 0, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})
		go func() {
			p.Start(ctx, true)
			close(done)
		}()

		assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	})
	t.Run("errors do not stop the loop", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(5*time.Millisecond, 0, func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("boom")
		})

		done := make(chan struct{})
		go func() {
			p.Start(t.Context(), false)
			close(done)
		}()

		assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		p.Stop()
		<-done
	})
	t.Run("invocation timeout", func(t *testing.T) {
		deadlines := make(chan time.Duration, 1)
		p := NewPoller(time.Hour, 50*time.Millisecond, func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			deadlines <- time.Until(deadline)
			return nil
		})

		done := make(chan struct{})
		go func() {
			p.Start(t.Context(), true)
			close(done)
		}()

		remaining := <-deadlines
		assert.LessOrEqual(t, remaining, 50*time.Millisecond)
		p.Stop()
		<-done
	})
	t.Run("pending tick after cancellation is not invoked", func(t *testing.T) {
		var calls atomic.Int32
		ctx, cancel := context.WithCancel(t.Context())
		p := NewPoller(time.Millisecond, 0, func(ctx context.Context) error {
			calls.Add(1)
			cancel()
			// a tick is buffered by the time the invocation returns
			time.Sleep(20 * time.Millisecond)
			return nil
		})

		go p.Start(ctx, true)
		p.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("stop is idempotent and wait joins start", func(t *testing.T) {
		release := make(chan struct{})
		var finished atomic.Bool
		p := NewPoller(time.Hour, 0, func(ctx context.Context) error {
			<-release
			finished.Store(true)
			return nil
		})

		go p.Start(t.Context(), true)
		p.Stop()
		p.Stop()

		waited := make(chan struct{})
		go func() {
			p.Wait()
			close(waited)
		}()

		select {
		case <-waited:
			t.Fatal("wait returned while an invocation was running")
		case <-time.After(20 * time.Millisecond):
		}

		close(release)
		<-waited
		assert.True(t, finished.Load())
	})
}
