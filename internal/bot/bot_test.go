package bot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type blockingListener struct {
	started atomic.Bool
}

func (l *blockingListener) Start(ctx context.Context) {
	l.started.Store(true)
	<-ctx.Done()
}

type returningListener struct{}

func (returningListener) Start(context.Context) {}

type fakeLoop struct {
	err error
}

func (l fakeLoop) Run(ctx context.Context) error {
	if l.err != nil {
		return l.err
	}
	<-ctx.Done()
	return nil
}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(discard, nil, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	return s
}

func runWithTimeout(t *testing.T, ctx context.Context, b *Bot) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	listener := &blockingListener{}
	b := NewBot(discard, listener, fakeLoop{}, newTestScheduler(t))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	if err := runWithTimeout(t, ctx, b); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if !listener.started.Load() {
		t.Error("listener was not started")
	}
}

func TestBotRunReturnsComponentFailure(t *testing.T) {
	t.Parallel()

	errLoop := errors.New("loop failed")
	tests := []struct {
		name     string
		listener Listener
		loop     ReminderLoop
		want     error
	}{
		{name: "listener exits", listener: returningListener{}, loop: fakeLoop{}, want: ErrListenerStopped},
		{name: "reminder loop fails", listener: &blockingListener{}, loop: fakeLoop{err: errLoop}, want: errLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBot(discard, tt.listener, tt.loop, newTestScheduler(t))
			err := runWithTimeout(t, context.Background(), b)
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}
