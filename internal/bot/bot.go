// Package bot wires the long-running components of the birthday bot together
// and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Listener receives updates until ctx is cancelled. *tgbot.Bot satisfies it.
type Listener interface {
	Start(ctx context.Context)
}

// ReminderLoop runs the reminder cycle until ctx is cancelled.
type ReminderLoop interface {
	Run(ctx context.Context) error
}

// ErrListenerStopped is returned when the update listener exits on its own.
var ErrListenerStopped = errors.New("telegram listener stopped unexpectedly")

// Bot runs the update listener, the reminder loop and the maintenance
// scheduler, stopping all of them when any one fails.
type Bot struct {
	logger    *slog.Logger
	listener  Listener
	reminders ReminderLoop
	scheduler *Scheduler
}

// NewBot creates a bot from its already configured components.
func NewBot(logger *slog.Logger, listener Listener, reminders ReminderLoop, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		listener:  listener,
		reminders: reminders,
		scheduler: scheduler,
	}
}

// Run blocks until ctx is cancelled or a component fails. Cancellation is a
// clean shutdown and returns nil.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram listener")
		b.listener.Start(gCtx)
		b.logger.Info("Telegram listener stopped")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram listener stopped without context cancellation")
			return ErrListenerStopped
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting reminder loop")
		if err := b.reminders.Run(gCtx); err != nil {
			return fmt.Errorf("reminder loop failed: %w", err)
		}
		b.logger.Info("Reminder loop stopped")
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(gCtx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}
