// Package reminder runs the recurring scan that notifies owners the day
// before a tracked birthday.
//
// Each tick lists every person, keeps those whose birthday is LeadDays away,
// groups them by owner and sends one message per person to owners in the
// reachability set. The first failed delivery evicts the owner and ends that
// owner's batch for the tick. There is no record of sent reminders, so
// delivery is at-least-once: an owner may be reminded on every tick of the
// eligible day.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/edgard/birthdaybot/internal/birthday"
	"github.com/edgard/birthdaybot/internal/database"
	apperrors "github.com/edgard/birthdaybot/internal/errors"
	"github.com/edgard/birthdaybot/internal/reachability"
)

// Defaults for Config fields left at zero.
const (
	DefaultInterval         = time.Hour
	DefaultRecoveryInterval = time.Minute
	DefaultLeadDays         = 1
)

// PersonLister lists every tracked person across all owners.
type PersonLister interface {
	ListAllPeople(ctx context.Context) ([]database.Person, error)
}

// Notifier delivers a text message to an owner.
type Notifier interface {
	Notify(ctx context.Context, ownerID int64, text string) error
}

// Config controls the scan cadence.
type Config struct {
	Interval         time.Duration
	RecoveryInterval time.Duration
	LeadDays         int
}

// Report summarises one tick.
type Report struct {
	Due           int
	Sent          int
	SkippedOwners []int64
	FailedOwners  []int64
}

// Scheduler is the reminder loop.
type Scheduler struct {
	people    PersonLister
	notifier  Notifier
	reachable *reachability.Set
	composer  *Composer
	clock     clockwork.Clock
	cfg       Config
	logger    *slog.Logger
}

// NewScheduler creates a Scheduler. A nil clock means the real clock.
func NewScheduler(
	people PersonLister,
	notifier Notifier,
	reachable *reachability.Set,
	composer *Composer,
	clock clockwork.Clock,
	cfg Config,
	logger *slog.Logger,
) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = DefaultRecoveryInterval
	}
	if cfg.LeadDays <= 0 {
		cfg.LeadDays = DefaultLeadDays
	}
	return &Scheduler{
		people:    people,
		notifier:  notifier,
		reachable: reachable,
		composer:  composer,
		clock:     clock,
		cfg:       cfg,
		logger:    logger.With("component", "reminder"),
	}
}

// Run scans immediately and then once per Interval until ctx is cancelled.
// A failed or panicking tick is retried after RecoveryInterval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Reminder loop started",
		"interval", s.cfg.Interval, "recovery_interval", s.cfg.RecoveryInterval, "lead_days", s.cfg.LeadDays)

	for {
		wait := s.cfg.Interval

		report, err := s.safeTick(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "Reminder tick failed", "error", err, "code", apperrors.Code(err), "retry_in", s.cfg.RecoveryInterval)
			wait = s.cfg.RecoveryInterval
		} else if report.Due > 0 {
			s.logger.InfoContext(ctx, "Reminder tick completed",
				"due", report.Due, "sent", report.Sent,
				"skipped_owners", len(report.SkippedOwners), "failed_owners", len(report.FailedOwners))
		}

		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Reminder loop stopped")
			return nil
		case <-s.clock.After(wait):
		}
	}
}

func (s *Scheduler) safeTick(ctx context.Context) (report Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewUnexpectedError(fmt.Sprintf("reminder tick panicked: %v", r), nil)
		}
	}()
	return s.Tick(ctx)
}

// Tick performs a single scan. Delivery failures are handled per owner and
// never returned; only a failure to list people is.
func (s *Scheduler) Tick(ctx context.Context) (Report, error) {
	var report Report

	all, err := s.people.ListAllPeople(ctx)
	if err != nil {
		return report, apperrors.NewPersistenceError("failed to list people for reminders", err)
	}

	today := birthday.Today(s.clock.Now())
	owners, due := s.groupDue(all, today)
	for _, people := range due {
		report.Due += len(people)
	}

	for _, ownerID := range owners {
		if !s.reachable.Contains(ownerID) {
			s.logger.DebugContext(ctx, "Skipping reminders for unreachable owner", "owner_id", ownerID)
			report.SkippedOwners = append(report.SkippedOwners, ownerID)
			continue
		}

		for _, p := range due[ownerID] {
			text := s.composer.Compose(ctx, p, today)
			if err := s.notifier.Notify(ctx, ownerID, text); err != nil {
				derr := apperrors.NewDeliveryError(fmt.Sprintf("failed to remind owner %d", ownerID), err)
				s.logger.WarnContext(ctx, "Reminder delivery failed, marking owner unreachable",
					"owner_id", ownerID, "person_id", p.ID, "error", derr)
				s.reachable.Remove(ownerID)
				report.FailedOwners = append(report.FailedOwners, ownerID)
				break
			}
			report.Sent++
			s.logger.InfoContext(ctx, "Reminder sent", "owner_id", ownerID, "person_id", p.ID)
		}
	}

	return report, nil
}

// groupDue keeps the people whose birthday is LeadDays away and groups them
// by owner. Owners are returned in order of first appearance.
func (s *Scheduler) groupDue(all []database.Person, today time.Time) ([]int64, map[int64][]database.Person) {
	var owners []int64
	due := make(map[int64][]database.Person)

	for _, p := range all {
		if birthday.DaysUntil(p.BirthDate, today) != s.cfg.LeadDays {
			continue
		}
		if _, seen := due[p.OwnerID]; !seen {
			owners = append(owners, p.OwnerID)
		}
		due[p.OwnerID] = append(due[p.OwnerID], p)
	}
	return owners, due
}
