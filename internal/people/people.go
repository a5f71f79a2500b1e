// Package people is the owner-facing service for tracked birthdays. It
// validates input, persists people through the store and decorates every read
// with the derived age and days-until values.
package people

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/edgard/birthdaybot/internal/birthday"
	"github.com/edgard/birthdaybot/internal/database"
	apperrors "github.com/edgard/birthdaybot/internal/errors"
)

// MinNameLength is the minimum number of characters in a trimmed name.
const MinNameLength = 2

var (
	ErrNameTooShort      = errors.New("name is too short")
	ErrBirthDateFormat   = errors.New("birth date must be in DD.MM.YYYY format")
	ErrBirthDateInFuture = errors.New("birth date is in the future")
	ErrNotFound          = database.ErrNotFound
)

// NewPerson carries already-parsed input for Add.
type NewPerson struct {
	OwnerID   int64     `validate:"required"`
	Name      string    `validate:"required,min=2"`
	BirthDate time.Time `validate:"required"`
}

// Entry is a person together with values derived from today's date.
type Entry struct {
	database.Person
	Age       int
	DaysUntil int
}

// Service implements add, list and delete for a single owner at a time.
type Service struct {
	store    database.Store
	clock    clockwork.Clock
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a Service. A nil clock means the real clock.
func NewService(store database.Store, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		store:    store,
		clock:    clock,
		validate: validator.New(),
		logger:   logger.With("component", "people"),
	}
}

// Today returns the current calendar date.
func (s *Service) Today() time.Time {
	return birthday.Today(s.clock.Now())
}

// ValidateName trims the name and checks its length.
func (s *Service) ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return "", apperrors.NewValidationError("invalid name", ErrNameTooShort)
	}
	return name, nil
}

// ParseBirthDate parses DD.MM.YYYY text and rejects dates after today.
func (s *Service) ParseBirthDate(text string) (time.Time, error) {
	bd, err := birthday.ParseDate(text)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid birth date", errors.Join(ErrBirthDateFormat, err))
	}
	if bd.After(s.Today()) {
		return time.Time{}, apperrors.NewValidationError("invalid birth date", ErrBirthDateInFuture)
	}
	return bd, nil
}

// Add validates and stores a new person. Nothing is written when validation fails.
func (s *Service) Add(ctx context.Context, in NewPerson) (Entry, error) {
	name, err := s.ValidateName(in.Name)
	if err != nil {
		return Entry{}, err
	}
	in.Name = name

	if err := s.validate.Struct(in); err != nil {
		return Entry{}, apperrors.NewValidationError("invalid person", err)
	}
	if in.BirthDate.IsZero() {
		return Entry{}, apperrors.NewValidationError("invalid birth date", ErrBirthDateFormat)
	}

	today := s.Today()
	bd := birthday.Date(in.BirthDate)
	if bd.After(today) {
		return Entry{}, apperrors.NewValidationError("invalid birth date", ErrBirthDateInFuture)
	}

	p := &database.Person{Name: in.Name, BirthDate: bd, OwnerID: in.OwnerID}
	if err := s.store.AddPerson(ctx, p); err != nil {
		return Entry{}, apperrors.NewPersistenceError("failed to add person", err)
	}

	s.logger.InfoContext(ctx, "Person added", "owner_id", p.OwnerID, "person_id", p.ID)
	return s.entry(*p, today), nil
}

// List returns the owner's people sorted by name with derived fields for today.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Entry, error) {
	people, err := s.store.ListPeople(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list people", err)
	}

	today := s.Today()
	entries := make([]Entry, 0, len(people))
	for _, p := range people {
		entries = append(entries, s.entry(p, today))
	}
	return entries, nil
}

// Delete removes one of the owner's people and returns what was removed.
// It returns an error wrapping ErrNotFound if the owner has no such person.
func (s *Service) Delete(ctx context.Context, ownerID, personID int64) (database.Person, error) {
	p, err := s.store.GetPerson(ctx, ownerID, personID)
	if err != nil {
		return database.Person{}, apperrors.NewPersistenceError("failed to find person", err)
	}
	if err := s.store.DeletePerson(ctx, ownerID, personID); err != nil {
		return database.Person{}, apperrors.NewPersistenceError("failed to delete person", err)
	}

	s.logger.InfoContext(ctx, "Person deleted", "owner_id", ownerID, "person_id", personID)
	return *p, nil
}

func (s *Service) entry(p database.Person, today time.Time) Entry {
	return Entry{
		Person:    p,
		Age:       birthday.Age(p.BirthDate, today),
		DaysUntil: birthday.DaysUntil(p.BirthDate, today),
	}
}
