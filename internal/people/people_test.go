package people

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/edgard/birthdaybot/internal/database"
	apperrors "github.com/edgard/birthdaybot/internal/errors"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestService(t *testing.T, now time.Time) (*Service, database.Store) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "people.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	store := database.NewStore(db, discard)
	return NewService(store, clockwork.NewFakeClockAt(now), discard), store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, clockwork.NewFakeClock(), discard)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Alice", want: "Alice"},
		{in: "  Bo  ", want: "Bo"},
		{in: "Ян", want: "Ян"},
		{in: "A", wantErr: true},
		{in: "   A ", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := svc.ValidateName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrNameTooShort) {
				t.Errorf("ValidateName(%q) error = %v, want ErrNameTooShort", tc.in, err)
			}
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Errorf("ValidateName(%q) error code = %s", tc.in, apperrors.Code(err))
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ValidateName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestParseBirthDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 14, 18, 30, 0, 0, time.UTC)
	svc := NewService(nil, clockwork.NewFakeClockAt(now), discard)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr error
	}{
		{name: "valid", in: "15.03.1990", want: date(1990, time.March, 15)},
		{name: "today", in: "14.03.2024", want: date(2024, time.March, 14)},
		{name: "tomorrow", in: "15.03.2024", wantErr: ErrBirthDateInFuture},
		{name: "iso format", in: "1990-03-15", wantErr: ErrBirthDateFormat},
		{name: "impossible day", in: "31.02.1990", wantErr: ErrBirthDateFormat},
		{name: "garbage", in: "soon", wantErr: ErrBirthDateFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.ParseBirthDate(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseBirthDate(%q) error = %v, want %v", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBirthDate(%q) error = %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseBirthDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC))

	entry, err := svc.Add(ctx, NewPerson{OwnerID: 1, Name: "  Alice ", BirthDate: date(1990, time.March, 15)})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if entry.Name != "Alice" || entry.Age != 33 || entry.DaysUntil != 1 {
		t.Errorf("Add() = %+v, want Alice age 33 in 1 day", entry)
	}

	if _, err := svc.Add(ctx, NewPerson{OwnerID: 2, Name: "Bob", BirthDate: date(2000, time.January, 1)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	first, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("List() returned %d and %d entries, want 1", len(first), len(second))
	}
	if first[0].Age != second[0].Age || first[0].DaysUntil != second[0].DaysUntil {
		t.Errorf("List() is not idempotent: %+v vs %+v", first[0], second[0])
	}
}

func TestAddRejectsFutureBirthDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, store := newTestService(t, time.Date(2024, time.March, 14, 23, 59, 0, 0, time.UTC))

	_, err := svc.Add(ctx, NewPerson{OwnerID: 1, Name: "Future", BirthDate: date(2024, time.March, 15)})
	if !errors.Is(err, ErrBirthDateInFuture) {
		t.Fatalf("Add() error = %v, want ErrBirthDateInFuture", err)
	}
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("Add() error code = %s, want VALIDATION", apperrors.Code(err))
	}

	all, err := store.ListAllPeople(ctx)
	if err != nil {
		t.Fatalf("ListAllPeople() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("rejected Add() left %d records behind", len(all))
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		in   NewPerson
	}{
		{name: "short name", in: NewPerson{OwnerID: 1, Name: "A", BirthDate: date(1990, time.March, 15)}},
		{name: "missing owner", in: NewPerson{Name: "Alice", BirthDate: date(1990, time.March, 15)}},
		{name: "missing date", in: NewPerson{OwnerID: 1, Name: "Alice"}},
	}

	for _, tc := range tests {
		if _, err := svc.Add(ctx, tc.in); !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Errorf("%s: Add() error = %v, want a validation error", tc.name, err)
		}
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC))

	entry, err := svc.Add(ctx, NewPerson{OwnerID: 1, Name: "Alice", BirthDate: date(1990, time.March, 15)})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := svc.Delete(ctx, 2, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() by another owner error = %v, want ErrNotFound", err)
	}

	deleted, err := svc.Delete(ctx, 1, entry.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.Name != "Alice" {
		t.Errorf("Delete() returned %q, want Alice", deleted.Name)
	}

	left, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(left) != 0 {
		t.Errorf("List() after delete returned %d entries", len(left))
	}
}

type failingStore struct {
	database.Store
	err error
}

func (f failingStore) AddPerson(context.Context, *database.Person) error { return f.err }

func (f failingStore) ListPeople(context.Context, int64) ([]database.Person, error) {
	return nil, f.err
}

func TestPersistenceFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cause := errors.New("database is locked")
	svc := NewService(failingStore{err: cause}, clockwork.NewFakeClockAt(date(2024, time.March, 14)), discard)

	_, err := svc.Add(ctx, NewPerson{OwnerID: 1, Name: "Alice", BirthDate: date(1990, time.March, 15)})
	if !apperrors.HasCode(err, apperrors.CodePersistence) || !errors.Is(err, cause) {
		t.Errorf("Add() error = %v, want a persistence error wrapping the cause", err)
	}

	_, err = svc.List(ctx, 1)
	if !apperrors.HasCode(err, apperrors.CodePersistence) {
		t.Errorf("List() error = %v, want a persistence error", err)
	}
}
