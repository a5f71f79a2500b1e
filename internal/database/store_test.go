package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { CloseDB(db) })

	return NewStore(db, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStoreAddAndGetPerson(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	p := &Person{Name: "Alice", BirthDate: date(1990, time.March, 15), OwnerID: 42}
	if err := store.AddPerson(ctx, p); err != nil {
		t.Fatalf("AddPerson() error = %v", err)
	}
	if p.ID == 0 {
		t.Fatal("AddPerson() did not assign an id")
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("AddPerson() did not set CreatedAt")
	}

	got, err := store.GetPerson(ctx, 42, p.ID)
	if err != nil {
		t.Fatalf("GetPerson() error = %v", err)
	}
	if got.Name != "Alice" || !got.BirthDate.Equal(p.BirthDate) || got.OwnerID != 42 {
		t.Errorf("GetPerson() = %+v, want %+v", got, p)
	}

	if _, err := store.GetPerson(ctx, 7, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPerson() for another owner error = %v, want ErrNotFound", err)
	}
}

func TestStoreAddPersonRejectsIncompleteRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	tests := []struct {
		name   string
		person *Person
	}{
		{name: "nil", person: nil},
		{name: "no owner", person: &Person{Name: "Bob", BirthDate: date(2000, time.January, 1)}},
		{name: "no name", person: &Person{OwnerID: 1, BirthDate: date(2000, time.January, 1)}},
		{name: "no birth date", person: &Person{OwnerID: 1, Name: "Bob"}},
	}

	for _, tc := range tests {
		if err := store.AddPerson(ctx, tc.person); err == nil {
			t.Errorf("%s: AddPerson() expected an error", tc.name)
		}
	}

	all, err := store.ListAllPeople(ctx)
	if err != nil {
		t.Fatalf("ListAllPeople() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ListAllPeople() returned %d people after rejected inserts, want 0", len(all))
	}
}

func TestStoreListPeopleIsOwnerScopedAndSorted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	seed := []Person{
		{Name: "Charlie", BirthDate: date(1985, time.July, 4), OwnerID: 1},
		{Name: "Alice", BirthDate: date(1990, time.March, 15), OwnerID: 1},
		{Name: "Bob", BirthDate: date(1970, time.December, 31), OwnerID: 2},
		{Name: "Bella", BirthDate: date(2004, time.February, 29), OwnerID: 1},
	}
	for i := range seed {
		if err := store.AddPerson(ctx, &seed[i]); err != nil {
			t.Fatalf("AddPerson(%s) error = %v", seed[i].Name, err)
		}
	}

	mine, err := store.ListPeople(ctx, 1)
	if err != nil {
		t.Fatalf("ListPeople() error = %v", err)
	}
	wantNames := []string{"Alice", "Bella", "Charlie"}
	if len(mine) != len(wantNames) {
		t.Fatalf("ListPeople() returned %d people, want %d", len(mine), len(wantNames))
	}
	for i, want := range wantNames {
		if mine[i].Name != want {
			t.Errorf("ListPeople()[%d].Name = %q, want %q", i, mine[i].Name, want)
		}
		if mine[i].OwnerID != 1 {
			t.Errorf("ListPeople()[%d] belongs to owner %d", i, mine[i].OwnerID)
		}
	}
	if !mine[1].BirthDate.Equal(date(2004, time.February, 29)) {
		t.Errorf("leap day birth date stored as %v", mine[1].BirthDate)
	}

	all, err := store.ListAllPeople(ctx)
	if err != nil {
		t.Fatalf("ListAllPeople() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListAllPeople() returned %d people, want 4", len(all))
	}
	if all[0].Name != "Alice" || all[1].Name != "Bella" || all[2].Name != "Bob" || all[3].Name != "Charlie" {
		t.Errorf("ListAllPeople() not sorted by name: %v", all)
	}

	if _, err := store.ListPeople(ctx, 0); err == nil {
		t.Error("ListPeople(0) expected an error")
	}
}

func TestStoreDeletePerson(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	p := &Person{Name: "Alice", BirthDate: date(1990, time.March, 15), OwnerID: 1}
	if err := store.AddPerson(ctx, p); err != nil {
		t.Fatalf("AddPerson() error = %v", err)
	}

	if err := store.DeletePerson(ctx, 2, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeletePerson() by another owner error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetPerson(ctx, 1, p.ID); err != nil {
		t.Fatalf("person should survive a foreign delete, GetPerson() error = %v", err)
	}

	if err := store.DeletePerson(ctx, 1, p.ID); err != nil {
		t.Fatalf("DeletePerson() error = %v", err)
	}
	if err := store.DeletePerson(ctx, 1, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePerson() error = %v, want ErrNotFound", err)
	}
}

func TestStorePingAndMaintenance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if err := store.RunSQLMaintenance(ctx); err != nil {
		t.Fatalf("RunSQLMaintenance() error = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := store.RunSQLMaintenance(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("RunSQLMaintenance() with cancelled context error = %v", err)
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "data/bot.db", want: "data/bot.db"},
		{in: "file:data/bot.db?_pragma=busy_timeout(5000)", want: "data/bot.db"},
		{in: "file:my%20data/bot.db", want: "my data/bot.db"},
	}

	for _, tc := range tests {
		if got := ExtractDBNameFromPath(tc.in); got != tc.want {
			t.Errorf("ExtractDBNameFromPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
