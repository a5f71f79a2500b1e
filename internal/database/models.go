package database

import (
	"fmt"
	"time"

	"github.com/edgard/birthdaybot/internal/birthday"
)

// Person is a tracked birthday owned by a single Telegram user.
// BirthDate holds a calendar date at midnight UTC and never changes after creation.
type Person struct {
	ID        int64
	Name      string
	BirthDate time.Time
	OwnerID   int64
	CreatedAt time.Time
}

// personRow mirrors the people table. Dates are stored as ISO text and
// timestamps as unix seconds so the driver never has to guess a time format.
type personRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	BirthDate string `db:"birth_date"`
	OwnerID   int64  `db:"owner_id"`
	CreatedAt int64  `db:"created_at"`
}

func newPersonRow(p *Person) personRow {
	return personRow{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(birthday.StorageLayout),
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt.Unix(),
	}
}

func (r personRow) toPerson() (Person, error) {
	bd, err := time.Parse(birthday.StorageLayout, r.BirthDate)
	if err != nil {
		return Person{}, fmt.Errorf("invalid birth_date %q for person %d: %w", r.BirthDate, r.ID, err)
	}
	return Person{
		ID:        r.ID,
		Name:      r.Name,
		BirthDate: bd,
		OwnerID:   r.OwnerID,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
	}, nil
}
