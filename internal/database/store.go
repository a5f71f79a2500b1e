package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a person does not exist for the requesting owner.
var ErrNotFound = errors.New("person not found")

// Store defines the interface for database operations.
// Methods should accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// AddPerson inserts a new person and sets its ID and CreatedAt.
	AddPerson(ctx context.Context, person *Person) error

	// GetPerson retrieves one of the owner's people. Returns ErrNotFound if
	// the person does not exist or belongs to someone else.
	GetPerson(ctx context.Context, ownerID, personID int64) (*Person, error)

	// ListPeople retrieves the owner's people ordered by name.
	ListPeople(ctx context.Context, ownerID int64) ([]Person, error)

	// ListAllPeople retrieves every person across all owners ordered by name.
	ListAllPeople(ctx context.Context) ([]Person, error)

	// DeletePerson removes one of the owner's people. Returns ErrNotFound if
	// nothing was deleted.
	DeletePerson(ctx context.Context, ownerID, personID int64) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AddPerson inserts a new person record in a single statement, so a failure
// never leaves a partial record behind.
func (s *sqlxStore) AddPerson(ctx context.Context, person *Person) error {
	if person == nil {
		return fmt.Errorf("cannot save nil person")
	}
	if person.OwnerID == 0 {
		return fmt.Errorf("person must have a non-zero owner_id")
	}
	if person.Name == "" {
		return fmt.Errorf("person must have a non-empty name")
	}
	if person.BirthDate.IsZero() {
		return fmt.Errorf("person must have a birth date")
	}

	person.CreatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
        INSERT INTO people (name, birth_date, owner_id, created_at)
        VALUES (:name, :birth_date, :owner_id, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, newPersonRow(person))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving person", "owner_id", person.OwnerID, "error", err)
		return fmt.Errorf("failed to save person for owner %d: %w", person.OwnerID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		s.logger.ErrorContext(ctx, "Could not retrieve last insert ID after saving person",
			"owner_id", person.OwnerID, "error", err)
		return fmt.Errorf("failed to read id of new person: %w", err)
	}
	person.ID = id

	s.logger.DebugContext(ctx, "Person saved successfully", "owner_id", person.OwnerID, "person_id", person.ID)
	return nil
}

// GetPerson retrieves one of the owner's people.
func (s *sqlxStore) GetPerson(ctx context.Context, ownerID, personID int64) (*Person, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var row personRow
	query := `SELECT id, name, birth_date, owner_id, created_at
	          FROM people WHERE id = ? AND owner_id = ?`

	err := s.db.GetContext(ctx, &row, query, personID, ownerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No person found", "owner_id", ownerID, "person_id", personID)
		return nil, ErrNotFound

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching person",
			"owner_id", ownerID, "person_id", personID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting person", "owner_id", ownerID, "person_id", personID, "error", err)
		return nil, fmt.Errorf("failed to get person %d: %w", personID, err)
	}

	p, err := row.toPerson()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPeople retrieves the owner's people ordered by name.
func (s *sqlxStore) ListPeople(ctx context.Context, ownerID int64) ([]Person, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner_id cannot be zero")
	}

	query := `SELECT id, name, birth_date, owner_id, created_at
	          FROM people
	          WHERE owner_id = ?
	          ORDER BY name, id`

	return s.selectPeople(ctx, query, ownerID)
}

// ListAllPeople retrieves every person across all owners ordered by name.
func (s *sqlxStore) ListAllPeople(ctx context.Context) ([]Person, error) {
	query := `SELECT id, name, birth_date, owner_id, created_at
	          FROM people
	          ORDER BY name, id`

	return s.selectPeople(ctx, query)
}

func (s *sqlxStore) selectPeople(ctx context.Context, query string, args ...any) ([]Person, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []personRow
	err := s.db.SelectContext(ctx, &rows, query, args...)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing people", "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error listing people", "error", err)
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	people := make([]Person, 0, len(rows))
	for _, r := range rows {
		p, err := r.toPerson()
		if err != nil {
			s.logger.ErrorContext(ctx, "Skipping person with corrupt birth date", "person_id", r.ID, "error", err)
			continue
		}
		people = append(people, p)
	}

	s.logger.DebugContext(ctx, "Listed people", "count", len(people))
	return people, nil
}

// DeletePerson removes one of the owner's people.
func (s *sqlxStore) DeletePerson(ctx context.Context, ownerID, personID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = ? AND owner_id = ?`, personID, ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting person", "owner_id", ownerID, "person_id", personID, "error", err)
		return fmt.Errorf("failed to delete person %d: %w", personID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count when deleting person",
			"person_id", personID, "error", err)
		return nil
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.InfoContext(ctx, "Deleted person", "owner_id", ownerID, "person_id", personID)
	return nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
