// Package mastery provides the one-time mastery fact store.
package mastery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/mastery/mock_repository.go -package=mock_mastery

// Fact records that a user mastered a word, with a denormalized dictionary snapshot.
type Fact struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	Word         string    `db:"word"`
	Source       string    `db:"source"`
	MasteredDate time.Time `db:"mastered_date"`
	ReviewCount  int       `db:"review_count"`
	Reading      string    `db:"reading"`
	Meaning      string    `db:"meaning"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Repository defines operations for managing mastery facts.
type Repository interface {
	Find(ctx context.Context, userID, word string) (*Fact, error)
	Put(ctx context.Context, fact *Fact) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns the mastery fact for a user and word, or nil if not found.
func (r *DBRepository) Find(ctx context.Context, userID, word string) (*Fact, error) {
	var fact Fact
	err := r.db.GetContext(ctx, &fact,
		"SELECT * FROM mastered_words WHERE user_id = ? AND word = ?", userID, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(mastered_word) > %w", err)
	}
	return &fact, nil
}

// Put inserts or updates a mastery fact. An existing fact keeps its review count:
// re-mastering via a different source must not zero progress accumulated by the
// review tracker.
func (r *DBRepository) Put(ctx context.Context, fact *Fact) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mastered_words (user_id, word, source, mastered_date, review_count, reading, meaning)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE source = VALUES(source), reading = VALUES(reading), meaning = VALUES(meaning)`,
		fact.UserID, fact.Word, fact.Source, fact.MasteredDate, fact.ReviewCount,
		fact.Reading, fact.Meaning)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert mastered_word) > %w", err)
	}
	return nil
}
