// Package progress provides per-user per-word learning history models and repositories.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/progress/mock_repository.go -package=mock_progress

// ErrVersionConflict is returned when a conditional update lost a race against a
// concurrent writer for the same (user, word) record.
var ErrVersionConflict = errors.New("progress record version conflict")

// Record represents the learning history of one word for one user.
//
// Mastered is monotonic: the updater only ever flips it false to true.
type Record struct {
	ID              int64        `db:"id"`
	UserID          string       `db:"user_id"`
	Word            string       `db:"word"`
	Reading         string       `db:"reading"`
	Meaning         string       `db:"meaning"`
	MeaningAttempts int          `db:"meaning_attempts"`
	MeaningCorrect  int          `db:"meaning_correct"`
	MeaningStreak   int          `db:"meaning_streak"`
	ReadingAttempts int          `db:"reading_attempts"`
	ReadingCorrect  int          `db:"reading_correct"`
	ReadingStreak   int          `db:"reading_streak"`
	LastSeen        sql.NullTime `db:"last_seen"`
	Mastered        bool         `db:"mastered"`
	MasteredDate    sql.NullTime `db:"mastered_date"`
	Version         int64        `db:"version"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

// Repository defines operations for managing progress records.
type Repository interface {
	Find(ctx context.Context, userID, word string) (*Record, error)
	Create(ctx context.Context, record *Record) error
	// Update writes the record conditionally on its version and increments it.
	// Returns ErrVersionConflict if the stored version no longer matches.
	Update(ctx context.Context, record *Record) error
	ListMasteredWords(ctx context.Context, userID string) (map[string]struct{}, error)
	ListRecentlyActive(ctx context.Context, userID string, since time.Time) (map[string]struct{}, error)
	ListSeenWords(ctx context.Context, userID string) (map[string]struct{}, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns the progress record for a user and word, or nil if not found.
func (r *DBRepository) Find(ctx context.Context, userID, word string) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM word_progress WHERE user_id = ? AND word = ?", userID, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word_progress) > %w", err)
	}
	return &record, nil
}

// Create inserts a new progress record with version 0.
func (r *DBRepository) Create(ctx context.Context, record *Record) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO word_progress (user_id, word, reading, meaning,
			meaning_attempts, meaning_correct, meaning_streak,
			reading_attempts, reading_correct, reading_streak,
			last_seen, mastered, mastered_date, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		record.UserID, record.Word, record.Reading, record.Meaning,
		record.MeaningAttempts, record.MeaningCorrect, record.MeaningStreak,
		record.ReadingAttempts, record.ReadingCorrect, record.ReadingStreak,
		record.LastSeen, record.Mastered, record.MasteredDate)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert word_progress) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	record.ID = id
	record.Version = 0
	return nil
}

// Update writes the record back conditionally on the version it was read at.
// Two concurrent grading events for the same record cannot clobber each other:
// the loser observes ErrVersionConflict and re-reads.
func (r *DBRepository) Update(ctx context.Context, record *Record) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE word_progress SET
			meaning_attempts = ?, meaning_correct = ?, meaning_streak = ?,
			reading_attempts = ?, reading_correct = ?, reading_streak = ?,
			last_seen = ?, mastered = ?, mastered_date = ?, version = version + 1
		WHERE user_id = ? AND word = ? AND version = ?`,
		record.MeaningAttempts, record.MeaningCorrect, record.MeaningStreak,
		record.ReadingAttempts, record.ReadingCorrect, record.ReadingStreak,
		record.LastSeen, record.Mastered, record.MasteredDate,
		record.UserID, record.Word, record.Version)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update word_progress) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	record.Version++
	return nil
}

// ListMasteredWords returns the set of words the user has mastered.
func (r *DBRepository) ListMasteredWords(ctx context.Context, userID string) (map[string]struct{}, error) {
	var words []string
	if err := r.db.SelectContext(ctx, &words,
		"SELECT word FROM word_progress WHERE user_id = ? AND mastered = 1", userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(mastered words) > %w", err)
	}
	return toSet(words), nil
}

// ListRecentlyActive returns the set of words the user practiced at or after since.
func (r *DBRepository) ListRecentlyActive(ctx context.Context, userID string, since time.Time) (map[string]struct{}, error) {
	var words []string
	if err := r.db.SelectContext(ctx, &words,
		"SELECT word FROM word_progress WHERE user_id = ? AND last_seen >= ?", userID, since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(recently active words) > %w", err)
	}
	return toSet(words), nil
}

// ListSeenWords returns the set of words the user has any progress record for.
func (r *DBRepository) ListSeenWords(ctx context.Context, userID string) (map[string]struct{}, error) {
	var words []string
	if err := r.db.SelectContext(ctx, &words,
		"SELECT word FROM word_progress WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(seen words) > %w", err)
	}
	return toSet(words), nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
