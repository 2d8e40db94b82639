// Package catalog provides the frequency-ordered word catalog and its repository.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/catalog/mock_repository.go -package=mock_catalog

// Entry represents one word in the frequency catalog.
type Entry struct {
	ID            int64          `db:"id"`
	Word          string         `db:"word"`
	Reading       string         `db:"reading"`
	Meaning       string         `db:"meaning"`
	FrequencyRank int            `db:"frequency_rank"`
	AudioURL      sql.NullString `db:"audio_url"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// HasAudio reports whether a synthesized audio reference is attached.
func (e Entry) HasAudio() bool {
	return e.AudioURL.Valid && e.AudioURL.String != ""
}

// Repository defines operations for managing catalog entries.
type Repository interface {
	FindByWord(ctx context.Context, word string) (*Entry, error)
	FindByRankRange(ctx context.Context, minRank, limit int) ([]Entry, error)
	MaxFrequencyRank(ctx context.Context) (int, error)
	Upsert(ctx context.Context, entry *Entry) error
	AttachAudio(ctx context.Context, word, audioURL string) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByWord returns a catalog entry by its word, or nil if not found.
func (r *DBRepository) FindByWord(ctx context.Context, word string) (*Entry, error) {
	var entry Entry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM words WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word) > %w", err)
	}
	return &entry, nil
}

// FindByRankRange returns entries with frequency_rank > minRank in ascending rank
// order, up to limit rows.
func (r *DBRepository) FindByRankRange(ctx context.Context, minRank, limit int) ([]Entry, error) {
	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM words WHERE frequency_rank > ? ORDER BY frequency_rank LIMIT ?",
		minRank, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(words by rank) > %w", err)
	}
	return entries, nil
}

// MaxFrequencyRank returns the highest frequency rank currently in the catalog,
// or 0 for an empty catalog.
func (r *DBRepository) MaxFrequencyRank(ctx context.Context) (int, error) {
	var rank sql.NullInt64
	if err := r.db.GetContext(ctx, &rank, "SELECT MAX(frequency_rank) FROM words"); err != nil {
		return 0, fmt.Errorf("db.GetContext(max frequency_rank) > %w", err)
	}
	if !rank.Valid {
		return 0, nil
	}
	return int(rank.Int64), nil
}

// Upsert inserts or updates a catalog entry. The audio reference is only ever
// widened, never cleared.
func (r *DBRepository) Upsert(ctx context.Context, entry *Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO words (word, reading, meaning, frequency_rank, audio_url)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE reading = VALUES(reading), meaning = VALUES(meaning),
			frequency_rank = VALUES(frequency_rank),
			audio_url = COALESCE(VALUES(audio_url), audio_url)`,
		entry.Word, entry.Reading, entry.Meaning, entry.FrequencyRank, entry.AudioURL)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert word) > %w", err)
	}
	return nil
}

// AttachAudio records a synthesized audio reference on an existing entry.
func (r *DBRepository) AttachAudio(ctx context.Context, word, audioURL string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE words SET audio_url = ? WHERE word = ?", audioURL, word)
	if err != nil {
		return fmt.Errorf("db.ExecContext(attach audio) > %w", err)
	}
	return nil
}
