// Package podcast stores processed podcast episodes and their vocabulary.
package podcast

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/podcast/mock_repository.go -package=mock_podcast

// Episode is one processed podcast episode with its transcript and metadata.
type Episode struct {
	ID            int64          `db:"id"`
	EpisodeID     string         `db:"episode_id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	ShowName      string         `db:"show_name"`
	ShowPublisher string         `db:"show_publisher"`
	ReleaseDate   string         `db:"release_date"`
	ImageURL      sql.NullString `db:"image_url"`
	Transcript    string         `db:"transcript"`
	ProcessedDate sql.NullTime   `db:"processed_date"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// VocabularyItem is one word extracted from an episode transcript.
type VocabularyItem struct {
	ID              int64          `db:"id"`
	EpisodeID       string         `db:"episode_id"`
	Word            string         `db:"word"`
	Reading         string         `db:"reading"`
	Meaning         string         `db:"meaning"`
	PartOfSpeech    string         `db:"part_of_speech"`
	ImportanceLevel int            `db:"importance_level"`
	Context         string         `db:"context"`
	AudioURL        sql.NullString `db:"audio_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// EpisodeRepository defines operations for managing episodes.
type EpisodeRepository interface {
	Find(ctx context.Context, episodeID string) (*Episode, error)
	ListProcessed(ctx context.Context) ([]Episode, error)
	Upsert(ctx context.Context, episode *Episode) error
}

// VocabularyRepository defines operations for managing episode vocabulary.
type VocabularyRepository interface {
	ListByEpisode(ctx context.Context, episodeID string) ([]VocabularyItem, error)
	UpsertAll(ctx context.Context, items []VocabularyItem) error
	AttachAudio(ctx context.Context, episodeID, word, audioURL string) error
}

// DBEpisodeRepository implements EpisodeRepository using MySQL.
type DBEpisodeRepository struct {
	db *sqlx.DB
}

// NewDBEpisodeRepository creates a new DBEpisodeRepository.
func NewDBEpisodeRepository(db *sqlx.DB) *DBEpisodeRepository {
	return &DBEpisodeRepository{db: db}
}

// Find returns an episode by its external ID, or nil if not found.
func (r *DBEpisodeRepository) Find(ctx context.Context, episodeID string) (*Episode, error) {
	var episode Episode
	err := r.db.GetContext(ctx, &episode,
		"SELECT * FROM podcast_episodes WHERE episode_id = ?", episodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(podcast_episode) > %w", err)
	}
	return &episode, nil
}

// ListProcessed returns every processed episode, newest first.
func (r *DBEpisodeRepository) ListProcessed(ctx context.Context) ([]Episode, error) {
	var episodes []Episode
	if err := r.db.SelectContext(ctx, &episodes,
		"SELECT * FROM podcast_episodes WHERE processed_date IS NOT NULL ORDER BY processed_date DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(podcast_episodes) > %w", err)
	}
	return episodes, nil
}

// Upsert inserts or updates an episode keyed by its external ID.
func (r *DBEpisodeRepository) Upsert(ctx context.Context, episode *Episode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO podcast_episodes
			(episode_id, name, description, show_name, show_publisher, release_date, image_url, transcript, processed_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), description = VALUES(description),
			show_name = VALUES(show_name), show_publisher = VALUES(show_publisher),
			release_date = VALUES(release_date), image_url = VALUES(image_url),
			transcript = VALUES(transcript), processed_date = VALUES(processed_date)`,
		episode.EpisodeID, episode.Name, episode.Description, episode.ShowName,
		episode.ShowPublisher, episode.ReleaseDate, episode.ImageURL,
		episode.Transcript, episode.ProcessedDate)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert podcast_episode) > %w", err)
	}
	return nil
}

// DBVocabularyRepository implements VocabularyRepository using MySQL.
type DBVocabularyRepository struct {
	db *sqlx.DB
}

// NewDBVocabularyRepository creates a new DBVocabularyRepository.
func NewDBVocabularyRepository(db *sqlx.DB) *DBVocabularyRepository {
	return &DBVocabularyRepository{db: db}
}

// ListByEpisode returns an episode's vocabulary ordered by importance.
func (r *DBVocabularyRepository) ListByEpisode(ctx context.Context, episodeID string) ([]VocabularyItem, error) {
	var items []VocabularyItem
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM episode_vocabulary WHERE episode_id = ? ORDER BY importance_level, id",
		episodeID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(episode_vocabulary) > %w", err)
	}
	return items, nil
}

// UpsertAll inserts or updates vocabulary items keyed by (episode, word).
func (r *DBVocabularyRepository) UpsertAll(ctx context.Context, items []VocabularyItem) error {
	for _, item := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO episode_vocabulary
				(episode_id, word, reading, meaning, part_of_speech, importance_level, context, audio_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE reading = VALUES(reading), meaning = VALUES(meaning),
				part_of_speech = VALUES(part_of_speech), importance_level = VALUES(importance_level),
				context = VALUES(context),
				audio_url = COALESCE(VALUES(audio_url), audio_url)`,
			item.EpisodeID, item.Word, item.Reading, item.Meaning,
			item.PartOfSpeech, item.ImportanceLevel, item.Context, item.AudioURL)
		if err != nil {
			return fmt.Errorf("db.ExecContext(upsert episode_vocabulary %s) > %w", item.Word, err)
		}
	}
	return nil
}

// AttachAudio records a synthesized audio reference on an existing item.
func (r *DBVocabularyRepository) AttachAudio(ctx context.Context, episodeID, word, audioURL string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE episode_vocabulary SET audio_url = ? WHERE episode_id = ? AND word = ?",
		audioURL, episodeID, word)
	if err != nil {
		return fmt.Errorf("db.ExecContext(attach episode audio) > %w", err)
	}
	return nil
}
