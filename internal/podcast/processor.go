package podcast

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/extract"
	"github.com/WilliamWisten/japaneseLessons/internal/speech"
)

// Processor turns an episode transcript into stored vocabulary. New words also
// feed the word catalog so frequency-based lessons can reuse them.
type Processor struct {
	episodeRepo EpisodeRepository
	vocabRepo   VocabularyRepository
	catalogRepo catalog.Repository
	extractor   *extract.Extractor
	synthesizer speech.Synthesizer
	metadata    MetadataClient

	now func() time.Time
}

// NewProcessor creates a new Processor. metadata may be nil when no platform
// credentials are configured; episodes are then stored without show metadata.
func NewProcessor(
	episodeRepo EpisodeRepository,
	vocabRepo VocabularyRepository,
	catalogRepo catalog.Repository,
	extractor *extract.Extractor,
	synthesizer speech.Synthesizer,
	metadata MetadataClient,
) *Processor {
	return &Processor{
		episodeRepo: episodeRepo,
		vocabRepo:   vocabRepo,
		catalogRepo: catalogRepo,
		extractor:   extractor,
		synthesizer: synthesizer,
		metadata:    metadata,
	}
}

// Result is a processed episode with its extracted vocabulary.
type Result struct {
	Episode    *Episode
	Vocabulary []VocabularyItem
}

// Process extracts and stores an episode's vocabulary. An episode that was
// already processed is returned from storage without re-extraction.
func (p *Processor) Process(ctx context.Context, spotifyURL, transcript string) (*Result, error) {
	episodeID, err := ParseEpisodeURL(spotifyURL)
	if err != nil {
		return nil, err
	}

	existing, err := p.episodeRepo.Find(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("episodeRepo.Find() > %w", err)
	}
	if existing != nil && existing.ProcessedDate.Valid {
		items, err := p.vocabRepo.ListByEpisode(ctx, episodeID)
		if err != nil {
			return nil, fmt.Errorf("vocabRepo.ListByEpisode() > %w", err)
		}
		if len(items) > 0 {
			slog.Info("Returning already processed episode", slog.String("episode_id", episodeID))
			return &Result{Episode: existing, Vocabulary: items}, nil
		}
	}

	episode := &Episode{
		EpisodeID:  episodeID,
		Transcript: transcript,
	}
	if p.metadata != nil {
		info, err := p.metadata.EpisodeInfo(ctx, episodeID)
		if err != nil {
			slog.Warn("Failed to fetch episode metadata",
				slog.String("episode_id", episodeID),
				slog.Any("error", err))
		} else {
			episode.Name = info.Name
			episode.Description = info.Description
			episode.ShowName = info.ShowName
			episode.ShowPublisher = info.ShowPublisher
			episode.ReleaseDate = info.ReleaseDate
			if info.ImageURL != "" {
				episode.ImageURL = sql.NullString{String: info.ImageURL, Valid: true}
			}
		}
	}

	candidates, err := p.extractor.Extract(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("extractor.Extract() > %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no vocabulary extracted from episode %s", episodeID)
	}

	items := make([]VocabularyItem, 0, len(candidates))
	for _, candidate := range candidates {
		item := VocabularyItem{
			EpisodeID:       episodeID,
			Word:            candidate.Word,
			Reading:         candidate.Reading,
			Meaning:         candidate.Meaning,
			PartOfSpeech:    candidate.PartOfSpeech,
			ImportanceLevel: candidate.Importance,
			Context:         candidate.Context,
		}
		if audioURL, ok := p.synthesizer.Synthesize(ctx, candidate.Word); ok {
			item.AudioURL = sql.NullString{String: audioURL, Valid: true}
		}
		items = append(items, item)
	}

	if err := p.vocabRepo.UpsertAll(ctx, items); err != nil {
		return nil, fmt.Errorf("vocabRepo.UpsertAll() > %w", err)
	}

	episode.ProcessedDate = sql.NullTime{Time: p.timeNow(), Valid: true}
	if err := p.episodeRepo.Upsert(ctx, episode); err != nil {
		return nil, fmt.Errorf("episodeRepo.Upsert() > %w", err)
	}

	if err := p.feedCatalog(ctx, items); err != nil {
		return nil, err
	}

	return &Result{Episode: episode, Vocabulary: items}, nil
}

// feedCatalog appends words the catalog has never seen, ranking them after the
// current maximum so they never displace genuine frequency data.
func (p *Processor) feedCatalog(ctx context.Context, items []VocabularyItem) error {
	maxRank, err := p.catalogRepo.MaxFrequencyRank(ctx)
	if err != nil {
		return fmt.Errorf("catalogRepo.MaxFrequencyRank() > %w", err)
	}

	for _, item := range items {
		entry, err := p.catalogRepo.FindByWord(ctx, item.Word)
		if err != nil {
			return fmt.Errorf("catalogRepo.FindByWord() > %w", err)
		}
		if entry != nil {
			continue
		}
		maxRank++
		if err := p.catalogRepo.Upsert(ctx, &catalog.Entry{
			Word:          item.Word,
			Reading:       item.Reading,
			Meaning:       item.Meaning,
			FrequencyRank: maxRank,
			AudioURL:      item.AudioURL,
		}); err != nil {
			return fmt.Errorf("catalogRepo.Upsert() > %w", err)
		}
	}
	return nil
}

func (p *Processor) timeNow() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}
