package podcast

import (
	"context"
	"fmt"

	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

// EpisodeSummary is one processed episode annotated with how much of its
// vocabulary the user has already met or mastered.
type EpisodeSummary struct {
	Episode          Episode
	TotalWords       int
	WordsEncountered int
	WordsMastered    int
}

// Library lists processed episodes with per-user word coverage.
type Library struct {
	episodeRepo  EpisodeRepository
	vocabRepo    VocabularyRepository
	progressRepo progress.Repository
}

// NewLibrary creates a new Library.
func NewLibrary(
	episodeRepo EpisodeRepository,
	vocabRepo VocabularyRepository,
	progressRepo progress.Repository,
) *Library {
	return &Library{
		episodeRepo:  episodeRepo,
		vocabRepo:    vocabRepo,
		progressRepo: progressRepo,
	}
}

// ListEpisodes returns every processed episode with the user's coverage
// counts. A word counts as encountered once any grading event touched it, and
// as mastered once its progress record crossed the streak threshold.
func (l *Library) ListEpisodes(ctx context.Context, userID string) ([]EpisodeSummary, error) {
	episodes, err := l.episodeRepo.ListProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("episodeRepo.ListProcessed() > %w", err)
	}

	seen, err := l.progressRepo.ListSeenWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListSeenWords() > %w", err)
	}
	mastered, err := l.progressRepo.ListMasteredWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListMasteredWords() > %w", err)
	}

	summaries := make([]EpisodeSummary, 0, len(episodes))
	for _, episode := range episodes {
		items, err := l.vocabRepo.ListByEpisode(ctx, episode.EpisodeID)
		if err != nil {
			return nil, fmt.Errorf("vocabRepo.ListByEpisode(%s) > %w", episode.EpisodeID, err)
		}

		summary := EpisodeSummary{Episode: episode, TotalWords: len(items)}
		for _, item := range items {
			if _, ok := seen[item.Word]; ok {
				summary.WordsEncountered++
			}
			if _, ok := mastered[item.Word]; ok {
				summary.WordsMastered++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
