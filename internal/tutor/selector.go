package tutor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
	"github.com/WilliamWisten/japaneseLessons/internal/speech"
)

const (
	// selectorBatchSize is how many catalog rows one rank scan reads at a time.
	selectorBatchSize = 50
	// DefaultRankCeiling bounds the scan to the practically relevant frequency range.
	DefaultRankCeiling = 5000
	// DefaultRecentWindow excludes words practiced within the last day.
	DefaultRecentWindow = 24 * time.Hour
)

// Selector picks the next words a user should study from the frequency catalog.
type Selector struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	synthesizer  speech.Synthesizer

	recentWindow time.Duration
	rankCeiling  int
	rng          *rand.Rand
	now          func() time.Time
}

// NewSelector creates a new Selector.
func NewSelector(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	synthesizer speech.Synthesizer,
	recentWindow time.Duration,
	rankCeiling int,
) *Selector {
	return &Selector{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		synthesizer:  synthesizer,
		recentWindow: recentWindow,
		rankCeiling:  rankCeiling,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

type scoredEntry struct {
	score float64
	entry catalog.Entry
}

// NextWords returns up to desiredCount catalog entries ordered by study
// priority. An empty result is valid: it means there is nothing to teach
// right now, and callers must not retry it as an error.
func (s *Selector) NextWords(ctx context.Context, userID string, desiredCount int) ([]catalog.Entry, error) {
	masteredWords, err := s.progressRepo.ListMasteredWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListMasteredWords() > %w", err)
	}
	recentWords, err := s.progressRepo.ListRecentlyActive(ctx, userID, s.now().Add(-s.recentWindow))
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListRecentlyActive() > %w", err)
	}

	slog.Default().Debug("selecting next words",
		"userID", userID,
		"masteredCount", len(masteredWords),
		"recentCount", len(recentWords))

	now := s.now()
	seenInScan := make(map[string]struct{})
	var scored []scoredEntry
	lastRank := 0

	for len(scored) < desiredCount && lastRank < s.rankCeiling {
		batch, err := s.catalogRepo.FindByRankRange(ctx, lastRank, selectorBatchSize)
		if err != nil {
			return nil, fmt.Errorf("catalogRepo.FindByRankRange(%d) > %w", lastRank, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, entry := range batch {
			lastRank = entry.FrequencyRank

			// The catalog can hold duplicate surface forms at different ranks.
			if _, ok := seenInScan[entry.Word]; ok {
				continue
			}
			seenInScan[entry.Word] = struct{}{}

			if _, ok := masteredWords[entry.Word]; ok {
				continue
			}
			if _, ok := recentWords[entry.Word]; ok {
				continue
			}

			record, err := s.progressRepo.Find(ctx, userID, entry.Word)
			if err != nil {
				return nil, fmt.Errorf("progressRepo.Find(%s) > %w", entry.Word, err)
			}

			scored = append(scored, scoredEntry{
				score: ScoreWord(entry, record, now, s.rng),
				entry: entry,
			})
			if len(scored) >= desiredCount {
				break
			}
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > desiredCount {
		scored = scored[:desiredCount]
	}

	selected := make([]catalog.Entry, 0, len(scored))
	for _, candidate := range scored {
		selected = append(selected, candidate.entry)
	}

	if err := s.fillMissingAudio(ctx, selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// fillMissingAudio requests synthesis for selected entries lacking an audio
// reference and persists any produced reference. This is a cache fill, not
// part of ranking: a synthesis failure leaves the entry without audio.
func (s *Selector) fillMissingAudio(ctx context.Context, entries []catalog.Entry) error {
	for i := range entries {
		if entries[i].HasAudio() {
			continue
		}
		audioURL, ok := s.synthesizer.Synthesize(ctx, entries[i].Word)
		if !ok {
			continue
		}
		if err := s.catalogRepo.AttachAudio(ctx, entries[i].Word, audioURL); err != nil {
			return fmt.Errorf("catalogRepo.AttachAudio(%s) > %w", entries[i].Word, err)
		}
		entries[i].AudioURL = sql.NullString{String: audioURL, Valid: true}
	}
	return nil
}
