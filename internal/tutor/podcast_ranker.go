package tutor

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

// podcastSelectionSize is how many episode words a podcast lesson teaches.
const podcastSelectionSize = 5

// PodcastCandidate is one episode vocabulary item considered for a podcast
// lesson. Episode vocabulary carries no catalog frequency rank, so its ranking
// uses exposure history only.
type PodcastCandidate struct {
	Word     string
	Reading  string
	Meaning  string
	Context  string
	AudioURL string
}

// PodcastRanker ranks an episode's vocabulary against the user's exposure
// history.
type PodcastRanker struct {
	progressRepo progress.Repository
	recentWindow time.Duration

	rng *rand.Rand
	now func() time.Time
}

// NewPodcastRanker creates a new PodcastRanker.
func NewPodcastRanker(progressRepo progress.Repository, recentWindow time.Duration) *PodcastRanker {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}
	return &PodcastRanker{
		progressRepo: progressRepo,
		recentWindow: recentWindow,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Rank discards the user's mastered words, scores the rest (unseen words up,
// recently practiced words down, random tie-breaker) and returns the top
// words for a lesson. A short episode yields a partial result, never an error.
func (r *PodcastRanker) Rank(ctx context.Context, userID string, candidates []PodcastCandidate) ([]PodcastCandidate, error) {
	mastered, err := r.progressRepo.ListMasteredWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListMasteredWords() > %w", err)
	}
	seen, err := r.progressRepo.ListSeenWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListSeenWords() > %w", err)
	}
	recent, err := r.progressRepo.ListRecentlyActive(ctx, userID, r.timeNow().Add(-r.recentWindow))
	if err != nil {
		return nil, fmt.Errorf("progressRepo.ListRecentlyActive() > %w", err)
	}

	type scored struct {
		score     float64
		candidate PodcastCandidate
	}
	var pool []scored
	for _, candidate := range candidates {
		if _, ok := mastered[candidate.Word]; ok {
			continue
		}
		score := 0.0
		if _, ok := seen[candidate.Word]; !ok {
			score += 100
		}
		if _, ok := recent[candidate.Word]; ok {
			score -= 50
		}
		score += r.rng.Float64() * tieBreakerRange
		pool = append(pool, scored{score: score, candidate: candidate})
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	selected := make([]PodcastCandidate, 0, podcastSelectionSize)
	chosen := map[string]struct{}{}
	for _, s := range pool {
		if len(selected) == podcastSelectionSize {
			break
		}
		selected = append(selected, s.candidate)
		chosen[s.candidate.Word] = struct{}{}
	}

	if len(selected) < podcastSelectionSize {
		var backfill []PodcastCandidate
		for _, candidate := range candidates {
			_, isSeen := seen[candidate.Word]
			_, isMastered := mastered[candidate.Word]
			_, isRecent := recent[candidate.Word]
			_, isChosen := chosen[candidate.Word]
			if isSeen && !isMastered && !isRecent && !isChosen {
				backfill = append(backfill, candidate)
			}
		}
		r.rng.Shuffle(len(backfill), func(i, j int) {
			backfill[i], backfill[j] = backfill[j], backfill[i]
		})
		for _, candidate := range backfill {
			if len(selected) == podcastSelectionSize {
				break
			}
			selected = append(selected, candidate)
		}
	}
	return selected, nil
}

func (r *PodcastRanker) timeNow() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
