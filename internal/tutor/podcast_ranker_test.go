package tutor

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_progress "github.com/WilliamWisten/japaneseLessons/internal/mocks/progress"
)

func newTestPodcastRanker(t *testing.T, mastered, seen, recent map[string]struct{}) *PodcastRanker {
	t.Helper()
	ctrl := gomock.NewController(t)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").Return(mastered, nil)
	progressRepo.EXPECT().ListSeenWords(gomock.Any(), "user-1").Return(seen, nil)
	progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).Return(recent, nil)

	ranker := NewPodcastRanker(progressRepo, DefaultRecentWindow)
	ranker.rng = rand.New(rand.NewSource(1))
	return ranker
}

func candidateWords(candidates []PodcastCandidate) []string {
	words := make([]string, 0, len(candidates))
	for _, c := range candidates {
		words = append(words, c.Word)
	}
	return words
}

func TestPodcastRanker_Rank_DiscardsMasteredWords(t *testing.T) {
	ranker := newTestPodcastRanker(t,
		map[string]struct{}{"mastered1": {}, "mastered2": {}},
		map[string]struct{}{"mastered1": {}, "mastered2": {}},
		map[string]struct{}{})

	selected, err := ranker.Rank(context.Background(), "user-1", []PodcastCandidate{
		{Word: "mastered1"},
		{Word: "fresh1"},
		{Word: "mastered2"},
		{Word: "fresh2"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fresh1", "fresh2"}, candidateWords(selected))
}

func TestPodcastRanker_Rank_PenalizedWordsStillFillShortEpisodes(t *testing.T) {
	// Three unseen words plus two recently practiced ones: with only five
	// candidates in total, the penalty changes ordering but never drops a word.
	ranker := newTestPodcastRanker(t,
		map[string]struct{}{},
		map[string]struct{}{"recent1": {}, "recent2": {}},
		map[string]struct{}{"recent1": {}, "recent2": {}})

	selected, err := ranker.Rank(context.Background(), "user-1", []PodcastCandidate{
		{Word: "unseen1"},
		{Word: "recent1"},
		{Word: "unseen2"},
		{Word: "recent2"},
		{Word: "unseen3"},
	})
	require.NoError(t, err)
	require.Len(t, selected, podcastSelectionSize)
	assert.ElementsMatch(t,
		[]string{"unseen1", "unseen2", "unseen3", "recent1", "recent2"},
		candidateWords(selected))
	assert.ElementsMatch(t,
		[]string{"unseen1", "unseen2", "unseen3"},
		candidateWords(selected[:3]),
		"unseen words must outrank recently practiced ones")
}

func TestPodcastRanker_Rank_TruncatesToSelectionSize(t *testing.T) {
	ranker := newTestPodcastRanker(t,
		map[string]struct{}{},
		map[string]struct{}{},
		map[string]struct{}{})

	candidates := []PodcastCandidate{
		{Word: "w1"}, {Word: "w2"}, {Word: "w3"}, {Word: "w4"},
		{Word: "w5"}, {Word: "w6"}, {Word: "w7"},
	}
	selected, err := ranker.Rank(context.Background(), "user-1", candidates)
	require.NoError(t, err)
	assert.Len(t, selected, podcastSelectionSize)
}

func TestPodcastRanker_Rank_SeenWordsBackfillReviewSlots(t *testing.T) {
	ranker := newTestPodcastRanker(t,
		map[string]struct{}{},
		map[string]struct{}{"review1": {}, "review2": {}, "review3": {}},
		map[string]struct{}{})

	selected, err := ranker.Rank(context.Background(), "user-1", []PodcastCandidate{
		{Word: "unseen1"},
		{Word: "review1"},
		{Word: "review2"},
		{Word: "review3"},
	})
	require.NoError(t, err)
	require.Len(t, selected, 4)
	assert.Equal(t, "unseen1", selected[0].Word)
	assert.ElementsMatch(t, []string{"review1", "review2", "review3"}, candidateWords(selected[1:]))
}

func TestPodcastRanker_Rank_EmptyEpisode(t *testing.T) {
	ranker := newTestPodcastRanker(t,
		map[string]struct{}{},
		map[string]struct{}{},
		map[string]struct{}{})

	selected, err := ranker.Rank(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, selected)
}
