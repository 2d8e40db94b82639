package tutor

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	mock_catalog "github.com/WilliamWisten/japaneseLessons/internal/mocks/catalog"
	mock_progress "github.com/WilliamWisten/japaneseLessons/internal/mocks/progress"
	mock_speech "github.com/WilliamWisten/japaneseLessons/internal/mocks/speech"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

func TestSelector_NextWords(t *testing.T) {
	withAudio := sql.NullString{String: "/audio/a.mp3", Valid: true}

	tests := []struct {
		name         string
		desiredCount int
		setupMocks   func(
			catalogRepo *mock_catalog.MockRepository,
			progressRepo *mock_progress.MockRepository,
			synthesizer *mock_speech.MockSynthesizer,
		)
		wantWords []string
		wantErr   bool
	}{
		{
			name:         "excludes mastered and recently practiced words",
			desiredCount: 2,
			setupMocks: func(
				catalogRepo *mock_catalog.MockRepository,
				progressRepo *mock_progress.MockRepository,
				synthesizer *mock_speech.MockSynthesizer,
			) {
				progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
					Return(map[string]struct{}{"食べる": {}}, nil)
				progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
					Return(map[string]struct{}{"行く": {}}, nil)
				catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
					Return([]catalog.Entry{
						{Word: "食べる", FrequencyRank: 1, AudioURL: withAudio},
						{Word: "行く", FrequencyRank: 2, AudioURL: withAudio},
						{Word: "見る", FrequencyRank: 3, AudioURL: withAudio},
						{Word: "書く", FrequencyRank: 4, AudioURL: withAudio},
					}, nil)
				progressRepo.EXPECT().Find(gomock.Any(), "user-1", "見る").Return(nil, nil)
				progressRepo.EXPECT().Find(gomock.Any(), "user-1", "書く").Return(nil, nil)
			},
			wantWords: []string{"見る", "書く"},
		},
		{
			name:         "catalog duplicates are scored once",
			desiredCount: 5,
			setupMocks: func(
				catalogRepo *mock_catalog.MockRepository,
				progressRepo *mock_progress.MockRepository,
				synthesizer *mock_speech.MockSynthesizer,
			) {
				progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
					Return(map[string]struct{}{}, nil)
				progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
					Return(map[string]struct{}{}, nil)
				catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
					Return([]catalog.Entry{
						{Word: "猫", FrequencyRank: 1, AudioURL: withAudio},
						{Word: "猫", FrequencyRank: 2, AudioURL: withAudio},
					}, nil)
				catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 2, selectorBatchSize).
					Return(nil, nil)
				progressRepo.EXPECT().Find(gomock.Any(), "user-1", "猫").Return(nil, nil)
			},
			wantWords: []string{"猫"},
		},
		{
			name:         "empty catalog yields an empty result, not an error",
			desiredCount: 3,
			setupMocks: func(
				catalogRepo *mock_catalog.MockRepository,
				progressRepo *mock_progress.MockRepository,
				synthesizer *mock_speech.MockSynthesizer,
			) {
				progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
					Return(map[string]struct{}{}, nil)
				progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
					Return(map[string]struct{}{}, nil)
				catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
					Return(nil, nil)
			},
			wantWords: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalogRepo := mock_catalog.NewMockRepository(ctrl)
			progressRepo := mock_progress.NewMockRepository(ctrl)
			synthesizer := mock_speech.NewMockSynthesizer(ctrl)
			tt.setupMocks(catalogRepo, progressRepo, synthesizer)

			selector := NewSelector(catalogRepo, progressRepo, synthesizer, DefaultRecentWindow, DefaultRankCeiling)
			got, err := selector.NextWords(context.Background(), "user-1", tt.desiredCount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			words := make([]string, 0, len(got))
			for _, entry := range got {
				words = append(words, entry.Word)
			}
			assert.ElementsMatch(t, tt.wantWords, words)
		})
	}
}

func TestSelector_NextWords_NewWordOutranksStrugglingWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	synthesizer := mock_speech.NewMockSynthesizer(ctrl)

	withAudio := sql.NullString{String: "/audio/a.mp3", Valid: true}
	progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
		Return(map[string]struct{}{}, nil)
	progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
		Return(map[string]struct{}{}, nil)
	catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
		Return([]catalog.Entry{
			{Word: "A", FrequencyRank: 1, AudioURL: withAudio},
			{Word: "B", FrequencyRank: 2, AudioURL: withAudio},
		}, nil)
	catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 2, selectorBatchSize).
		Return(nil, nil)
	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "A").Return(nil, nil)
	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "B").Return(&progress.Record{
		MeaningAttempts: 5, MeaningCorrect: 1,
		ReadingAttempts: 5, ReadingCorrect: 5, ReadingStreak: 5,
	}, nil)

	selector := NewSelector(catalogRepo, progressRepo, synthesizer, DefaultRecentWindow, DefaultRankCeiling)
	got, err := selector.NextWords(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Word)
}

func TestSelector_NextWords_FillsMissingAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	synthesizer := mock_speech.NewMockSynthesizer(ctrl)

	progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
		Return(map[string]struct{}{}, nil)
	progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
		Return(map[string]struct{}{}, nil)
	catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
		Return([]catalog.Entry{{Word: "猫", FrequencyRank: 1}}, nil)
	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "猫").Return(nil, nil)
	synthesizer.EXPECT().Synthesize(gomock.Any(), "猫").Return("/audio/neko.mp3", true)
	catalogRepo.EXPECT().AttachAudio(gomock.Any(), "猫", "/audio/neko.mp3").Return(nil)

	selector := NewSelector(catalogRepo, progressRepo, synthesizer, DefaultRecentWindow, DefaultRankCeiling)
	got, err := selector.NextWords(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/audio/neko.mp3", got[0].AudioURL.String)
	assert.True(t, got[0].HasAudio())
}

func TestSelector_NextWords_SynthesisFailureLeavesEntryWithoutAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	synthesizer := mock_speech.NewMockSynthesizer(ctrl)

	progressRepo.EXPECT().ListMasteredWords(gomock.Any(), "user-1").
		Return(map[string]struct{}{}, nil)
	progressRepo.EXPECT().ListRecentlyActive(gomock.Any(), "user-1", gomock.Any()).
		Return(map[string]struct{}{}, nil)
	catalogRepo.EXPECT().FindByRankRange(gomock.Any(), 0, selectorBatchSize).
		Return([]catalog.Entry{{Word: "犬", FrequencyRank: 1}}, nil)
	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "犬").Return(nil, nil)
	synthesizer.EXPECT().Synthesize(gomock.Any(), "犬").Return("", false)

	selector := NewSelector(catalogRepo, progressRepo, synthesizer, DefaultRecentWindow, DefaultRankCeiling)
	got, err := selector.NextWords(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].HasAudio())
}
