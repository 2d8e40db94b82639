package podcast_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/extract"
	"github.com/WilliamWisten/japaneseLessons/internal/inference"
	mock_catalog "github.com/WilliamWisten/japaneseLessons/internal/mocks/catalog"
	mock_inference "github.com/WilliamWisten/japaneseLessons/internal/mocks/inference"
	mock_podcast "github.com/WilliamWisten/japaneseLessons/internal/mocks/podcast"
	mock_speech "github.com/WilliamWisten/japaneseLessons/internal/mocks/speech"
	"github.com/WilliamWisten/japaneseLessons/internal/podcast"
)

type processorMocks struct {
	client      *mock_inference.MockClient
	episodeRepo *mock_podcast.MockEpisodeRepository
	vocabRepo   *mock_podcast.MockVocabularyRepository
	catalogRepo *mock_catalog.MockRepository
	synthesizer *mock_speech.MockSynthesizer
	metadata    *mock_podcast.MockMetadataClient
}

func newTestProcessor(t *testing.T, withMetadata bool) (*podcast.Processor, processorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := processorMocks{
		client:      mock_inference.NewMockClient(ctrl),
		episodeRepo: mock_podcast.NewMockEpisodeRepository(ctrl),
		vocabRepo:   mock_podcast.NewMockVocabularyRepository(ctrl),
		catalogRepo: mock_catalog.NewMockRepository(ctrl),
		synthesizer: mock_speech.NewMockSynthesizer(ctrl),
		metadata:    mock_podcast.NewMockMetadataClient(ctrl),
	}

	extractor, err := extract.NewExtractor(mocks.client)
	require.NoError(t, err)

	var metadata podcast.MetadataClient
	if withMetadata {
		metadata = mocks.metadata
	}
	processor := podcast.NewProcessor(
		mocks.episodeRepo, mocks.vocabRepo, mocks.catalogRepo,
		extractor, mocks.synthesizer, metadata)
	podcast.SetProcessorClock(processor, func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return processor, mocks
}

func TestParseEpisodeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain episode URL",
			url:  "https://open.spotify.com/episode/5pstuxpo2H56lqdZqvprKw",
			want: "5pstuxpo2H56lqdZqvprKw",
		},
		{
			name: "with query parameters",
			url:  "https://open.spotify.com/episode/5pstuxpo2H56lqdZqvprKw?si=abc123",
			want: "5pstuxpo2H56lqdZqvprKw",
		},
		{
			name: "trailing slash",
			url:  "https://open.spotify.com/episode/5pstuxpo2H56lqdZqvprKw/",
			want: "5pstuxpo2H56lqdZqvprKw",
		},
		{
			name:    "no path",
			url:     "not-a-url",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := podcast.ParseEpisodeURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessor_Process(t *testing.T) {
	const episodeURL = "https://open.spotify.com/episode/ep1"

	t.Run("extracts, stores and feeds the catalog", func(t *testing.T) {
		processor, mocks := newTestProcessor(t, true)

		mocks.episodeRepo.EXPECT().Find(gomock.Any(), "ep1").Return(nil, nil)
		mocks.metadata.EXPECT().EpisodeInfo(gomock.Any(), "ep1").Return(&podcast.EpisodeInfo{
			Name:     "Episode 1",
			ShowName: "Nihongo con Teppei",
			ImageURL: "https://img/large.jpg",
		}, nil)
		mocks.client.EXPECT().ExtractVocabulary(gomock.Any(), gomock.Any()).
			Return(inference.ExtractVocabularyResponse{Entries: []inference.VocabularyEntry{
				{Word: "天気", Reading: "てんき", Meaning: "weather", ImportanceLevel: "1"},
			}}, nil)
		mocks.synthesizer.EXPECT().Synthesize(gomock.Any(), "天気").
			Return("/audio/tenki.mp3", true)
		mocks.vocabRepo.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, items []podcast.VocabularyItem) error {
				require.NotEmpty(t, items)
				assert.Equal(t, "天気", items[0].Word)
				assert.Equal(t, "ep1", items[0].EpisodeID)
				assert.Equal(t, sql.NullString{String: "/audio/tenki.mp3", Valid: true}, items[0].AudioURL)
				return nil
			})
		mocks.episodeRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, episode *podcast.Episode) error {
				assert.Equal(t, "ep1", episode.EpisodeID)
				assert.Equal(t, "Episode 1", episode.Name)
				assert.Equal(t, sql.NullString{String: "https://img/large.jpg", Valid: true}, episode.ImageURL)
				assert.True(t, episode.ProcessedDate.Valid)
				return nil
			})
		mocks.catalogRepo.EXPECT().MaxFrequencyRank(gomock.Any()).Return(4000, nil)
		mocks.catalogRepo.EXPECT().FindByWord(gomock.Any(), "天気").Return(nil, nil)
		mocks.catalogRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entry *catalog.Entry) error {
				assert.Equal(t, "天気", entry.Word)
				assert.Equal(t, 4001, entry.FrequencyRank)
				return nil
			})

		result, err := processor.Process(context.Background(), episodeURL, "天気")
		require.NoError(t, err)
		assert.Equal(t, "ep1", result.Episode.EpisodeID)
		assert.Len(t, result.Vocabulary, 1)
	})

	t.Run("already processed episode is returned from storage", func(t *testing.T) {
		processor, mocks := newTestProcessor(t, false)

		processed := &podcast.Episode{
			EpisodeID:     "ep1",
			ProcessedDate: sql.NullTime{Time: time.Now(), Valid: true},
		}
		mocks.episodeRepo.EXPECT().Find(gomock.Any(), "ep1").Return(processed, nil)
		mocks.vocabRepo.EXPECT().ListByEpisode(gomock.Any(), "ep1").
			Return([]podcast.VocabularyItem{{EpisodeID: "ep1", Word: "天気"}}, nil)

		result, err := processor.Process(context.Background(), episodeURL, "天気")
		require.NoError(t, err)
		assert.Same(t, processed, result.Episode)
		assert.Len(t, result.Vocabulary, 1)
	})

	t.Run("metadata failure does not block processing", func(t *testing.T) {
		processor, mocks := newTestProcessor(t, true)

		mocks.episodeRepo.EXPECT().Find(gomock.Any(), "ep1").Return(nil, nil)
		mocks.metadata.EXPECT().EpisodeInfo(gomock.Any(), "ep1").Return(nil, assert.AnError)
		mocks.client.EXPECT().ExtractVocabulary(gomock.Any(), gomock.Any()).
			Return(inference.ExtractVocabularyResponse{Entries: []inference.VocabularyEntry{
				{Word: "天気", Meaning: "weather"},
			}}, nil)
		mocks.synthesizer.EXPECT().Synthesize(gomock.Any(), "天気").Return("", false)
		mocks.vocabRepo.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(nil)
		mocks.episodeRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, episode *podcast.Episode) error {
				assert.Empty(t, episode.Name)
				return nil
			})
		mocks.catalogRepo.EXPECT().MaxFrequencyRank(gomock.Any()).Return(0, nil)
		mocks.catalogRepo.EXPECT().FindByWord(gomock.Any(), "天気").
			Return(&catalog.Entry{Word: "天気"}, nil)

		_, err := processor.Process(context.Background(), episodeURL, "天気")
		require.NoError(t, err)
	})

	t.Run("invalid URL", func(t *testing.T) {
		processor, _ := newTestProcessor(t, false)

		_, err := processor.Process(context.Background(), "nonsense", "天気")
		assert.Error(t, err)
	})
}
