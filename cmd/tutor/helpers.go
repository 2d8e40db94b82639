package main

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/config"
	"github.com/WilliamWisten/japaneseLessons/internal/database"
	"github.com/WilliamWisten/japaneseLessons/internal/extract"
	"github.com/WilliamWisten/japaneseLessons/internal/inference"
	"github.com/WilliamWisten/japaneseLessons/internal/inference/openai"
	"github.com/WilliamWisten/japaneseLessons/internal/lesson"
	"github.com/WilliamWisten/japaneseLessons/internal/mastery"
	"github.com/WilliamWisten/japaneseLessons/internal/podcast"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
	"github.com/WilliamWisten/japaneseLessons/internal/speech"
	"github.com/WilliamWisten/japaneseLessons/internal/tutor"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// engine bundles the wired components a CLI session needs.
type engine struct {
	db          *sqlx.DB
	client      *openai.Client
	synthesizer *speech.GoogleClient

	generator *lesson.Generator
	updater   *tutor.ProgressUpdater
	recorder  *tutor.MasteryRecorder
	processor *podcast.Processor
}

func newEngine(cfg *config.Config) (*engine, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultRetryConfig())

	catalogRepo := catalog.NewDBRepository(db)
	progressRepo := progress.NewDBRepository(db)
	masteryRepo := mastery.NewDBRepository(db)
	episodeRepo := podcast.NewDBEpisodeRepository(db)
	vocabRepo := podcast.NewDBVocabularyRepository(db)

	audioStore := speech.NewDirStore(cfg.Speech.AudioDirectory, cfg.Speech.AudioBaseURL)
	synthesizer := speech.NewGoogleClient(cfg.Speech, audioStore)

	recentWindow := time.Duration(cfg.Lessons.RecentWindowHours) * time.Hour
	selector := tutor.NewSelector(catalogRepo, progressRepo, synthesizer, recentWindow, cfg.Lessons.FrequencyRankLimit)
	recorder := tutor.NewMasteryRecorder(catalogRepo, masteryRepo)
	updater := tutor.NewProgressUpdater(catalogRepo, progressRepo, recorder)
	ranker := tutor.NewPodcastRanker(progressRepo, recentWindow)

	extractor, err := extract.NewExtractor(openaiClient)
	if err != nil {
		return nil, fmt.Errorf("extract.NewExtractor() > %w", err)
	}

	var metadata podcast.MetadataClient
	if cfg.Podcast.SpotifyClientID != "" {
		metadata = podcast.NewSpotifyClient(cfg.Podcast.SpotifyClientID, cfg.Podcast.SpotifyClientSecret)
	}
	processor := podcast.NewProcessor(episodeRepo, vocabRepo, catalogRepo, extractor, synthesizer, metadata)

	generator := lesson.NewGenerator(openaiClient, selector, ranker, vocabRepo, cfg.Lessons.WordsPerLesson)

	return &engine{
		db:          db,
		client:      openaiClient,
		synthesizer: synthesizer,
		generator:   generator,
		updater:     updater,
		recorder:    recorder,
		processor:   processor,
	}, nil
}

func (e *engine) Close() error {
	if err := e.client.Close(); err != nil {
		return err
	}
	if err := e.synthesizer.Close(); err != nil {
		return err
	}
	return e.db.Close()
}
