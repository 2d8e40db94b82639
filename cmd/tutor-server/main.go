package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/WilliamWisten/japaneseLessons/internal/bootstrap"
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
	"github.com/WilliamWisten/japaneseLessons/internal/server"
	"github.com/WilliamWisten/japaneseLessons/internal/speech"
	"github.com/WilliamWisten/japaneseLessons/internal/tutor"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "tutor-server",
		Short:         "Japanese tutoring HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultRetryConfig())
	app.AddShutdownHook(func(ctx context.Context) error {
		return openaiClient.Close()
	})

	catalogRepo := catalog.NewDBRepository(db)
	progressRepo := progress.NewDBRepository(db)
	masteryRepo := mastery.NewDBRepository(db)
	episodeRepo := podcast.NewDBEpisodeRepository(db)
	vocabRepo := podcast.NewDBVocabularyRepository(db)

	audioStore := speech.NewDirStore(cfg.Speech.AudioDirectory, cfg.Speech.AudioBaseURL)
	synthesizer := speech.NewGoogleClient(cfg.Speech, audioStore)
	app.AddShutdownHook(func(ctx context.Context) error {
		return synthesizer.Close()
	})

	recentWindow := time.Duration(cfg.Lessons.RecentWindowHours) * time.Hour
	selector := tutor.NewSelector(catalogRepo, progressRepo, synthesizer, recentWindow, cfg.Lessons.FrequencyRankLimit)
	recorder := tutor.NewMasteryRecorder(catalogRepo, masteryRepo)
	updater := tutor.NewProgressUpdater(catalogRepo, progressRepo, recorder)
	ranker := tutor.NewPodcastRanker(progressRepo, recentWindow)

	extractor, err := extract.NewExtractor(openaiClient)
	if err != nil {
		return fmt.Errorf("extract.NewExtractor() > %w", err)
	}

	var metadata podcast.MetadataClient
	if cfg.Podcast.SpotifyClientID != "" {
		spotifyClient := podcast.NewSpotifyClient(cfg.Podcast.SpotifyClientID, cfg.Podcast.SpotifyClientSecret)
		app.AddShutdownHook(func(ctx context.Context) error {
			return spotifyClient.Close()
		})
		metadata = spotifyClient
	}
	processor := podcast.NewProcessor(episodeRepo, vocabRepo, catalogRepo, extractor, synthesizer, metadata)
	library := podcast.NewLibrary(episodeRepo, vocabRepo, progressRepo)

	generator := lesson.NewGenerator(openaiClient, selector, ranker, vocabRepo, cfg.Lessons.WordsPerLesson)

	handler := server.NewHandler(generator, updater, recorder, processor, library)
	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("GET "+cfg.Speech.AudioBaseURL+"/",
		http.StripPrefix(cfg.Speech.AudioBaseURL+"/", http.FileServer(http.Dir(cfg.Speech.AudioDirectory))))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.CORSMiddleware(cfg.Server.CORS, h2c.NewHandler(mux, &http2.Server{})),
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("Starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
