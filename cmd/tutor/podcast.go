package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/WilliamWisten/japaneseLessons/internal/cli"
)

func newPodcastCommand() *cobra.Command {
	podcastCommand := &cobra.Command{
		Use:   "podcast",
		Short: "Podcast commands for episode vocabulary",
	}

	podcastCommand.AddCommand(newPodcastProcessCommand())
	podcastCommand.AddCommand(newPodcastLessonCommand())

	return podcastCommand
}

func newPodcastProcessCommand() *cobra.Command {
	var transcriptFile string
	command := &cobra.Command{
		Use:   "process <spotify-episode-url>",
		Short: "Extract and store vocabulary from an episode transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := os.ReadFile(transcriptFile)
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", transcriptFile, err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = eng.Close()
			}()

			result, err := eng.processor.Process(cmd.Context(), args[0], string(transcript))
			if err != nil {
				return err
			}

			color.Green("Processed episode %s (%d words)", result.Episode.EpisodeID, len(result.Vocabulary))
			for _, item := range result.Vocabulary {
				fmt.Printf("- %s (%s): %s\n", item.Word, item.Reading, item.Meaning)
			}
			return nil
		},
	}
	command.Flags().StringVar(&transcriptFile, "transcript-file", "", "path to the episode transcript")
	_ = command.MarkFlagRequired("transcript-file")
	return command
}

func newPodcastLessonCommand() *cobra.Command {
	var userID string
	mode := ModeQuiz
	command := &cobra.Command{
		Use:   "lesson <episode-id>",
		Short: "Study an interactive lesson from a processed episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = eng.Close()
			}()

			if mode == ModePreview {
				return previewLesson(cmd.Context(), eng, userID, args[0])
			}
			quizCLI := cli.NewLessonQuizCLI(eng.generator, eng.updater, userID)
			return quizCLI.Run(cmd.Context(), args[0])
		},
	}
	command.Flags().StringVar(&userID, "user", "default_user", "user id to track progress for")
	command.Flags().Var(&mode, "mode", "Lesson mode. Options: quiz, preview")
	return command
}
