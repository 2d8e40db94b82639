package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/WilliamWisten/japaneseLessons/internal/cli"
	"github.com/WilliamWisten/japaneseLessons/internal/lesson"
)

type ModeFlag string

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	switch v {
	case string(ModeQuiz):
		*m = ModeQuiz
	case string(ModePreview):
		*m = ModePreview
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, ModeQuiz, ModePreview)
	}
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
)

const (
	ModeQuiz    ModeFlag = "quiz"
	ModePreview ModeFlag = "preview"
)

func newLessonCommand() *cobra.Command {
	var userID string
	mode := ModeQuiz
	command := &cobra.Command{
		Use:   "lesson",
		Short: "Study an interactive lesson built from your next words",
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
				return previewLesson(cmd.Context(), eng, userID, "")
			}
			quizCLI := cli.NewLessonQuizCLI(eng.generator, eng.updater, userID)
			return quizCLI.Run(cmd.Context(), "")
		},
	}
	command.Flags().StringVar(&userID, "user", "default_user", "user id to track progress for")
	command.Flags().Var(&mode, "mode", "Lesson mode. Options: quiz, preview")
	return command
}

// previewLesson prints a generated lesson with its answers instead of running
// the interactive quiz. Nothing is graded.
func previewLesson(ctx context.Context, eng *engine, userID, episodeID string) error {
	var generated *lesson.Lesson
	var err error
	if episodeID != "" {
		generated, err = eng.generator.CreatePodcastLesson(ctx, userID, episodeID)
	} else {
		generated, err = eng.generator.CreateLesson(ctx, userID)
	}
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Println("Words in this lesson:")
	for _, word := range generated.Words {
		fmt.Printf("- %s (%s): %s\n", word.Word, word.Reading, word.Meaning)
	}
	for _, note := range generated.Vocabulary {
		if note.Context == "" {
			continue
		}
		fmt.Printf("  %s: %s", note.Word, note.Context)
		if note.ContextEn != "" {
			fmt.Printf(" (%s)", note.ContextEn)
		}
		fmt.Println()
	}
	fmt.Println()

	for i, exercise := range generated.Exercises {
		bold.Printf("Question %d/%d: %s\n", i+1, len(generated.Exercises), exercise.Question)
		for _, option := range exercise.Options {
			marker := " "
			if option == exercise.Correct {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, option)
		}
	}
	return nil
}
