// Package cli provides interactive terminal sessions for studying lessons.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/WilliamWisten/japaneseLessons/internal/inference"
	"github.com/WilliamWisten/japaneseLessons/internal/lesson"
	"github.com/WilliamWisten/japaneseLessons/internal/tutor"
)

// LessonQuizCLI runs a generated lesson as an interactive terminal quiz and
// records every answer as a grading event.
type LessonQuizCLI struct {
	generator *lesson.Generator
	updater   *tutor.ProgressUpdater
	userID    string

	stdinReader *bufio.Reader
	bold        *color.Color
	green       *color.Color
	red         *color.Color
}

// NewLessonQuizCLI creates a new LessonQuizCLI.
func NewLessonQuizCLI(generator *lesson.Generator, updater *tutor.ProgressUpdater, userID string) *LessonQuizCLI {
	return &LessonQuizCLI{
		generator:   generator,
		updater:     updater,
		userID:      userID,
		stdinReader: bufio.NewReader(os.Stdin),
		bold:        color.New(color.Bold),
		green:       color.New(color.FgGreen),
		red:         color.New(color.FgRed),
	}
}

// Run creates a lesson and quizzes the user through its exercises. Typing
// "quit" ends the session early.
func (r *LessonQuizCLI) Run(ctx context.Context, episodeID string) error {
	generated, err := r.createLesson(ctx, episodeID)
	if err != nil {
		return err
	}

	fmt.Println("Words in this lesson:")
	for _, word := range generated.Words {
		fmt.Printf("- %s (%s): %s\n", word.Word, word.Reading, word.Meaning)
	}
	fmt.Println()

	correctCount := 0
	for i, exercise := range generated.Exercises {
		answer, quit, err := r.askExercise(i+1, len(generated.Exercises), exercise)
		if err != nil {
			return err
		}
		if quit {
			break
		}

		isCorrect := answer == exercise.Correct
		if isCorrect {
			correctCount++
			r.green.Printf("Correct! %s (%s) means %q\n\n", exercise.Word, exercise.Reading, exercise.Meaning)
		} else {
			r.red.Printf("Wrong. The answer is %q\n\n", exercise.Correct)
		}

		questionType := tutor.InferQuestionType(exercise.Type, exercise.Question)
		record, err := r.updater.Grade(ctx, r.userID, exercise.Word, questionType, isCorrect)
		if err != nil {
			return fmt.Errorf("updater.Grade() > %w", err)
		}
		// The mastered date equals the last-seen time only on the grading
		// event that flipped the record.
		if record.Mastered && record.MasteredDate.Valid && record.LastSeen.Valid &&
			record.MasteredDate.Time.Equal(record.LastSeen.Time) {
			r.green.Printf("You mastered %s!\n\n", exercise.Word)
		}
	}

	r.bold.Printf("Session finished: %d/%d correct\n", correctCount, len(generated.Exercises))
	return nil
}

func (r *LessonQuizCLI) createLesson(ctx context.Context, episodeID string) (*lesson.Lesson, error) {
	if episodeID != "" {
		return r.generator.CreatePodcastLesson(ctx, r.userID, episodeID)
	}
	return r.generator.CreateLesson(ctx, r.userID)
}

// askExercise prints one question and reads an answer, by option number or by
// literal text.
func (r *LessonQuizCLI) askExercise(number, total int, exercise inference.Exercise) (string, bool, error) {
	r.bold.Printf("Question %d/%d: %s\n", number, total, exercise.Question)
	for i, option := range exercise.Options {
		fmt.Printf("  %d. %s\n", i+1, option)
	}
	fmt.Print("> ")

	input, err := r.stdinReader.ReadString('\n')
	if err != nil {
		return "", false, fmt.Errorf("error reading input: %w", err)
	}
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "quit") {
		return "", true, nil
	}

	if index, err := strconv.Atoi(input); err == nil && index >= 1 && index <= len(exercise.Options) {
		return exercise.Options[index-1], false, nil
	}
	return input, false, nil
}
