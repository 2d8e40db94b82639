// Package lesson builds multiple-choice lessons from selected vocabulary.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/inference"
	"github.com/WilliamWisten/japaneseLessons/internal/podcast"
	"github.com/WilliamWisten/japaneseLessons/internal/tutor"
)

// ErrNoCandidates is returned when no words are available to teach. It is a
// terminal condition, not a retryable one.
var ErrNoCandidates = errors.New("no words available for a lesson")

const requiredOptionCount = 4

// Dummy pools used to pad short option lists from the model.
var (
	dummyRomajiOptions  = []string{"ka", "ki", "ku", "ke", "ko", "sa", "shi", "su", "se", "so"}
	dummyMeaningOptions = []string{"thing", "place", "action", "time", "person", "object", "idea", "feeling"}
)

// Lesson is a generated study unit.
type Lesson struct {
	Words      []inference.LessonWord     `json:"words"`
	Vocabulary []inference.VocabularyNote `json:"vocabulary,omitempty"`
	Exercises  []inference.Exercise       `json:"exercises"`
}

// Generator creates lessons from frequency-based selection or from podcast
// episode vocabulary.
type Generator struct {
	client         inference.Client
	selector       *tutor.Selector
	ranker         *tutor.PodcastRanker
	vocabRepo      podcast.VocabularyRepository
	wordsPerLesson int

	rng *rand.Rand
}

// NewGenerator creates a new Generator.
func NewGenerator(
	client inference.Client,
	selector *tutor.Selector,
	ranker *tutor.PodcastRanker,
	vocabRepo podcast.VocabularyRepository,
	wordsPerLesson int,
) *Generator {
	return &Generator{
		client:         client,
		selector:       selector,
		ranker:         ranker,
		vocabRepo:      vocabRepo,
		wordsPerLesson: wordsPerLesson,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateLesson builds a lesson from the user's next frequency-based words.
func (g *Generator) CreateLesson(ctx context.Context, userID string) (*Lesson, error) {
	entries, err := g.selector.NextWords(ctx, userID, g.wordsPerLesson)
	if err != nil {
		return nil, fmt.Errorf("selector.NextWords() > %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoCandidates
	}

	words := make([]inference.LessonWord, 0, len(entries))
	audioByWord := map[string]string{}
	for _, entry := range entries {
		words = append(words, inference.LessonWord{
			Word:    entry.Word,
			Reading: entry.Reading,
			Meaning: entry.Meaning,
		})
		if entry.HasAudio() {
			audioByWord[entry.Word] = entry.AudioURL.String
		}
	}

	return g.generate(ctx, words, audioByWord, false)
}

// CreatePodcastLesson builds a lesson from an episode's stored vocabulary,
// ranked against the user's exposure history.
func (g *Generator) CreatePodcastLesson(ctx context.Context, userID, episodeID string) (*Lesson, error) {
	items, err := g.vocabRepo.ListByEpisode(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("vocabRepo.ListByEpisode() > %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoCandidates
	}

	candidates := make([]tutor.PodcastCandidate, 0, len(items))
	for _, item := range items {
		candidate := tutor.PodcastCandidate{
			Word:    item.Word,
			Reading: item.Reading,
			Meaning: item.Meaning,
			Context: item.Context,
		}
		if item.AudioURL.Valid {
			candidate.AudioURL = item.AudioURL.String
		}
		candidates = append(candidates, candidate)
	}

	selected, err := g.ranker.Rank(ctx, userID, candidates)
	if err != nil {
		return nil, fmt.Errorf("ranker.Rank() > %w", err)
	}
	if len(selected) == 0 {
		return nil, ErrNoCandidates
	}

	words := make([]inference.LessonWord, 0, len(selected))
	audioByWord := map[string]string{}
	for _, candidate := range selected {
		words = append(words, inference.LessonWord{
			Word:    candidate.Word,
			Reading: candidate.Reading,
			Meaning: candidate.Meaning,
		})
		if candidate.AudioURL != "" {
			audioByWord[candidate.Word] = candidate.AudioURL
		}
	}

	return g.generate(ctx, words, audioByWord, true)
}

func (g *Generator) generate(
	ctx context.Context,
	words []inference.LessonWord,
	audioByWord map[string]string,
	fromPodcast bool,
) (*Lesson, error) {
	response, err := g.client.GenerateLesson(ctx, inference.GenerateLessonRequest{
		Words:       words,
		FromPodcast: fromPodcast,
	})
	if err != nil {
		return nil, fmt.Errorf("client.GenerateLesson() > %w", err)
	}

	exercises, err := g.fixExercises(response.Exercises)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		if audioURL, ok := audioByWord[exercises[i].Word]; ok {
			exercises[i].AudioURL = audioURL
		}
	}

	vocabulary := response.Vocabulary
	for i := range vocabulary {
		if audioURL, ok := audioByWord[vocabulary[i].Word]; ok {
			vocabulary[i].AudioURL = audioURL
		}
	}

	return &Lesson{
		Words:      words,
		Vocabulary: vocabulary,
		Exercises:  exercises,
	}, nil
}

// fixExercises drops exercises missing required fields, pads short option
// lists from the dummy pools, guarantees the correct answer is present and
// shuffles the options. A lesson with no usable exercise at all is fatal.
func (g *Generator) fixExercises(exercises []inference.Exercise) ([]inference.Exercise, error) {
	var fixed []inference.Exercise
	for _, exercise := range exercises {
		if exercise.Type == "" || exercise.Word == "" || exercise.Question == "" || exercise.Correct == "" {
			slog.Warn("Dropping exercise with missing required fields",
				slog.String("word", exercise.Word),
				slog.String("type", exercise.Type))
			continue
		}

		pool := dummyMeaningOptions
		if tutor.InferQuestionType(exercise.Type, exercise.Question) == tutor.QuestionTypeReading {
			pool = dummyRomajiOptions
		}
		for _, option := range pool {
			if len(exercise.Options) >= requiredOptionCount {
				break
			}
			if option == exercise.Correct || contains(exercise.Options, option) {
				continue
			}
			exercise.Options = append(exercise.Options, option)
		}
		if len(exercise.Options) > requiredOptionCount {
			exercise.Options = exercise.Options[:requiredOptionCount]
		}

		if !contains(exercise.Options, exercise.Correct) {
			exercise.Options[len(exercise.Options)-1] = exercise.Correct
		}
		g.rng.Shuffle(len(exercise.Options), func(i, j int) {
			exercise.Options[i], exercise.Options[j] = exercise.Options[j], exercise.Options[i]
		})

		fixed = append(fixed, exercise)
	}
	if len(fixed) == 0 {
		return nil, errors.New("lesson generation produced no usable exercises")
	}
	return fixed, nil
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
