package inference

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	ExtractVocabulary(ctx context.Context, params ExtractVocabularyRequest) (ExtractVocabularyResponse, error)
	GenerateLesson(ctx context.Context, params GenerateLessonRequest) (GenerateLessonResponse, error)
}

// ExtractVocabularyRequest holds one transcript chunk to analyze.
type ExtractVocabularyRequest struct {
	Chunk string `json:"chunk"`
}

// ExtractVocabularyResponse holds the entries parsed from the model output.
// Entries are raw wire-shaped records; normalization into typed candidates
// happens at the extraction boundary.
type ExtractVocabularyResponse struct {
	Entries []VocabularyEntry
}

// VocabularyEntry mirrors the JSON object shape the extraction prompt demands.
// Optional fields may be empty and are defaulted during normalization.
type VocabularyEntry struct {
	Word             string `json:"word"`
	Reading          string `json:"reading,omitempty"`
	Meaning          string `json:"meaning,omitempty"`
	PartOfSpeech     string `json:"part_of_speech,omitempty"`
	ImportanceLevel  string `json:"importance_level,omitempty"`
	ImportanceReason string `json:"importance_reason,omitempty"`
	Context          string `json:"context,omitempty"`
}

// LessonWord is one selected word handed to lesson generation.
type LessonWord struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
}

// GenerateLessonRequest holds parameters for generating lesson exercises.
type GenerateLessonRequest struct {
	Words []LessonWord `json:"words"`
	// FromPodcast switches to the podcast prompt, which additionally asks for
	// vocabulary notes with transcript context sentences.
	FromPodcast bool `json:"from_podcast"`
}

// GenerateLessonResponse holds the generated lesson content.
type GenerateLessonResponse struct {
	Vocabulary []VocabularyNote `json:"vocabulary,omitempty"`
	Exercises  []Exercise       `json:"exercises"`
}

// VocabularyNote is a podcast lesson's per-word study note.
type VocabularyNote struct {
	Word        string `json:"word"`
	Reading     string `json:"reading"`
	Romaji      string `json:"romaji,omitempty"`
	Meaning     string `json:"meaning"`
	Context     string `json:"context,omitempty"`
	ContextEn   string `json:"context_en,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

// Exercise is a single multiple-choice question.
type Exercise struct {
	Type      string   `json:"type"`
	Word      string   `json:"word"`
	Reading   string   `json:"reading,omitempty"`
	Romaji    string   `json:"romaji,omitempty"`
	Meaning   string   `json:"meaning,omitempty"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Correct   string   `json:"correct"`
	Context   string   `json:"context,omitempty"`
	ContextEn string   `json:"context_en,omitempty"`
	AudioURL  string   `json:"audio_url,omitempty"`
}

// RetryConfig controls retry behavior for inference API calls. It is injected
// into clients so tests can simulate retries without real delays.
type RetryConfig struct {
	MaxRetries     uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the production retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     DefaultMaxRetryAttempts,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

const (
	DefaultMaxRetryAttempts = 3
)
