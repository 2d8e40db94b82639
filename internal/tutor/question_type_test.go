package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuestionType(t *testing.T) {
	questionType, err := ParseQuestionType("reading")
	assert.NoError(t, err)
	assert.Equal(t, QuestionTypeReading, questionType)

	_, err = ParseQuestionType("multiple_choice")
	assert.Error(t, err)
}

func TestInferQuestionType(t *testing.T) {
	tests := []struct {
		name     string
		wireType string
		question string
		want     QuestionType
	}{
		{
			name:     "meaning question",
			wireType: "multiple_choice",
			question: "What does 食べる mean?",
			want:     QuestionTypeMeaning,
		},
		{
			name:     "kanji reading question",
			wireType: "multiple_choice",
			question: "How do you read 食べる?",
			want:     QuestionTypeReading,
		},
		{
			name:     "romaji writing question",
			wireType: "multiple_choice",
			question: "How do you write たべる in romaji?",
			want:     QuestionTypeReading,
		},
		{
			name:     "pronunciation question",
			wireType: "multiple_choice",
			question: "How do you pronounce 天気?",
			want:     QuestionTypeReading,
		},
		{
			name:     "explicit type wins over the question text",
			wireType: "reading",
			question: "What does 食べる mean?",
			want:     QuestionTypeReading,
		},
		{
			name:     "unknown phrasing defaults to meaning",
			wireType: "multiple_choice",
			question: "Pick the best translation of 食べる",
			want:     QuestionTypeMeaning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferQuestionType(tt.wireType, tt.question))
		})
	}
}
