package tutor

import (
	"fmt"
	"strings"
)

// QuestionType represents which skill a grading event exercised.
type QuestionType string

const (
	QuestionTypeMeaning QuestionType = "meaning"
	QuestionTypeReading QuestionType = "reading"
)

// ParseQuestionType converts a wire string into a QuestionType.
func ParseQuestionType(value string) (QuestionType, error) {
	switch QuestionType(value) {
	case QuestionTypeMeaning:
		return QuestionTypeMeaning, nil
	case QuestionTypeReading:
		return QuestionTypeReading, nil
	}
	return "", fmt.Errorf("unknown question type %q", value)
}

// readingMarkers are question phrasings that exercise the reading skill.
// Generated questions ask "How do you read ...?", "How do you write ... in
// romaji?" or "How do you pronounce ...?".
var readingMarkers = []string{"read", "romaji", "pronounce"}

// InferQuestionType determines which skill an exercise graded. Generated
// exercises all arrive typed "multiple_choice", so the skill has to come from
// the question text; an explicit meaning/reading type still wins.
func InferQuestionType(wireType, question string) QuestionType {
	if questionType, err := ParseQuestionType(wireType); err == nil {
		return questionType
	}
	lowered := strings.ToLower(question)
	for _, marker := range readingMarkers {
		if strings.Contains(lowered, marker) {
			return QuestionTypeReading
		}
	}
	return QuestionTypeMeaning
}
