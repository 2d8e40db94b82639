package extract

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one lexically segmented unit of a transcript.
type Token struct {
	Surface      string
	Reading      string
	PartOfSpeech string
}

// Segmenter segments Japanese text into words using morphological analysis.
type Segmenter struct {
	t *tokenizer.Tokenizer
}

// NewSegmenter creates a Segmenter backed by the IPA dictionary.
func NewSegmenter() (*Segmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("tokenizer.New() > %w", err)
	}
	return &Segmenter{t: t}, nil
}

// Segment returns the text's lexical tokens, skipping whitespace-only units.
//
// IPA feature indices: 0 is the part of speech, 7 the katakana reading.
func (s *Segmenter) Segment(text string) ([]Token, error) {
	var result []Token
	for _, token := range s.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		features := token.Features()
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		partOfSpeech := ""
		if len(features) > 0 && features[0] != "*" {
			partOfSpeech = features[0]
		}

		result = append(result, Token{
			Surface:      token.Surface,
			Reading:      reading,
			PartOfSpeech: partOfSpeech,
		})
	}
	return result, nil
}
