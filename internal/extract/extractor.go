// Package extract turns raw transcripts into deduplicated, annotated
// vocabulary candidates.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/WilliamWisten/japaneseLessons/internal/inference"
)

const (
	// DefaultChunkSize is the transcript chunk length in runes handed to the
	// inference client per request.
	DefaultChunkSize = 50

	defaultImportance  = 3
	particleImportance = 2
)

// Candidate is one extracted vocabulary item. Importance is ordinal: 1 is the
// most important, higher values less so.
type Candidate struct {
	Word             string
	Reading          string
	Meaning          string
	PartOfSpeech     string
	Importance       int
	ImportanceReason string
	Context          string
}

// particleGazetteer lists common particles and auxiliary forms that the
// inference model tends to omit from its output. Any of these appearing
// verbatim in a chunk is appended as a low-importance candidate.
var particleGazetteer = []string{
	"とか", "あと", "何", "その", "ですね",
	"が", "は", "を", "に", "へ", "で", "から", "まで", "より",
	"ます", "ました", "です", "でした",
	"ある", "ない", "なかった", "ありました", "がいます",
}

// Extractor extracts vocabulary candidates from transcripts using an inference
// client, with a morphological segmenter as fallback when the client yields
// nothing usable.
type Extractor struct {
	client    inference.Client
	segmenter *Segmenter
	chunkSize int
}

// NewExtractor creates a new Extractor.
func NewExtractor(client inference.Client) (*Extractor, error) {
	segmenter, err := NewSegmenter()
	if err != nil {
		return nil, fmt.Errorf("NewSegmenter() > %w", err)
	}
	return &Extractor{
		client:    client,
		segmenter: segmenter,
		chunkSize: DefaultChunkSize,
	}, nil
}

// Extract returns the transcript's vocabulary candidates, deduplicated across
// chunks and sorted by ascending importance. Per-chunk inference failures are
// recoverable: the chunk is skipped and processing continues. Only when the
// whole transcript yields zero candidates does the segmenter fallback run.
func (e *Extractor) Extract(ctx context.Context, transcript string) ([]Candidate, error) {
	acc := newAccumulator()
	for i, chunk := range chunkRunes(transcript, e.chunkSize) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		response, err := e.client.ExtractVocabulary(ctx, inference.ExtractVocabularyRequest{Chunk: chunk})
		if err != nil {
			slog.Warn("Skipping transcript chunk after extraction failure",
				slog.Int("chunk", i),
				slog.Any("error", err))
		} else {
			for _, entry := range response.Entries {
				candidate, ok := normalizeEntry(entry)
				if !ok {
					continue
				}
				acc.add(candidate)
			}
		}

		for _, particle := range particleGazetteer {
			if strings.Contains(chunk, particle) {
				acc.add(Candidate{
					Word:             particle,
					Reading:          particle,
					Meaning:          "particle/auxiliary",
					PartOfSpeech:     "particle",
					Importance:       particleImportance,
					ImportanceReason: "Common grammatical element",
					Context:          chunk,
				})
			}
		}
	}

	candidates := acc.candidates
	if len(candidates) == 0 {
		var err error
		candidates, err = e.segmentFallback(transcript)
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Importance < candidates[j].Importance
	})
	return candidates, nil
}

// segmentFallback lexically segments the transcript when inference produced no
// candidates at all, so a transcript is never lost to a service outage.
func (e *Extractor) segmentFallback(transcript string) ([]Candidate, error) {
	tokens, err := e.segmenter.Segment(transcript)
	if err != nil {
		return nil, fmt.Errorf("segmenter.Segment() > %w", err)
	}

	slog.Warn("Inference yielded no vocabulary, falling back to lexical segmentation",
		slog.Int("tokens", len(tokens)))

	acc := newAccumulator()
	for _, token := range tokens {
		if !containsJapaneseScript(token.Surface) {
			continue
		}
		reading := token.Reading
		if reading == "" {
			reading = token.Surface
		}
		acc.add(Candidate{
			Word:         token.Surface,
			Reading:      reading,
			PartOfSpeech: token.PartOfSpeech,
			Importance:   defaultImportance,
		})
	}
	return acc.candidates, nil
}

// accumulator keeps insertion order while dropping repeated words across
// chunks.
type accumulator struct {
	seen       map[string]struct{}
	candidates []Candidate
}

func newAccumulator() *accumulator {
	return &accumulator{seen: map[string]struct{}{}}
}

func (a *accumulator) add(candidate Candidate) bool {
	if _, ok := a.seen[candidate.Word]; ok {
		return false
	}
	a.seen[candidate.Word] = struct{}{}
	a.candidates = append(a.candidates, candidate)
	return true
}

// normalizeEntry validates one wire-shaped entry and fills defaults for its
// optional fields. Entries without a Japanese-script word are rejected.
func normalizeEntry(entry inference.VocabularyEntry) (Candidate, bool) {
	word := strings.TrimSpace(entry.Word)
	if word == "" || !containsJapaneseScript(word) {
		return Candidate{}, false
	}

	candidate := Candidate{
		Word:             word,
		Reading:          entry.Reading,
		Meaning:          entry.Meaning,
		PartOfSpeech:     entry.PartOfSpeech,
		Importance:       defaultImportance,
		ImportanceReason: entry.ImportanceReason,
		Context:          entry.Context,
	}
	if candidate.Reading == "" {
		candidate.Reading = word
	}
	if candidate.Meaning == "" {
		candidate.Meaning = "unknown meaning"
	}
	if candidate.PartOfSpeech == "" {
		candidate.PartOfSpeech = "unknown"
	}
	if candidate.ImportanceReason == "" {
		candidate.ImportanceReason = "Extracted from transcript"
	}
	if level, err := strconv.Atoi(strings.TrimSpace(entry.ImportanceLevel)); err == nil && level > 0 {
		candidate.Importance = level
	}
	return candidate, true
}

func containsJapaneseScript(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// chunkRunes splits s into fixed-size, non-overlapping rune chunks.
func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
