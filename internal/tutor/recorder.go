package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/mastery"
)

// Mastery fact sources.
const (
	MasterySourcePractice = "practice"
	MasterySourcePodcast  = "podcast"
)

// MasteryRecorder persists one-time mastery facts with a dictionary snapshot
// taken from the word catalog.
type MasteryRecorder struct {
	catalogRepo catalog.Repository
	masteryRepo mastery.Repository

	now func() time.Time
}

// NewMasteryRecorder creates a new MasteryRecorder.
func NewMasteryRecorder(catalogRepo catalog.Repository, masteryRepo mastery.Repository) *MasteryRecorder {
	return &MasteryRecorder{
		catalogRepo: catalogRepo,
		masteryRepo: masteryRepo,
	}
}

// RecordMastery records that the user mastered a word. The word must match a
// catalog entry exactly; an unknown word is logged and skipped so that a stale
// caller cannot fail a grading flow.
func (r *MasteryRecorder) RecordMastery(ctx context.Context, userID, word, source string) error {
	entry, err := r.catalogRepo.FindByWord(ctx, word)
	if err != nil {
		return fmt.Errorf("catalogRepo.FindByWord() > %w", err)
	}
	if entry == nil {
		slog.Warn("Word not found in catalog, skipping mastery record",
			slog.String("word", word),
			slog.String("user_id", userID))
		return nil
	}

	fact := &mastery.Fact{
		UserID:       userID,
		Word:         entry.Word,
		Source:       source,
		MasteredDate: r.timeNow(),
		Reading:      entry.Reading,
		Meaning:      entry.Meaning,
	}
	if err := r.masteryRepo.Put(ctx, fact); err != nil {
		return fmt.Errorf("masteryRepo.Put() > %w", err)
	}
	return nil
}

func (r *MasteryRecorder) timeNow() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
