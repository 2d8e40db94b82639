package tutor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

const (
	// masteryStreakThreshold is the consecutive-correct count, per question
	// type, at which a word transitions to mastered.
	masteryStreakThreshold = 3

	// maxGradeAttempts bounds re-reads when a concurrent grading event wins
	// the conditional write.
	maxGradeAttempts = 3
)

// ProgressUpdater applies grading events to progress records and evaluates the
// mastery transition.
type ProgressUpdater struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	recorder     *MasteryRecorder

	now func() time.Time
}

// NewProgressUpdater creates a new ProgressUpdater.
func NewProgressUpdater(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	recorder *MasteryRecorder,
) *ProgressUpdater {
	return &ProgressUpdater{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		recorder:     recorder,
	}
}

// Grade applies one grading event to the user's record for a word and returns
// the updated record. The mastery transition is one-shot: it fires only on the
// call where both streaks first reach the threshold, and never again.
func (u *ProgressUpdater) Grade(
	ctx context.Context,
	userID, word string,
	questionType QuestionType,
	isCorrect bool,
) (*progress.Record, error) {
	var lastErr error
	for attempt := 0; attempt < maxGradeAttempts; attempt++ {
		record, _, err := u.applyOnce(ctx, userID, word, questionType, isCorrect)
		if errors.Is(err, progress.ErrVersionConflict) {
			// A concurrent grading event won the write. Re-read and re-apply.
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return record, nil
	}
	return nil, fmt.Errorf("grade(%s, %s) lost %d conditional writes > %w", userID, word, maxGradeAttempts, lastErr)
}

func (u *ProgressUpdater) applyOnce(
	ctx context.Context,
	userID, word string,
	questionType QuestionType,
	isCorrect bool,
) (*progress.Record, bool, error) {
	record, err := u.progressRepo.Find(ctx, userID, word)
	if err != nil {
		return nil, false, fmt.Errorf("progressRepo.Find() > %w", err)
	}

	created := false
	if record == nil {
		record, err = u.newRecord(ctx, userID, word)
		if err != nil {
			return nil, false, err
		}
		created = true
	}

	now := u.timeNow()
	switch questionType {
	case QuestionTypeMeaning:
		record.MeaningAttempts++
		if isCorrect {
			record.MeaningCorrect++
			record.MeaningStreak++
		} else {
			record.MeaningStreak = 0
		}
	case QuestionTypeReading:
		record.ReadingAttempts++
		if isCorrect {
			record.ReadingCorrect++
			record.ReadingStreak++
		} else {
			record.ReadingStreak = 0
		}
	default:
		return nil, false, fmt.Errorf("unknown question type %q", questionType)
	}
	record.LastSeen = sql.NullTime{Time: now, Valid: true}

	transitioned := false
	if !record.Mastered &&
		record.MeaningStreak >= masteryStreakThreshold &&
		record.ReadingStreak >= masteryStreakThreshold {
		record.Mastered = true
		record.MasteredDate = sql.NullTime{Time: now, Valid: true}
		transitioned = true
	}

	if created {
		if err := u.progressRepo.Create(ctx, record); err != nil {
			return nil, false, fmt.Errorf("progressRepo.Create() > %w", err)
		}
	} else {
		if err := u.progressRepo.Update(ctx, record); err != nil {
			if errors.Is(err, progress.ErrVersionConflict) {
				return nil, false, err
			}
			return nil, false, fmt.Errorf("progressRepo.Update() > %w", err)
		}
	}

	if transitioned {
		if err := u.recorder.RecordMastery(ctx, userID, word, MasterySourcePractice); err != nil {
			return nil, false, fmt.Errorf("recorder.RecordMastery() > %w", err)
		}
	}

	return record, created, nil
}

// newRecord initializes a progress record from the catalog entry's snapshot.
// A word missing from the catalog still gets a record with empty metadata.
func (u *ProgressUpdater) newRecord(ctx context.Context, userID, word string) (*progress.Record, error) {
	record := &progress.Record{
		UserID: userID,
		Word:   word,
	}
	entry, err := u.catalogRepo.FindByWord(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.FindByWord() > %w", err)
	}
	if entry != nil {
		record.Reading = entry.Reading
		record.Meaning = entry.Meaning
	}
	return record, nil
}

func (u *ProgressUpdater) timeNow() time.Time {
	if u.now != nil {
		return u.now()
	}
	return time.Now()
}
