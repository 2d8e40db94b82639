package tutor

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/mastery"
	mock_catalog "github.com/WilliamWisten/japaneseLessons/internal/mocks/catalog"
	mock_mastery "github.com/WilliamWisten/japaneseLessons/internal/mocks/mastery"
	mock_progress "github.com/WilliamWisten/japaneseLessons/internal/mocks/progress"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

func newTestUpdater(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	masteryRepo mastery.Repository,
	now time.Time,
) *ProgressUpdater {
	recorder := NewMasteryRecorder(catalogRepo, masteryRepo)
	recorder.now = func() time.Time { return now }
	updater := NewProgressUpdater(catalogRepo, progressRepo, recorder)
	updater.now = func() time.Time { return now }
	return updater
}

func TestProgressUpdater_Grade_FirstEvent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "食べる").Return(nil, nil)
	catalogRepo.EXPECT().FindByWord(gomock.Any(), "食べる").Return(&catalog.Entry{
		Word:    "食べる",
		Reading: "たべる",
		Meaning: "to eat",
	}, nil)
	progressRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "食べる", QuestionTypeMeaning, true)
	require.NoError(t, err)

	assert.Equal(t, "たべる", record.Reading)
	assert.Equal(t, "to eat", record.Meaning)
	assert.Equal(t, 1, record.MeaningAttempts)
	assert.Equal(t, 1, record.MeaningCorrect)
	assert.Equal(t, 1, record.MeaningStreak)
	assert.Equal(t, 0, record.ReadingAttempts)
	assert.False(t, record.Mastered)
	assert.Equal(t, now, record.LastSeen.Time)
}

func TestProgressUpdater_Grade_IncorrectResetsOnlyThatStreak(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "行く").Return(&progress.Record{
		UserID: "user-1", Word: "行く",
		MeaningAttempts: 4, MeaningCorrect: 3, MeaningStreak: 2,
		ReadingAttempts: 4, ReadingCorrect: 4, ReadingStreak: 4,
	}, nil)
	progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "行く", QuestionTypeMeaning, false)
	require.NoError(t, err)

	assert.Equal(t, 5, record.MeaningAttempts)
	assert.Equal(t, 3, record.MeaningCorrect)
	assert.Equal(t, 0, record.MeaningStreak)
	// The other question type is untouched.
	assert.Equal(t, 4, record.ReadingAttempts)
	assert.Equal(t, 4, record.ReadingStreak)

	assert.LessOrEqual(t, record.MeaningCorrect, record.MeaningAttempts)
	assert.LessOrEqual(t, record.MeaningStreak, record.MeaningAttempts)
}

func TestProgressUpdater_Grade_MasteryTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "食べる").Return(&progress.Record{
		UserID: "user-1", Word: "食べる", Reading: "たべる", Meaning: "to eat",
		MeaningAttempts: 5, MeaningCorrect: 5, MeaningStreak: 3,
		ReadingAttempts: 4, ReadingCorrect: 4, ReadingStreak: 2,
	}, nil)
	progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	catalogRepo.EXPECT().FindByWord(gomock.Any(), "食べる").Return(&catalog.Entry{
		Word: "食べる", Reading: "たべる", Meaning: "to eat",
	}, nil)
	masteryRepo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fact *mastery.Fact) error {
			assert.Equal(t, "user-1", fact.UserID)
			assert.Equal(t, "食べる", fact.Word)
			assert.Equal(t, MasterySourcePractice, fact.Source)
			assert.Equal(t, now, fact.MasteredDate)
			return nil
		})

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "食べる", QuestionTypeReading, true)
	require.NoError(t, err)

	assert.Equal(t, 3, record.ReadingStreak)
	assert.True(t, record.Mastered)
	assert.Equal(t, now, record.MasteredDate.Time)
}

func TestProgressUpdater_Grade_MasteryIsOneShot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	masteredAt := sql.NullTime{Time: now.AddDate(0, 0, -10), Valid: true}
	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "食べる").Return(&progress.Record{
		UserID: "user-1", Word: "食べる",
		MeaningAttempts: 10, MeaningCorrect: 10, MeaningStreak: 7,
		ReadingAttempts: 10, ReadingCorrect: 10, ReadingStreak: 7,
		Mastered:        true,
		MasteredDate:    masteredAt,
	}, nil)
	progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	// No mastery fact is written again: masteryRepo has no expectations.

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "食べる", QuestionTypeMeaning, true)
	require.NoError(t, err)

	assert.True(t, record.Mastered)
	assert.Equal(t, masteredAt, record.MasteredDate)
}

func TestProgressUpdater_Grade_RetriesOnVersionConflict(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	stale := &progress.Record{
		UserID: "user-1", Word: "行く",
		MeaningAttempts: 1, MeaningCorrect: 1, MeaningStreak: 1,
		ReadingAttempts: 1, ReadingCorrect: 1, ReadingStreak: 1,
		Version:         3,
	}
	fresh := &progress.Record{
		UserID: "user-1", Word: "行く",
		MeaningAttempts: 2, MeaningCorrect: 2, MeaningStreak: 2,
		ReadingAttempts: 1, ReadingCorrect: 1, ReadingStreak: 1,
		Version:         4,
	}

	gomock.InOrder(
		progressRepo.EXPECT().Find(gomock.Any(), "user-1", "行く").Return(stale, nil),
		progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(progress.ErrVersionConflict),
		progressRepo.EXPECT().Find(gomock.Any(), "user-1", "行く").Return(fresh, nil),
		progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
	)

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "行く", QuestionTypeMeaning, true)
	require.NoError(t, err)

	// The second attempt applied the event on top of the fresh read.
	assert.Equal(t, 3, record.MeaningAttempts)
	assert.Equal(t, 3, record.MeaningStreak)
}

func TestProgressUpdater_Grade_GivesUpAfterRepeatedConflicts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "行く").Return(&progress.Record{
		UserID: "user-1", Word: "行く",
		MeaningAttempts: 1, ReadingAttempts: 1,
	}, nil).Times(maxGradeAttempts)
	progressRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		Return(progress.ErrVersionConflict).Times(maxGradeAttempts)

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	_, err := updater.Grade(context.Background(), "user-1", "行く", QuestionTypeMeaning, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, progress.ErrVersionConflict)
}

func TestProgressUpdater_Grade_UnknownWordStillGetsRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	catalogRepo := mock_catalog.NewMockRepository(ctrl)
	progressRepo := mock_progress.NewMockRepository(ctrl)
	masteryRepo := mock_mastery.NewMockRepository(ctrl)

	progressRepo.EXPECT().Find(gomock.Any(), "user-1", "珍しい").Return(nil, nil)
	catalogRepo.EXPECT().FindByWord(gomock.Any(), "珍しい").Return(nil, nil)
	progressRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	updater := newTestUpdater(catalogRepo, progressRepo, masteryRepo, now)
	record, err := updater.Grade(context.Background(), "user-1", "珍しい", QuestionTypeReading, false)
	require.NoError(t, err)

	assert.Empty(t, record.Reading)
	assert.Equal(t, 1, record.ReadingAttempts)
	assert.Equal(t, 0, record.ReadingStreak)
}
