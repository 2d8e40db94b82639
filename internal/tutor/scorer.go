package tutor

import (
	"math/rand"
	"time"

	"github.com/WilliamWisten/japaneseLessons/internal/catalog"
	"github.com/WilliamWisten/japaneseLessons/internal/progress"
)

const (
	newWordBonus        = 2000.0
	strugglingBonus     = 500.0
	brokenStreakBonus   = 300.0
	recencyBonus        = 500.0
	strugglingThreshold = 0.7
	tieBreakerRange     = 100.0

	recencyWindowMinDays = 3
	recencyWindowMaxDays = 7
)

// ScoreWord computes the study priority of a catalog entry for one user.
// Higher means sooner. The result only orders candidates relative to each
// other; the absolute value carries no meaning.
//
// record may be nil for a word the user has never been graded on.
func ScoreWord(entry catalog.Entry, record *progress.Record, now time.Time, rng *rand.Rand) float64 {
	// More frequent words start higher. The rank ceiling in the selector keeps
	// this non-negative.
	score := 1000.0 - float64(entry.FrequencyRank)/10.0

	if record == nil || record.MeaningAttempts == 0 || record.ReadingAttempts == 0 {
		// A word missing attempts on either axis is still new.
		score += newWordBonus
	} else {
		meaningAccuracy := float64(record.MeaningCorrect) / float64(record.MeaningAttempts)
		readingAccuracy := float64(record.ReadingCorrect) / float64(record.ReadingAttempts)

		// The weaker skill dominates the priority.
		meaningPriority := 1000.0 * (1.0 - meaningAccuracy)
		readingPriority := 1000.0 * (1.0 - readingAccuracy)
		score += max(meaningPriority, readingPriority)

		if meaningAccuracy < strugglingThreshold && readingAccuracy < strugglingThreshold {
			score += strugglingBonus
		}

		// A zero streak with attempts behind it means the streak just broke.
		if record.MeaningStreak == 0 {
			score += brokenStreakBonus
		}
		if record.ReadingStreak == 0 {
			score += brokenStreakBonus
		}
	}

	if record != nil && record.LastSeen.Valid {
		daysSincePractice := now.Sub(record.LastSeen.Time).Hours() / 24.0
		if daysSincePractice >= recencyWindowMinDays && daysSincePractice <= recencyWindowMaxDays {
			score += recencyBonus
		}
	}

	// Random tie-breaker so equal candidates vary across sessions.
	score += rng.Float64() * tieBreakerRange

	return score
}
