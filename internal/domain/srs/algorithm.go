package srs

import (
	"math"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor after a review.
//
// The ease factor is the per-card multiplier controlling how fast the
// review interval grows after successful recall. Under the adaptive policy
// it follows the classic diminishing/accelerating spacing law as a
// monotonic function of the numeric quality grade q in [0,5]:
//
//	EF' = EF + 0.1 - (5-q) * (0.08 + (5-q) * 0.02)
//
// The result is rounded to two decimal places and clamped to
// params.MinEaseFactor. High-quality grades grow the ease factor, lower
// grades shrink it. With AdaptiveEase disabled the current value is
// returned unchanged, which is the fixed-multiplier variant.
func calculateNewEaseFactor(
	currentEF float64,
	grade domain.ReviewGrade,
	params *Params,
) float64 {
	if !params.AdaptiveEase {
		return currentEF
	}

	q := float64(grade.Quality())
	newEF := currentEF + 0.1 - (5-q)*(0.08+(5-q)*0.02)
	newEF = math.Round(newEF*100) / 100

	// Ensure the ease factor never drops below the floor
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days.
//
// Policy:
//   - "again" resets the interval to the base interval.
//   - A first success (repetition still 0) also gets the base interval;
//     the short scheduling offset for it is handled by
//     calculateNextReviewDate, not here.
//   - A subsequent "hard" grows the interval by the fixed hard factor.
//   - A subsequent "good" grows the interval by the card's own ease
//     factor, rounded to one decimal place.
func calculateNewInterval(
	currentInterval float64,
	repetition int,
	easeFactor float64,
	grade domain.ReviewGrade,
	params *Params,
) float64 {
	if grade == domain.ReviewGradeAgain || repetition == 0 {
		return params.BaseIntervalDays
	}

	if grade == domain.ReviewGradeHard {
		return currentInterval * params.HardFactor
	}

	return math.Round(currentInterval*easeFactor*10) / 10
}

// calculateNextReviewDate determines when the card should next be shown.
//
// Lapses resurface after params.AgainDelay and first successes after
// params.FirstReviewDelay, both at minutes scale so the card comes back
// within the same session. Every later success is scheduled the full
// interval ahead, including its fractional-day part.
func calculateNextReviewDate(
	interval float64,
	repetition int,
	grade domain.ReviewGrade,
	now time.Time,
	params *Params,
) time.Time {
	if grade == domain.ReviewGradeAgain {
		return now.Add(params.AgainDelay)
	}

	if repetition == 0 {
		return now.Add(params.FirstReviewDelay)
	}

	return now.Add(time.Duration(interval * float64(24*time.Hour)))
}

// calculateNextCard creates a new Card with updated scheduling state based
// on the review grade. The input card is never mutated; callers receive a
// copy carrying the full new state, ready to be written back atomically.
//
// Order of operations matters: the interval grows by the ease factor the
// card entered the review with, the repetition count is updated, the ease
// factor adapts, and the direction switch is checked against the new
// repetition value.
func calculateNextCard(
	card *domain.Card,
	grade domain.ReviewGrade,
	askedDirection domain.Direction,
	now time.Time,
	params *Params,
) *domain.Card {
	next := card.Clone()

	next.Interval = calculateNewInterval(
		card.Interval,
		card.Repetition,
		card.EaseFactor,
		grade,
		params,
	)

	if grade == domain.ReviewGradeAgain {
		next.Repetition = 0
	} else {
		next.Repetition = card.Repetition + 1
	}

	next.NextReviewDate = calculateNextReviewDate(next.Interval, card.Repetition, grade, now, params)
	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, grade, params)

	if card.AllowDirectionChange {
		next.ActiveDirection = calculateNewDirection(
			card.ActiveDirection,
			next.Repetition,
			grade,
			askedDirection,
			params,
		)
	}

	return next
}

// calculateNewDirection applies the direction-switch policy for cards with
// direction changes enabled.
//
// A failure pins the card to the side that was just asked, so a card that
// had reached "both" narrows back to the lapsed side. A success promotes
// the card one step in the order front -> back -> both whenever the new
// repetition count is a positive multiple of the switch threshold,
// regardless of which success grade triggered it.
func calculateNewDirection(
	current domain.Direction,
	newRepetition int,
	grade domain.ReviewGrade,
	askedDirection domain.Direction,
	params *Params,
) domain.Direction {
	if grade == domain.ReviewGradeAgain {
		return askedDirection
	}

	if newRepetition > 0 && newRepetition%params.SwitchThreshold == 0 {
		return current.Next()
	}

	return current
}
