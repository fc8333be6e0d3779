package domain

import "errors"

// ErrInvalidReviewGrade is returned when a review grade is not valid.
var ErrInvalidReviewGrade = errors.New("invalid review grade")

// ReviewGrade is the learner's self-reported recall strength for a single
// review event. Grades are ordinal: again < hard < good.
type ReviewGrade string

// Possible review grade values
const (
	ReviewGradeAgain ReviewGrade = "again"
	ReviewGradeHard  ReviewGrade = "hard"
	ReviewGradeGood  ReviewGrade = "good"
)

// IsValid reports whether g is one of the known grade values.
func (g ReviewGrade) IsValid() bool {
	switch g {
	case ReviewGradeAgain, ReviewGradeHard, ReviewGradeGood:
		return true
	default:
		return false
	}
}

// IsSuccess reports whether the grade counts as a successful recall.
// Only "again" is a failure.
func (g ReviewGrade) IsSuccess() bool {
	return g == ReviewGradeHard || g == ReviewGradeGood
}

// Quality maps the grade onto the 0-5 numeric quality scale consumed by the
// adaptive ease-factor formula: again=0, hard=3, good=5.
func (g ReviewGrade) Quality() int {
	switch g {
	case ReviewGradeHard:
		return 3
	case ReviewGradeGood:
		return 5
	default:
		return 0
	}
}
