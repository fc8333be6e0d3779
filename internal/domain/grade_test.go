package domain

import "testing"

func TestReviewGradeQuality(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		grade   ReviewGrade
		quality int
		success bool
	}{
		{ReviewGradeAgain, 0, false},
		{ReviewGradeHard, 3, true},
		{ReviewGradeGood, 5, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.grade), func(t *testing.T) {
			if got := tc.grade.Quality(); got != tc.quality {
				t.Errorf("Expected quality %d, got %d", tc.quality, got)
			}
			if got := tc.grade.IsSuccess(); got != tc.success {
				t.Errorf("Expected IsSuccess %v, got %v", tc.success, got)
			}
			if !tc.grade.IsValid() {
				t.Errorf("Expected %q to be valid", tc.grade)
			}
		})
	}

	if ReviewGrade("easy").IsValid() {
		t.Error("Expected unknown grade to be invalid")
	}
}
