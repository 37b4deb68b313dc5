package domain

import "testing"

func TestClassifyScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Rating
	}{
		{-10, RatingFair},
		{0, RatingFair},
		{99.9, RatingFair},
		{100, RatingModerate},
		{199.9, RatingModerate},
		{200, RatingGood},
		{299.9, RatingGood},
		{300, RatingPerfect},
		{450, RatingPerfect},
	}
	for _, tc := range cases {
		if got := ClassifyScore(tc.score); got != tc.want {
			t.Errorf("ClassifyScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
