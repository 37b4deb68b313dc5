package domain

import "time"

// Rating is the tier a performance score falls into.
type Rating string

const (
	RatingFair     Rating = "fair"
	RatingModerate Rating = "moderate"
	RatingGood     Rating = "good"
	RatingPerfect  Rating = "perfect"
)

// Rating thresholds, checked from highest to lowest. A score below every
// threshold classifies as fair.
const (
	thresholdPerfect  = 300
	thresholdGood     = 200
	thresholdModerate = 100
)

// ClassifyScore maps a raw score onto its rating tier. Monotonic
// non-decreasing in score; always returns one of the four Rating values.
func ClassifyScore(score float64) Rating {
	switch {
	case score >= thresholdPerfect:
		return RatingPerfect
	case score >= thresholdGood:
		return RatingGood
	case score >= thresholdModerate:
		return RatingModerate
	default:
		return RatingFair
	}
}

// PerformanceSnapshot is an immutable, append-only record of one scoring run
// for one user. Snapshots are never updated or deleted; the most recent one
// (by CreatedAt) reflects the last time scoring ran, not necessarily "now".
type PerformanceSnapshot struct {
	ID                int64     `json:"score_id"`
	UserID            int64     `json:"user_id"`
	Score             int       `json:"score"`
	Rating            Rating    `json:"rating"`
	CalculationMethod string    `json:"calculation_method"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	TasksCompleted    int       `json:"tasks_completed"`
	TotalTasks        int       `json:"total_tasks"`
	CreatedAt         time.Time `json:"created_date"`
}
