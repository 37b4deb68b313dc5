package ports

import (
	"context"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// ScoreResult is the outcome of one score calculation. The farmer and manager
// formulas populate different subsets of the optional fields; Score and Rating
// are always set.
type ScoreResult struct {
	Score  int           `json:"score"`
	Rating domain.Rating `json:"rating"`

	// Farmer calculation fields.
	TasksCompleted  int     `json:"tasks_completed"`
	TotalTasks      int     `json:"total_tasks"`
	EfficiencyScore float64 `json:"efficiency_score,omitempty"`
	CompletionRate  float64 `json:"completion_rate,omitempty"`

	// Manager calculation fields.
	TeamSize         int     `json:"team_size,omitempty"`
	ActiveFarmers    int     `json:"active_farmers,omitempty"`
	AverageTeamScore float64 `json:"average_team_score,omitempty"`
	TasksAssigned    int     `json:"tasks_assigned,omitempty"`
}

// PerformanceUpdate couples the refreshed user identity with the calculation
// that produced it.
type PerformanceUpdate struct {
	User        *domain.User `json:"user"`
	Performance *ScoreResult `json:"performance"`
}

// BatchResult is one user's outcome within a batch update. Exactly one of
// Update and Error is set; a failed user never aborts the batch.
type BatchResult struct {
	UserID      int64        `json:"user_id"`
	User        *domain.User `json:"user,omitempty"`
	Performance *ScoreResult `json:"performance,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// LeaderboardRow is one ranked user in the leaderboard response.
type LeaderboardRow struct {
	UserID            int64         `json:"user_id"`
	Names             string        `json:"names"`
	Email             string        `json:"email"`
	Role              string        `json:"role"`
	PerformanceScore  int           `json:"performance_score"`
	PerformanceRating domain.Rating `json:"performance_rating"`
	TasksCompleted    int           `json:"tasks_completed"`
	TotalTasks        int           `json:"total_tasks"`
}

// PerformanceService is the scoring core: per-user calculation, persistence of
// results, leaderboard building, and batch recomputation.
type PerformanceService interface {
	// CalculateFarmerScore scores one farmer over the trailing periodDays
	// window. periodDays <= 0 falls back to the 30-day default.
	CalculateFarmerScore(ctx context.Context, farmerID int64, periodDays int) (*ScoreResult, error)
	// CalculateManagerScore scores one manager: weighted team average plus
	// assignment efficiency and completion bonuses.
	CalculateManagerScore(ctx context.Context, managerID int64, periodDays int) (*ScoreResult, error)
	// UpdateUserPerformance recalculates, caches the result on the user row,
	// and appends a history snapshot.
	UpdateUserPerformance(ctx context.Context, userID int64, role string, periodDays int) (*PerformanceUpdate, error)
	// GetLeaderboard ranks active users of the role by resolved score.
	GetLeaderboard(ctx context.Context, role string, limit int) ([]LeaderboardRow, error)
	// GetPerformanceHistory returns the latest snapshot summary for a user.
	GetPerformanceHistory(ctx context.Context, userID int64) (*domain.PerformanceSnapshot, error)
	// BatchUpdatePerformance refreshes every active user of the role,
	// isolating per-user failures as inline error entries.
	BatchUpdatePerformance(ctx context.Context, role string, periodDays int) ([]BatchResult, error)
}
