package ports

import (
	"context"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// LeaderboardEntry is one user's raw leaderboard data as fetched from the
// store: the latest snapshot (nil fields when the user was never scored), the
// denormalized cache on the user row, and all-time task counts restricted to
// completed/in_progress statuses. Score resolution and ordering happen in the
// service layer.
type LeaderboardEntry struct {
	UserID         int64
	Names          string
	Email          string
	Role           string
	SnapshotScore  *int
	SnapshotRating *domain.Rating
	CachedScore    int
	CachedRating   domain.Rating
	TasksCompleted int
	TotalTasks     int
}

// PerformanceRepository is the append-only history store for scoring runs.
type PerformanceRepository interface {
	// InsertSnapshot appends one immutable history row.
	InsertSnapshot(ctx context.Context, snapshot *domain.PerformanceSnapshot) error
	// LatestByUser returns the most recent snapshot for the user, or
	// domain.ErrSnapshotNotFound when none exists.
	LatestByUser(ctx context.Context, userID int64) (*domain.PerformanceSnapshot, error)
	// LeaderboardEntries returns one entry per active user of the role, each
	// carrying its latest snapshot (if any) and live task counts.
	LeaderboardEntries(ctx context.Context, role string) ([]LeaderboardEntry, error)
}
