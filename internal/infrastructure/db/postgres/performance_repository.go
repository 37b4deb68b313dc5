package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// PerformanceRepository implements the append-only history store and the
// leaderboard read model against Postgres.
type PerformanceRepository struct {
	pool *pgxpool.Pool
}

func NewPerformanceRepository(pool *pgxpool.Pool) *PerformanceRepository {
	return &PerformanceRepository{pool: pool}
}

func (r *PerformanceRepository) InsertSnapshot(ctx context.Context, snapshot *domain.PerformanceSnapshot) error {
	query := `
		INSERT INTO performance_scores
			(user_id, score, rating, calculation_method, period_start, period_end,
			 tasks_completed, total_tasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING score_id, created_date`

	err := r.pool.QueryRow(ctx, query,
		snapshot.UserID, snapshot.Score, snapshot.Rating, snapshot.CalculationMethod,
		snapshot.PeriodStart, snapshot.PeriodEnd, snapshot.TasksCompleted, snapshot.TotalTasks,
	).Scan(&snapshot.ID, &snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert performance snapshot: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) LatestByUser(ctx context.Context, userID int64) (*domain.PerformanceSnapshot, error) {
	query := `
		SELECT score_id, user_id, score, rating, calculation_method, period_start, period_end,
		       tasks_completed, total_tasks, created_date
		FROM performance_scores
		WHERE user_id = $1
		ORDER BY created_date DESC
		LIMIT 1`

	var s domain.PerformanceSnapshot
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.Score, &s.Rating, &s.CalculationMethod,
		&s.PeriodStart, &s.PeriodEnd, &s.TasksCompleted, &s.TotalTasks, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest performance snapshot: %w", err)
	}
	return &s, nil
}

// LeaderboardEntries returns one row per active user of the role: the latest
// snapshot via DISTINCT ON (nulls when the user was never scored), the cached
// user fields, and all-time task counts over completed/in_progress tasks.
func (r *PerformanceRepository) LeaderboardEntries(ctx context.Context, role string) ([]ports.LeaderboardEntry, error) {
	query := `
		WITH task_counts AS (
			SELECT assigned_to AS user_id,
			       COUNT(*) AS total_tasks,
			       SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS tasks_completed
			FROM tasks
			WHERE status IN ('completed', 'in_progress')
			GROUP BY assigned_to
		)
		SELECT DISTINCT ON (u.user_id)
		       u.user_id, u.names, u.email, u.role,
		       p.score, p.rating,
		       u.performance_score, u.performance_rating,
		       COALESCE(tc.tasks_completed, 0), COALESCE(tc.total_tasks, 0)
		FROM users u
		LEFT JOIN performance_scores p ON u.user_id = p.user_id
		LEFT JOIN task_counts tc ON u.user_id = tc.user_id
		WHERE u.role = $1 AND u.is_active = true
		ORDER BY u.user_id, p.created_date DESC NULLS LAST`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("leaderboard entries: %w", err)
	}
	defer rows.Close()

	var entries []ports.LeaderboardEntry
	for rows.Next() {
		var e ports.LeaderboardEntry
		err := rows.Scan(
			&e.UserID, &e.Names, &e.Email, &e.Role,
			&e.SnapshotScore, &e.SnapshotRating,
			&e.CachedScore, &e.CachedRating,
			&e.TasksCompleted, &e.TotalTasks,
		)
		if err != nil {
			return nil, fmt.Errorf("leaderboard entries: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
