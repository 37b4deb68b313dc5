package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/api/metrics"
	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

const (
	defaultPeriodDays     = 30
	defaultLeaderboardN   = 10
	batchWorkers          = 8
	assignmentBaselineSec = 24 * 60 * 60 // fast-dispatch baseline: 24h
)

// LeaderboardCache abstracts the leaderboard response cache (Redis).
type LeaderboardCache interface {
	Get(ctx context.Context, role string, limit int) ([]ports.LeaderboardRow, bool)
	Set(ctx context.Context, role string, limit int, rows []ports.LeaderboardRow)
}

// PerformanceService implements the scoring core: the farmer/manager score
// calculators, the recorder that persists results, the leaderboard builder,
// and the batch orchestrator.
type PerformanceService struct {
	users   ports.UserRepository
	tasks   ports.TaskRepository
	history ports.PerformanceRepository
	cache   LeaderboardCache // nil disables caching
	log     zerolog.Logger
}

// NewPerformanceService wires the scoring core. cache may be nil.
func NewPerformanceService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	history ports.PerformanceRepository,
	cache LeaderboardCache,
	log zerolog.Logger,
) *PerformanceService {
	return &PerformanceService{users: users, tasks: tasks, history: history, cache: cache, log: log}
}

// CalculateFarmerScore scores one farmer over the trailing window.
//
// Only tasks created in-window with status completed or in_progress count.
// With duration data present on both sides, the score is the duration
// efficiency (clamped to [0,100]) plus half the completion rate; without it,
// the score is the bare completion rate. Rounding happens once, at the end.
func (s *PerformanceService) CalculateFarmerScore(ctx context.Context, farmerID int64, periodDays int) (*ports.ScoreResult, error) {
	if periodDays <= 0 {
		periodDays = defaultPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -periodDays)

	stats, err := s.tasks.FarmerStats(ctx, farmerID, since)
	if err != nil {
		return nil, fmt.Errorf("calculate farmer score: %w", err)
	}

	// No tasks in window is a defined zero result, not an error.
	if stats.TotalTasks == 0 {
		return &ports.ScoreResult{Score: 0, Rating: domain.RatingFair}, nil
	}

	completionRate := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100

	var efficiency, totalScore float64
	if stats.ExpectedSeconds > 0 && stats.ActualSeconds > 0 {
		efficiency = (stats.ExpectedSeconds - stats.ActualSeconds) / stats.ExpectedSeconds * 100
		efficiency = math.Max(0, math.Min(efficiency, 100))
		totalScore = efficiency + completionRate*0.5
	} else {
		totalScore = completionRate
	}

	return &ports.ScoreResult{
		Score:           int(math.Round(totalScore)),
		Rating:          domain.ClassifyScore(totalScore),
		TasksCompleted:  stats.CompletedTasks,
		TotalTasks:      stats.TotalTasks,
		EfficiencyScore: efficiency,
		CompletionRate:  completionRate,
	}, nil
}

// CalculateManagerScore scores one manager as 60% of the average score of the
// active farmers on their team, plus an assignment-speed component (24h
// baseline, capped at 50) and a completion bonus (up to 50).
func (s *PerformanceService) CalculateManagerScore(ctx context.Context, managerID int64, periodDays int) (*ports.ScoreResult, error) {
	if periodDays <= 0 {
		periodDays = defaultPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -periodDays)

	team, err := s.users.ListTeamFarmerIDs(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("calculate manager score: %w", err)
	}
	if len(team) == 0 {
		return &ports.ScoreResult{Score: 0, Rating: domain.RatingFair}, nil
	}

	// Average over farmers with at least one task in the window.
	var teamTotal float64
	activeFarmers := 0
	for _, farmerID := range team {
		farmerScore, err := s.CalculateFarmerScore(ctx, farmerID, periodDays)
		if err != nil {
			return nil, fmt.Errorf("calculate manager score: farmer %d: %w", farmerID, err)
		}
		if farmerScore.TotalTasks > 0 {
			teamTotal += float64(farmerScore.Score)
			activeFarmers++
		}
	}
	var averageTeamScore float64
	if activeFarmers > 0 {
		averageTeamScore = teamTotal / float64(activeFarmers)
	}

	stats, err := s.tasks.AssignmentStats(ctx, managerID, since)
	if err != nil {
		return nil, fmt.Errorf("calculate manager score: %w", err)
	}

	var assignmentEfficiency float64
	if stats.AvgAssignmentSeconds > 0 {
		assignmentEfficiency = (assignmentBaselineSec - stats.AvgAssignmentSeconds) / assignmentBaselineSec * 50
		assignmentEfficiency = math.Max(0, math.Min(assignmentEfficiency, 50))
	}

	var completionBonus, completionRate float64
	if stats.TotalAssigned > 0 {
		completionBonus = float64(stats.Completed) / float64(stats.TotalAssigned) * 50
		completionRate = round1(completionBonus / 50 * 100)
	}

	totalScore := averageTeamScore*0.6 + assignmentEfficiency + completionBonus

	return &ports.ScoreResult{
		Score:            int(math.Round(totalScore)),
		Rating:           domain.ClassifyScore(totalScore),
		TeamSize:         len(team),
		ActiveFarmers:    activeFarmers,
		AverageTeamScore: round1(averageTeamScore),
		TasksAssigned:    stats.TotalAssigned,
		CompletionRate:   completionRate,
	}, nil
}

// UpdateUserPerformance recalculates the user's score, writes it onto the
// user row, and appends a history snapshot. The snapshot is only written
// after the user update succeeds, so history never records a failed run.
func (s *PerformanceService) UpdateUserPerformance(ctx context.Context, userID int64, role string, periodDays int) (*ports.PerformanceUpdate, error) {
	if periodDays <= 0 {
		periodDays = defaultPeriodDays
	}

	var result *ports.ScoreResult
	var err error
	switch role {
	case domain.RoleFarmer:
		result, err = s.CalculateFarmerScore(ctx, userID, periodDays)
	case domain.RoleManager:
		result, err = s.CalculateManagerScore(ctx, userID, periodDays)
	default:
		result = &ports.ScoreResult{Score: 0, Rating: domain.RatingFair}
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdatePerformance(ctx, userID, result.Score, result.Rating)
	if err != nil {
		return nil, fmt.Errorf("update user performance: %w", err)
	}

	now := time.Now().UTC()
	snapshot := &domain.PerformanceSnapshot{
		UserID:            userID,
		Score:             result.Score,
		Rating:            result.Rating,
		CalculationMethod: fmt.Sprintf("%s_calculation", role),
		PeriodStart:       now.AddDate(0, 0, -periodDays),
		PeriodEnd:         now,
		TasksCompleted:    result.TasksCompleted,
		TotalTasks:        result.TotalTasks,
	}
	if err := s.history.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("update user performance: save history: %w", err)
	}

	metrics.PerformanceUpdatesTotal.WithLabelValues(role).Inc()
	metrics.PerformanceScore.WithLabelValues(role).Observe(float64(result.Score))

	s.log.Info().
		Int64("user_id", userID).
		Str("role", role).
		Int("score", result.Score).
		Str("rating", string(result.Rating)).
		Msg("performance updated")

	return &ports.PerformanceUpdate{User: user, Performance: result}, nil
}

// GetPerformanceHistory returns the most recent snapshot for the user.
func (s *PerformanceService) GetPerformanceHistory(ctx context.Context, userID int64) (*domain.PerformanceSnapshot, error) {
	return s.history.LatestByUser(ctx, userID)
}

// GetLeaderboard ranks active users of the role by their resolved score:
// latest snapshot first, then the cached user fields, then 0/"fair". One row
// per user, descending by score, ties broken by ascending user id.
func (s *PerformanceService) GetLeaderboard(ctx context.Context, role string, limit int) ([]ports.LeaderboardRow, error) {
	if limit <= 0 {
		limit = defaultLeaderboardN
	}

	if s.cache != nil {
		if rows, ok := s.cache.Get(ctx, role, limit); ok {
			metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
			return rows, nil
		}
		metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()
	}

	entries, err := s.history.LeaderboardEntries(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	rows := make([]ports.LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		score := e.CachedScore
		rating := e.CachedRating
		if e.SnapshotScore != nil {
			score = *e.SnapshotScore
		}
		if e.SnapshotRating != nil {
			rating = *e.SnapshotRating
		}
		if rating == "" {
			rating = domain.RatingFair
		}
		rows = append(rows, ports.LeaderboardRow{
			UserID:            e.UserID,
			Names:             e.Names,
			Email:             e.Email,
			Role:              e.Role,
			PerformanceScore:  score,
			PerformanceRating: rating,
			TasksCompleted:    e.TasksCompleted,
			TotalTasks:        e.TotalTasks,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PerformanceScore != rows[j].PerformanceScore {
			return rows[i].PerformanceScore > rows[j].PerformanceScore
		}
		return rows[i].UserID < rows[j].UserID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	if s.cache != nil {
		s.cache.Set(ctx, role, limit, rows)
	}
	return rows, nil
}

// BatchUpdatePerformance refreshes every active user of the role over a
// bounded worker pool. Each user id occurs at most once, so workers never
// interleave writes for the same user. A failing user becomes an inline
// error entry; the batch itself never aborts.
func (s *PerformanceService) BatchUpdatePerformance(ctx context.Context, role string, periodDays int) ([]ports.BatchResult, error) {
	ids, err := s.users.ListActiveIDsByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("batch update performance: %w", err)
	}

	results := make([]ports.BatchResult, len(ids))
	jobs := make(chan int)

	workers := batchWorkers
	if len(ids) < workers {
		workers = len(ids)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				id := ids[i]
				update, err := s.UpdateUserPerformance(ctx, id, role, periodDays)
				if err != nil {
					metrics.PerformanceBatchErrorsTotal.WithLabelValues(role).Inc()
					s.log.Error().Err(err).Int64("user_id", id).Msg("batch performance update failed")
					results[i] = ports.BatchResult{UserID: id, Error: err.Error()}
					continue
				}
				results[i] = ports.BatchResult{UserID: id, User: update.User, Performance: update.Performance}
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
