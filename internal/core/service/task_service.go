package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/api/metrics"
	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// TaskService implements task use cases. Status changes feed the scoring
// core: moving a task re-scores the assignee, and completion additionally
// re-scores the assigning manager. Re-scoring is best effort; a scoring
// failure never fails the task operation.
type TaskService struct {
	repo   ports.TaskRepository
	scorer ports.PerformanceService
	log    zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, scorer ports.PerformanceService, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, scorer: scorer, log: log}
}

func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	priority := domain.TaskPriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:                   input.Title,
		Description:             input.Description,
		AssignedTo:              input.AssignedTo,
		AssignedBy:              input.AssignedBy,
		Status:                  domain.TaskPending,
		Priority:                priority,
		DueDate:                 input.DueDate,
		CropID:                  input.CropID,
		FieldID:                 input.FieldID,
		ExpectedDurationMinutes: input.ExpectedDurationMinutes,
		AssignedAt:              now,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(priority)).Inc()
	s.log.Info().Int64("task_id", created.ID).Int64("assigned_to", created.AssignedTo).Msg("task created")

	s.rescore(ctx, created.AssignedTo, domain.RoleFarmer)
	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListAssignedTo(ctx context.Context, userID int64, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.repo.ListByAssignee(ctx, userID, filter)
}

func (s *TaskService) ListAssignedBy(ctx context.Context, userID int64, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.repo.ListByAssigner(ctx, userID, filter)
}

func (s *TaskService) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.ListOverdue(ctx)
}

// UpdateTask applies a typed patch. Status changes are validated against the
// task state machine; entering in_progress stamps started_at, and completing
// stamps completed_at and derives actual_duration_minutes from wall-clock
// time since started_at (or created_date when the task was never started).
func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	if patch.Status != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		next := *patch.Status
		if next != current.Status {
			if !current.Status.CanTransitionTo(next) {
				return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, next)
			}

			now := time.Now().UTC()
			switch next {
			case domain.TaskInProgress:
				patch.StartedAt = &now
			case domain.TaskCompleted:
				patch.CompletedAt = &now
				startedAt := current.CreatedAt
				if current.StartedAt != nil {
					startedAt = *current.StartedAt
				}
				actual := now.Sub(startedAt).Minutes()
				patch.ActualDurationMinutes = &actual
			}
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		status := *patch.Status
		metrics.TaskTransitionsTotal.WithLabelValues(string(status)).Inc()

		if status == domain.TaskInProgress || status == domain.TaskCompleted {
			s.rescore(ctx, updated.AssignedTo, domain.RoleFarmer)
		}
		if status == domain.TaskCompleted {
			s.rescore(ctx, updated.AssignedBy, domain.RoleManager)
		}
	}

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("task_id", id).Msg("task deleted")
	s.rescore(ctx, deleted.AssignedTo, domain.RoleFarmer)
	return deleted, nil
}

func (s *TaskService) DailyStats(ctx context.Context, days int) ([]ports.DailyTaskStats, error) {
	if days <= 0 {
		days = defaultPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.DailyStats(ctx, since)
}

// rescore refreshes a user's performance after a task mutation. Best effort:
// failures are logged and swallowed so the task operation still succeeds.
func (s *TaskService) rescore(ctx context.Context, userID int64, role string) {
	if s.scorer == nil {
		return
	}
	if _, err := s.scorer.UpdateUserPerformance(ctx, userID, role, 0); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Str("role", role).Msg("failed to update performance score")
	}
}
