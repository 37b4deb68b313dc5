package ports

import (
	"context"
	"time"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// TaskFilter carries the optional filters for task listings.
type TaskFilter struct {
	Status   string
	Priority string
}

// TaskPatch is a typed partial update for a task row. Nil fields are left
// untouched. Status side effects (started_at, completed_at, actual duration)
// are decided by the service, not the repository.
type TaskPatch struct {
	Title                   *string
	Description             *string
	Status                  *domain.TaskStatus
	Priority                *domain.TaskPriority
	DueDate                 *time.Time
	CropID                  *int64
	FieldID                 *int64
	ExpectedDurationMinutes *int
	ActualDurationMinutes   *float64
	StartedAt               *time.Time
	CompletedAt             *time.Time
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && p.CropID == nil &&
		p.FieldID == nil && p.ExpectedDurationMinutes == nil &&
		p.ActualDurationMinutes == nil && p.StartedAt == nil && p.CompletedAt == nil
}

// FarmerTaskStats aggregates a farmer's tasks over a trailing window,
// restricted to completed/in_progress statuses.
type FarmerTaskStats struct {
	TotalTasks      int
	CompletedTasks  int
	ExpectedSeconds float64
	ActualSeconds   float64
}

// AssignmentStats aggregates the tasks a manager assigned within a window.
// AvgAssignmentSeconds is the mean delay between task creation and assignment.
type AssignmentStats struct {
	TotalAssigned        int
	Completed            int
	AvgAssignmentSeconds float64
}

// DailyTaskStats buckets task counts by creation date.
type DailyTaskStats struct {
	Date       time.Time `json:"date"`
	Total      int       `json:"total"`
	Completed  int       `json:"completed"`
	Pending    int       `json:"pending"`
	InProgress int       `json:"in_progress"`
}

// TaskRepository defines persistence operations for tasks, including the
// scoring core's task-aggregate-reader contract.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByAssignee(ctx context.Context, userID int64, filter TaskFilter) ([]*domain.Task, error)
	ListByAssigner(ctx context.Context, userID int64, filter TaskFilter) ([]*domain.Task, error)
	ListOverdue(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (*domain.Task, error)

	// FarmerStats aggregates tasks assigned to farmerID created since the
	// given time with status completed or in_progress.
	FarmerStats(ctx context.Context, farmerID int64, since time.Time) (FarmerTaskStats, error)
	// AssignmentStats aggregates tasks assigned by managerID created since
	// the given time.
	AssignmentStats(ctx context.Context, managerID int64, since time.Time) (AssignmentStats, error)
	// DailyStats buckets tasks created since the given time by day.
	DailyStats(ctx context.Context, since time.Time) ([]DailyTaskStats, error)
}
