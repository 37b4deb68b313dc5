package ports

import (
	"context"
	"time"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// CreateTaskInput carries the data a manager supplies when assigning a task.
type CreateTaskInput struct {
	Title                   string
	Description             string
	AssignedTo              int64
	AssignedBy              int64
	Priority                string
	DueDate                 *time.Time
	CropID                  *int64
	FieldID                 *int64
	ExpectedDurationMinutes *int
}

// TaskService defines use-case operations for tasks. Status changes trigger
// best-effort performance re-scoring of the affected users.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListAssignedTo(ctx context.Context, userID int64, filter TaskFilter) ([]*domain.Task, error)
	ListAssignedBy(ctx context.Context, userID int64, filter TaskFilter) ([]*domain.Task, error)
	ListOverdue(ctx context.Context) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (*domain.Task, error)
	DailyStats(ctx context.Context, days int) ([]DailyTaskStats, error)
}
