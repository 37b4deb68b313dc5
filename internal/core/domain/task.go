package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// validTaskTransitions defines the allowed state machine transitions.
var validTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskCompleted, TaskCancelled},
	TaskInProgress: {TaskCompleted, TaskCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a unit of work assigned by a manager to a farmer.
//
// ActualDurationMinutes is computed at completion as wall-clock minutes since
// StartedAt (or CreatedAt when the task was never started).
type Task struct {
	ID                      int64        `json:"task_id"`
	Title                   string       `json:"title"`
	Description             string       `json:"description,omitempty"`
	AssignedTo              int64        `json:"assigned_to"`
	AssignedBy              int64        `json:"assigned_by"`
	Status                  TaskStatus   `json:"status"`
	Priority                TaskPriority `json:"priority"`
	DueDate                 *time.Time   `json:"due_date,omitempty"`
	CropID                  *int64       `json:"crop_id,omitempty"`
	FieldID                 *int64       `json:"field_id,omitempty"`
	ExpectedDurationMinutes *int         `json:"expected_duration_minutes,omitempty"`
	ActualDurationMinutes   *float64     `json:"actual_duration_minutes,omitempty"`
	AssignedAt              time.Time    `json:"assigned_date"`
	StartedAt               *time.Time   `json:"started_at,omitempty"`
	CompletedAt             *time.Time   `json:"completed_at,omitempty"`
	CreatedAt               time.Time    `json:"created_date"`
	UpdatedAt               time.Time    `json:"updated_date"`
}
