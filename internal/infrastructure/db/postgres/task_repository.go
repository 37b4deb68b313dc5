package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

const taskColumns = `task_id, title, description, assigned_to, assigned_by, status, priority,
	due_date, crop_id, field_id, expected_duration_minutes, actual_duration_minutes,
	assigned_date, started_at, completed_at, created_date, updated_date`

// TaskRepository implements ports.TaskRepository against Postgres, including
// the aggregate queries the scoring core reads.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (title, description, assigned_to, assigned_by, status, priority,
			due_date, crop_id, field_id, expected_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns

	created, err := scanTask(r.pool.QueryRow(ctx, query,
		task.Title, task.Description, task.AssignedTo, task.AssignedBy,
		task.Status, task.Priority, task.DueDate, task.CropID, task.FieldID,
		task.ExpectedDurationMinutes,
	))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return task, err
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID int64, filter ports.TaskFilter) ([]*domain.Task, error) {
	return r.list(ctx, "assigned_to", userID, filter)
}

func (r *TaskRepository) ListByAssigner(ctx context.Context, userID int64, filter ports.TaskFilter) ([]*domain.Task, error) {
	return r.list(ctx, "assigned_by", userID, filter)
}

func (r *TaskRepository) list(ctx context.Context, column string, userID int64, filter ports.TaskFilter) ([]*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s = $1`, taskColumns, column)
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	query += " ORDER BY due_date ASC NULLS LAST, created_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepository) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE due_date < NOW() AND status NOT IN ('completed', 'cancelled')
		ORDER BY due_date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepository) Update(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.CropID != nil {
		add("crop_id", *patch.CropID)
	}
	if patch.FieldID != nil {
		add("field_id", *patch.FieldID)
	}
	if patch.ExpectedDurationMinutes != nil {
		add("expected_duration_minutes", *patch.ExpectedDurationMinutes)
	}
	if patch.ActualDurationMinutes != nil {
		add("actual_duration_minutes", *patch.ActualDurationMinutes)
	}
	if patch.StartedAt != nil {
		add("started_at", *patch.StartedAt)
	}
	if patch.CompletedAt != nil {
		add("completed_at", *patch.CompletedAt)
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyPatch
	}
	set = append(set, "updated_date = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE task_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), taskColumns)

	task, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return task, err
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM tasks WHERE task_id = $1 RETURNING `+taskColumns, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return task, err
}

// FarmerStats aggregates a farmer's in-window tasks. Pending and cancelled
// tasks are excluded from both the numerator and the denominator. Durations
// are stored in minutes and summed here as seconds.
func (r *TaskRepository) FarmerStats(ctx context.Context, farmerID int64, since time.Time) (ports.FarmerTaskStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_tasks,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(SUM(expected_duration_minutes) * 60, 0) AS total_expected_seconds,
			COALESCE(SUM(actual_duration_minutes) * 60, 0) AS total_actual_seconds
		FROM tasks
		WHERE assigned_to = $1
		  AND created_date >= $2
		  AND (status = 'completed' OR status = 'in_progress')`

	var stats ports.FarmerTaskStats
	err := r.pool.QueryRow(ctx, query, farmerID, since).Scan(
		&stats.TotalTasks, &stats.CompletedTasks, &stats.ExpectedSeconds, &stats.ActualSeconds,
	)
	if err != nil {
		return ports.FarmerTaskStats{}, fmt.Errorf("farmer task stats: %w", err)
	}
	return stats, nil
}

// AssignmentStats aggregates tasks a manager assigned within the window; the
// mean creation-to-assignment delay feeds the assignment-efficiency term.
func (r *TaskRepository) AssignmentStats(ctx context.Context, managerID int64, since time.Time) (ports.AssignmentStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_tasks_assigned,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(AVG(EXTRACT(EPOCH FROM assigned_date - created_date)), 0) AS avg_assignment_seconds
		FROM tasks
		WHERE assigned_by = $1
		  AND created_date >= $2`

	var stats ports.AssignmentStats
	err := r.pool.QueryRow(ctx, query, managerID, since).Scan(
		&stats.TotalAssigned, &stats.Completed, &stats.AvgAssignmentSeconds,
	)
	if err != nil {
		return ports.AssignmentStats{}, fmt.Errorf("assignment stats: %w", err)
	}
	return stats, nil
}

func (r *TaskRepository) DailyStats(ctx context.Context, since time.Time) ([]ports.DailyTaskStats, error) {
	query := `
		SELECT
			DATE(created_date) AS date,
			COUNT(*) AS total,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending,
			COUNT(CASE WHEN status = 'in_progress' THEN 1 END) AS in_progress
		FROM tasks
		WHERE created_date >= $1
		GROUP BY DATE(created_date)
		ORDER BY date`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("daily task stats: %w", err)
	}
	defer rows.Close()

	var stats []ports.DailyTaskStats
	for rows.Next() {
		var s ports.DailyTaskStats
		if err := rows.Scan(&s.Date, &s.Total, &s.Completed, &s.Pending, &s.InProgress); err != nil {
			return nil, fmt.Errorf("daily task stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func collectTasks(rows pgx.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy,
		&t.Status, &t.Priority, &t.DueDate, &t.CropID, &t.FieldID,
		&t.ExpectedDurationMinutes, &t.ActualDurationMinutes,
		&t.AssignedAt, &t.StartedAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
