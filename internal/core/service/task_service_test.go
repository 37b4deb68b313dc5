package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub task store
// ---------------------------------------------------------------------------

type memTaskRepo struct {
	stubTaskRepo
	tasks  map[int64]*domain.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{
		stubTaskRepo: *newStubTaskRepo(),
		tasks:        make(map[int64]*domain.Task),
	}
}

func (r *memTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = r.nextID
	r.tasks[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTaskRepo) Update(_ context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.StartedAt != nil {
		t.StartedAt = patch.StartedAt
	}
	if patch.CompletedAt != nil {
		t.CompletedAt = patch.CompletedAt
	}
	if patch.ActualDurationMinutes != nil {
		t.ActualDurationMinutes = patch.ActualDurationMinutes
	}
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return t, nil
}

// stubScorer records re-score requests from the task service.
type stubScorer struct {
	calls []struct {
		UserID int64
		Role   string
	}
	err error
}

func (s *stubScorer) CalculateFarmerScore(context.Context, int64, int) (*ports.ScoreResult, error) {
	return nil, nil
}
func (s *stubScorer) CalculateManagerScore(context.Context, int64, int) (*ports.ScoreResult, error) {
	return nil, nil
}
func (s *stubScorer) GetLeaderboard(context.Context, string, int) ([]ports.LeaderboardRow, error) {
	return nil, nil
}
func (s *stubScorer) GetPerformanceHistory(context.Context, int64) (*domain.PerformanceSnapshot, error) {
	return nil, domain.ErrSnapshotNotFound
}
func (s *stubScorer) BatchUpdatePerformance(context.Context, string, int) ([]ports.BatchResult, error) {
	return nil, nil
}

func (s *stubScorer) UpdateUserPerformance(_ context.Context, userID int64, role string, _ int) (*ports.PerformanceUpdate, error) {
	s.calls = append(s.calls, struct {
		UserID int64
		Role   string
	}{userID, role})
	if s.err != nil {
		return nil, s.err
	}
	return &ports.PerformanceUpdate{}, nil
}

func newTaskFixture(t *testing.T, repo *memTaskRepo, svc *TaskService) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:      "irrigate north field",
		AssignedTo: 1,
		AssignedBy: 9,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateTask_Defaults(t *testing.T) {
	repo := newMemTaskRepo()
	scorer := &stubScorer{}
	svc := NewTaskService(repo, scorer, zerolog.Nop())

	task := newTaskFixture(t, repo, svc)

	if task.Status != domain.TaskPending {
		t.Fatalf("status = %s, want pending", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("priority = %s, want medium", task.Priority)
	}
	if len(scorer.calls) != 1 || scorer.calls[0].UserID != 1 || scorer.calls[0].Role != domain.RoleFarmer {
		t.Fatalf("scorer calls = %+v, want one farmer rescore for user 1", scorer.calls)
	}
}

func TestUpdateTask_EmptyPatch(t *testing.T) {
	svc := NewTaskService(newMemTaskRepo(), &stubScorer{}, zerolog.Nop())

	_, err := svc.UpdateTask(context.Background(), 1, ports.TaskPatch{})
	if !errors.Is(err, domain.ErrEmptyPatch) {
		t.Fatalf("err = %v, want ErrEmptyPatch", err)
	}
}

func TestUpdateTask_StartStampsStartedAt(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, &stubScorer{}, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	inProgress := domain.TaskInProgress
	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &inProgress})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TaskInProgress {
		t.Fatalf("status = %s, want in_progress", updated.Status)
	}
	if updated.StartedAt == nil {
		t.Fatalf("started_at not stamped")
	}
}

func TestUpdateTask_CompleteDerivesActualDuration(t *testing.T) {
	repo := newMemTaskRepo()
	scorer := &stubScorer{}
	svc := NewTaskService(repo, scorer, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	// Backdate started_at so the derived duration is measurable.
	started := time.Now().UTC().Add(-90 * time.Minute)
	repo.tasks[task.ID].Status = domain.TaskInProgress
	repo.tasks[task.ID].StartedAt = &started

	completed := domain.TaskCompleted
	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("completed_at not stamped")
	}
	if updated.ActualDurationMinutes == nil {
		t.Fatalf("actual duration not derived")
	}
	if got := *updated.ActualDurationMinutes; got < 89 || got > 91 {
		t.Fatalf("actual duration = %v, want ~90", got)
	}

	// Completion re-scores both the farmer and the assigning manager.
	var farmer, manager bool
	for _, call := range scorer.calls {
		if call.UserID == 1 && call.Role == domain.RoleFarmer {
			farmer = true
		}
		if call.UserID == 9 && call.Role == domain.RoleManager {
			manager = true
		}
	}
	if !farmer || !manager {
		t.Fatalf("rescore calls = %+v, want farmer 1 and manager 9", scorer.calls)
	}
}

func TestUpdateTask_CompleteWithoutStartFallsBackToCreation(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, &stubScorer{}, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	repo.tasks[task.ID].CreatedAt = time.Now().UTC().Add(-30 * time.Minute)

	completed := domain.TaskCompleted
	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ActualDurationMinutes == nil {
		t.Fatalf("actual duration not derived")
	}
	if got := *updated.ActualDurationMinutes; got < 29 || got > 31 {
		t.Fatalf("actual duration = %v, want ~30", got)
	}
}

func TestUpdateTask_InvalidTransition(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, &stubScorer{}, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	repo.tasks[task.ID].Status = domain.TaskCompleted

	pending := domain.TaskPending
	_, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &pending})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateTask_SameStatusNoTransitionCheck(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, &stubScorer{}, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	pending := domain.TaskPending
	if _, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &pending}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateTask_ScoringFailureDoesNotFailUpdate(t *testing.T) {
	repo := newMemTaskRepo()
	scorer := &stubScorer{err: errors.New("scoring backend down")}
	svc := NewTaskService(repo, scorer, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	inProgress := domain.TaskInProgress
	if _, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskPatch{Status: &inProgress}); err != nil {
		t.Fatalf("task update failed on scoring error: %v", err)
	}
}

func TestDeleteTask_RescoresAssignee(t *testing.T) {
	repo := newMemTaskRepo()
	scorer := &stubScorer{}
	svc := NewTaskService(repo, scorer, zerolog.Nop())
	task := newTaskFixture(t, repo, svc)

	scorer.calls = nil
	deleted, err := svc.DeleteTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.ID != task.ID {
		t.Fatalf("deleted id = %d, want %d", deleted.ID, task.ID)
	}
	if len(scorer.calls) != 1 || scorer.calls[0].UserID != 1 {
		t.Fatalf("scorer calls = %+v, want one rescore for user 1", scorer.calls)
	}
	if _, err := svc.GetTask(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task still present after delete")
	}
}
