package domain

import "testing"

func TestTaskStatusTransitions(t *testing.T) {
	cases := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskPending, TaskInProgress, true},
		{TaskPending, TaskCompleted, true},
		{TaskPending, TaskCancelled, true},
		{TaskInProgress, TaskCompleted, true},
		{TaskInProgress, TaskCancelled, true},
		{TaskInProgress, TaskPending, false},
		{TaskCompleted, TaskPending, false},
		{TaskCompleted, TaskInProgress, false},
		{TaskCancelled, TaskInProgress, false},
		{TaskCancelled, TaskCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
