package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

type stubPerformanceService struct {
	lastRole       string
	lastLimit      int
	lastPeriodDays int
	leaderboard    []ports.LeaderboardRow
	historyErr     error
}

func (s *stubPerformanceService) CalculateFarmerScore(context.Context, int64, int) (*ports.ScoreResult, error) {
	return nil, nil
}

func (s *stubPerformanceService) CalculateManagerScore(context.Context, int64, int) (*ports.ScoreResult, error) {
	return nil, nil
}

func (s *stubPerformanceService) UpdateUserPerformance(_ context.Context, userID int64, role string, periodDays int) (*ports.PerformanceUpdate, error) {
	s.lastRole = role
	s.lastPeriodDays = periodDays
	return &ports.PerformanceUpdate{
		User:        &domain.User{ID: userID, Role: role},
		Performance: &ports.ScoreResult{Score: 42, Rating: domain.RatingFair},
	}, nil
}

func (s *stubPerformanceService) GetLeaderboard(_ context.Context, role string, limit int) ([]ports.LeaderboardRow, error) {
	s.lastRole = role
	s.lastLimit = limit
	return s.leaderboard, nil
}

func (s *stubPerformanceService) GetPerformanceHistory(_ context.Context, userID int64) (*domain.PerformanceSnapshot, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return &domain.PerformanceSnapshot{UserID: userID, Score: 77, Rating: domain.RatingFair}, nil
}

func (s *stubPerformanceService) BatchUpdatePerformance(_ context.Context, role string, periodDays int) ([]ports.BatchResult, error) {
	s.lastRole = role
	s.lastPeriodDays = periodDays
	return []ports.BatchResult{
		{UserID: 1, User: &domain.User{ID: 1}, Performance: &ports.ScoreResult{Score: 80}},
		{UserID: 2, Error: "deadlock detected"},
	}, nil
}

type stubUserService struct {
	users map[int64]*domain.User
}

func (s *stubUserService) CreateUser(context.Context, ports.CreateUserInput) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func (s *stubUserService) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserService) ListUsers(context.Context, ports.UserFilter) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) UpdateUser(context.Context, int64, ports.UserPatch) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) DeactivateUser(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) PhoneExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestPerformanceHandler_UpdateScore_DefaultPeriod(t *testing.T) {
	e := newTestEcho()
	perf := &stubPerformanceService{}
	users := &stubUserService{users: map[int64]*domain.User{5: {ID: 5, Role: domain.RoleFarmer}}}
	handler := NewPerformanceHandler(perf, users)

	req := httptest.NewRequest(http.MethodPost, "/v1/performance/5/update", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.UpdateScore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if perf.lastRole != domain.RoleFarmer {
		t.Fatalf("role = %s, want farmer (resolved from the user row)", perf.lastRole)
	}
	if perf.lastPeriodDays != 1 {
		t.Fatalf("period days = %d, want 1 default", perf.lastPeriodDays)
	}
}

func TestPerformanceHandler_UpdateScore_UnknownUser(t *testing.T) {
	e := newTestEcho()
	handler := NewPerformanceHandler(&stubPerformanceService{}, &stubUserService{users: map[int64]*domain.User{}})

	req := httptest.NewRequest(http.MethodPost, "/v1/performance/99/update", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := handler.UpdateScore(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestPerformanceHandler_Leaderboard_Defaults(t *testing.T) {
	e := newTestEcho()
	perf := &stubPerformanceService{leaderboard: []ports.LeaderboardRow{{UserID: 1}}}
	handler := NewPerformanceHandler(perf, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/performance/leaderboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Leaderboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if perf.lastRole != domain.RoleFarmer {
		t.Fatalf("role = %s, want farmer default", perf.lastRole)
	}
	if perf.lastLimit != 10 {
		t.Fatalf("limit = %d, want 10 default", perf.lastLimit)
	}
}

func TestPerformanceHandler_Leaderboard_InvalidRole(t *testing.T) {
	e := newTestEcho()
	handler := NewPerformanceHandler(&stubPerformanceService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/performance/leaderboard?role=superuser", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Leaderboard(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestPerformanceHandler_History_NeverScoredReturnsZeroSnapshot(t *testing.T) {
	e := newTestEcho()
	perf := &stubPerformanceService{historyErr: domain.ErrSnapshotNotFound}
	handler := NewPerformanceHandler(perf, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/performance/5/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.GetHistory(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snap domain.PerformanceSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if snap.UserID != 5 || snap.Score != 0 || snap.Rating != domain.RatingFair {
		t.Fatalf("snapshot = %+v, want zero fair snapshot for user 5", snap)
	}
}

func TestPerformanceHandler_BatchUpdate_Summary(t *testing.T) {
	e := newTestEcho()
	perf := &stubPerformanceService{}
	handler := NewPerformanceHandler(perf, &stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/performance/batch-update?role=manager", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.BatchUpdate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if perf.lastRole != domain.RoleManager {
		t.Fatalf("role = %s, want manager", perf.lastRole)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(2) || resp["failed"] != float64(1) {
		t.Fatalf("summary = %+v, want total 2 failed 1", resp)
	}
}

func TestPerformanceHandler_GetScore(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{users: map[int64]*domain.User{
		5: {ID: 5, PerformanceScore: 123, PerformanceRating: domain.RatingModerate},
	}}
	handler := NewPerformanceHandler(&stubPerformanceService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/v1/performance/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.GetScore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["performance_score"] != float64(123) || resp["performance_rating"] != "moderate" {
		t.Fatalf("payload = %+v", resp)
	}
}
