package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// NotificationService implements in-app notifications.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to create notification")
		return nil, err
	}
	return created, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead flags one of the user's notifications as read. The user id guards
// against marking another user's notification.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// ReportService implements report CRUD.
type ReportService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, log zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, log: log}
}

func (s *ReportService) CreateReport(ctx context.Context, title, body string, authorID int64) (*domain.Report, error) {
	r := &domain.Report{
		Title:     title,
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, r)
}

func (s *ReportService) GetReport(ctx context.Context, id int64) (*domain.Report, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReportService) ListReports(ctx context.Context) ([]*domain.Report, error) {
	return s.repo.List(ctx)
}

func (s *ReportService) DeleteReport(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
