package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository against Postgres.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING notification_id, user_id, title, message, is_read, created_date`

	var created domain.Notification
	err := r.pool.QueryRow(ctx, query, n.UserID, n.Title, n.Message).Scan(
		&created.ID, &created.UserID, &created.Title, &created.Message,
		&created.IsRead, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, title, message, is_read, created_date
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("list notifications: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE notification_id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread notification count: %w", err)
	}
	return count, nil
}

// ReportRepository implements ports.ReportRepository against Postgres.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	query := `
		INSERT INTO reports (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING report_id, title, body, author_id, created_date`

	var created domain.Report
	err := r.pool.QueryRow(ctx, query, report.Title, report.Body, report.AuthorID).Scan(
		&created.ID, &created.Title, &created.Body, &created.AuthorID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return &created, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id int64) (*domain.Report, error) {
	var report domain.Report
	err := r.pool.QueryRow(ctx,
		`SELECT report_id, title, body, author_id, created_date FROM reports WHERE report_id = $1`,
		id).Scan(&report.ID, &report.Title, &report.Body, &report.AuthorID, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT report_id, title, body, author_id, created_date FROM reports ORDER BY created_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(&report.ID, &report.Title, &report.Body, &report.AuthorID, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE report_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
