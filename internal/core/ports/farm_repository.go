package ports

import (
	"context"
	"time"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// CropPatch is a typed partial update for a crop row.
type CropPatch struct {
	Name            *string
	Variety         *string
	FieldID         *int64
	PlantedDate     *time.Time
	ExpectedHarvest *time.Time
	IsHarvested     *bool
}

// CropRepository defines persistence operations for crops.
type CropRepository interface {
	Create(ctx context.Context, crop *domain.Crop) (*domain.Crop, error)
	FindByID(ctx context.Context, id int64) (*domain.Crop, error)
	List(ctx context.Context) ([]*domain.Crop, error)
	Update(ctx context.Context, id int64, patch CropPatch) (*domain.Crop, error)
	Delete(ctx context.Context, id int64) error
	// Stats summarises the crop table: harvested, growing, overdue, due soon.
	Stats(ctx context.Context) (domain.CropStats, error)
}

// FieldPatch is a typed partial update for a field row.
type FieldPatch struct {
	Name         *string
	Location     *string
	SizeHectares *float64
}

// FieldRepository defines persistence operations for fields.
type FieldRepository interface {
	Create(ctx context.Context, field *domain.Field) (*domain.Field, error)
	FindByID(ctx context.Context, id int64) (*domain.Field, error)
	List(ctx context.Context) ([]*domain.Field, error)
	Update(ctx context.Context, id int64, patch FieldPatch) (*domain.Field, error)
	Delete(ctx context.Context, id int64) error
}

// SupplyRepository defines persistence operations for stocked inputs
// (fertilizers and pesticides share one shape, discriminated by kind).
type SupplyRepository interface {
	Create(ctx context.Context, item *domain.SupplyItem) (*domain.SupplyItem, error)
	FindByID(ctx context.Context, kind domain.SupplyKind, id int64) (*domain.SupplyItem, error)
	List(ctx context.Context, kind domain.SupplyKind) ([]*domain.SupplyItem, error)
	UpdateQuantity(ctx context.Context, kind domain.SupplyKind, id int64, quantity float64) (*domain.SupplyItem, error)
	Delete(ctx context.Context, kind domain.SupplyKind, id int64) error
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context) ([]*domain.Report, error)
	Delete(ctx context.Context, id int64) error
}
