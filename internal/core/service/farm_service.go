package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// CropService implements crop CRUD plus the dashboard stats.
type CropService struct {
	repo ports.CropRepository
	log  zerolog.Logger
}

func NewCropService(repo ports.CropRepository, log zerolog.Logger) *CropService {
	return &CropService{repo: repo, log: log}
}

func (s *CropService) CreateCrop(ctx context.Context, crop *domain.Crop) (*domain.Crop, error) {
	crop.CreatedAt = time.Now().UTC()
	created, err := s.repo.Create(ctx, crop)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create crop")
		return nil, err
	}
	return created, nil
}

func (s *CropService) GetCrop(ctx context.Context, id int64) (*domain.Crop, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CropService) ListCrops(ctx context.Context) ([]*domain.Crop, error) {
	return s.repo.List(ctx)
}

func (s *CropService) UpdateCrop(ctx context.Context, id int64, patch ports.CropPatch) (*domain.Crop, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *CropService) DeleteCrop(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CropService) Stats(ctx context.Context) (domain.CropStats, error) {
	return s.repo.Stats(ctx)
}

// FieldService implements field CRUD.
type FieldService struct {
	repo ports.FieldRepository
	log  zerolog.Logger
}

func NewFieldService(repo ports.FieldRepository, log zerolog.Logger) *FieldService {
	return &FieldService{repo: repo, log: log}
}

func (s *FieldService) CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	field.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, field)
}

func (s *FieldService) GetField(ctx context.Context, id int64) (*domain.Field, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FieldService) ListFields(ctx context.Context) ([]*domain.Field, error) {
	return s.repo.List(ctx)
}

func (s *FieldService) UpdateField(ctx context.Context, id int64, patch ports.FieldPatch) (*domain.Field, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *FieldService) DeleteField(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SupplyService implements fertilizer/pesticide stock keeping.
type SupplyService struct {
	repo ports.SupplyRepository
	log  zerolog.Logger
}

func NewSupplyService(repo ports.SupplyRepository, log zerolog.Logger) *SupplyService {
	return &SupplyService{repo: repo, log: log}
}

func (s *SupplyService) CreateItem(ctx context.Context, item *domain.SupplyItem) (*domain.SupplyItem, error) {
	item.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, item)
}

func (s *SupplyService) GetItem(ctx context.Context, kind domain.SupplyKind, id int64) (*domain.SupplyItem, error) {
	return s.repo.FindByID(ctx, kind, id)
}

func (s *SupplyService) ListItems(ctx context.Context, kind domain.SupplyKind) ([]*domain.SupplyItem, error) {
	return s.repo.List(ctx, kind)
}

func (s *SupplyService) AdjustQuantity(ctx context.Context, kind domain.SupplyKind, id int64, quantity float64) (*domain.SupplyItem, error) {
	return s.repo.UpdateQuantity(ctx, kind, id, quantity)
}

func (s *SupplyService) DeleteItem(ctx context.Context, kind domain.SupplyKind, id int64) error {
	return s.repo.Delete(ctx, kind, id)
}
