package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

const cropColumns = `c_id, c_name, variety, field_id, planted_date, exp_harvest, is_harvested, created_date`

// CropRepository implements ports.CropRepository against Postgres.
type CropRepository struct {
	pool *pgxpool.Pool
}

func NewCropRepository(pool *pgxpool.Pool) *CropRepository {
	return &CropRepository{pool: pool}
}

func (r *CropRepository) Create(ctx context.Context, crop *domain.Crop) (*domain.Crop, error) {
	query := `
		INSERT INTO crops (c_name, variety, field_id, planted_date, exp_harvest, is_harvested)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + cropColumns

	created, err := scanCrop(r.pool.QueryRow(ctx, query,
		crop.Name, crop.Variety, crop.FieldID, crop.PlantedDate, crop.ExpectedHarvest, crop.IsHarvested))
	if err != nil {
		return nil, fmt.Errorf("create crop: %w", err)
	}
	return created, nil
}

func (r *CropRepository) FindByID(ctx context.Context, id int64) (*domain.Crop, error) {
	crop, err := scanCrop(r.pool.QueryRow(ctx, `SELECT `+cropColumns+` FROM crops WHERE c_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCropNotFound
	}
	return crop, err
}

func (r *CropRepository) List(ctx context.Context) ([]*domain.Crop, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+cropColumns+` FROM crops ORDER BY created_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	defer rows.Close()

	var crops []*domain.Crop
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("list crops: %w", err)
		}
		crops = append(crops, crop)
	}
	return crops, rows.Err()
}

func (r *CropRepository) Update(ctx context.Context, id int64, patch ports.CropPatch) (*domain.Crop, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("c_name", *patch.Name)
	}
	if patch.Variety != nil {
		add("variety", *patch.Variety)
	}
	if patch.FieldID != nil {
		add("field_id", *patch.FieldID)
	}
	if patch.PlantedDate != nil {
		add("planted_date", *patch.PlantedDate)
	}
	if patch.ExpectedHarvest != nil {
		add("exp_harvest", *patch.ExpectedHarvest)
	}
	if patch.IsHarvested != nil {
		add("is_harvested", *patch.IsHarvested)
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyPatch
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE crops SET %s WHERE c_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), cropColumns)

	crop, err := scanCrop(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCropNotFound
	}
	return crop, err
}

func (r *CropRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crops WHERE c_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCropNotFound
	}
	return nil
}

func (r *CropRepository) Stats(ctx context.Context) (domain.CropStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN is_harvested = true THEN 1 END) AS harvested,
			COUNT(CASE WHEN is_harvested = false AND exp_harvest > NOW() THEN 1 END) AS growing,
			COUNT(CASE WHEN is_harvested = false AND exp_harvest < NOW() THEN 1 END) AS overdue,
			COUNT(CASE WHEN is_harvested = false AND exp_harvest BETWEEN NOW() AND NOW() + INTERVAL '7 days' THEN 1 END) AS due_soon
		FROM crops`

	var stats domain.CropStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Harvested, &stats.Growing, &stats.Overdue, &stats.DueSoon)
	if err != nil {
		return domain.CropStats{}, fmt.Errorf("crop stats: %w", err)
	}
	return stats, nil
}

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var c domain.Crop
	err := row.Scan(&c.ID, &c.Name, &c.Variety, &c.FieldID, &c.PlantedDate,
		&c.ExpectedHarvest, &c.IsHarvested, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FieldRepository implements ports.FieldRepository against Postgres.
type FieldRepository struct {
	pool *pgxpool.Pool
}

func NewFieldRepository(pool *pgxpool.Pool) *FieldRepository {
	return &FieldRepository{pool: pool}
}

func (r *FieldRepository) Create(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	query := `
		INSERT INTO fields (f_name, location, size_hectares)
		VALUES ($1, $2, $3)
		RETURNING f_id, f_name, location, size_hectares, created_date`

	var f domain.Field
	err := r.pool.QueryRow(ctx, query, field.Name, field.Location, field.SizeHectares).
		Scan(&f.ID, &f.Name, &f.Location, &f.SizeHectares, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	return &f, nil
}

func (r *FieldRepository) FindByID(ctx context.Context, id int64) (*domain.Field, error) {
	var f domain.Field
	err := r.pool.QueryRow(ctx,
		`SELECT f_id, f_name, location, size_hectares, created_date FROM fields WHERE f_id = $1`, id).
		Scan(&f.ID, &f.Name, &f.Location, &f.SizeHectares, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFieldNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FieldRepository) List(ctx context.Context) ([]*domain.Field, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f_id, f_name, location, size_hectares, created_date FROM fields ORDER BY f_name`)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*domain.Field
	for rows.Next() {
		var f domain.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.SizeHectares, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("list fields: %w", err)
		}
		fields = append(fields, &f)
	}
	return fields, rows.Err()
}

func (r *FieldRepository) Update(ctx context.Context, id int64, patch ports.FieldPatch) (*domain.Field, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("f_name", *patch.Name)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.SizeHectares != nil {
		add("size_hectares", *patch.SizeHectares)
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyPatch
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE fields SET %s WHERE f_id = $%d RETURNING f_id, f_name, location, size_hectares, created_date`,
		strings.Join(set, ", "), len(args))

	var f domain.Field
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&f.ID, &f.Name, &f.Location, &f.SizeHectares, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFieldNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FieldRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fields WHERE f_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

const supplyColumns = `id, kind, name, type, quantity, unit, created_date`

// SupplyRepository implements ports.SupplyRepository against Postgres; one
// table holds both fertilizers and pesticides, discriminated by kind.
type SupplyRepository struct {
	pool *pgxpool.Pool
}

func NewSupplyRepository(pool *pgxpool.Pool) *SupplyRepository {
	return &SupplyRepository{pool: pool}
}

func (r *SupplyRepository) Create(ctx context.Context, item *domain.SupplyItem) (*domain.SupplyItem, error) {
	query := `
		INSERT INTO supplies (kind, name, type, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + supplyColumns

	created, err := scanSupply(r.pool.QueryRow(ctx, query,
		item.Kind, item.Name, item.Type, item.Quantity, item.Unit))
	if err != nil {
		return nil, fmt.Errorf("create supply item: %w", err)
	}
	return created, nil
}

func (r *SupplyRepository) FindByID(ctx context.Context, kind domain.SupplyKind, id int64) (*domain.SupplyItem, error) {
	item, err := scanSupply(r.pool.QueryRow(ctx,
		`SELECT `+supplyColumns+` FROM supplies WHERE kind = $1 AND id = $2`, kind, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplyNotFound
	}
	return item, err
}

func (r *SupplyRepository) List(ctx context.Context, kind domain.SupplyKind) ([]*domain.SupplyItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+supplyColumns+` FROM supplies WHERE kind = $1 ORDER BY name`, kind)
	if err != nil {
		return nil, fmt.Errorf("list supply items: %w", err)
	}
	defer rows.Close()

	var items []*domain.SupplyItem
	for rows.Next() {
		item, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("list supply items: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *SupplyRepository) UpdateQuantity(ctx context.Context, kind domain.SupplyKind, id int64, quantity float64) (*domain.SupplyItem, error) {
	item, err := scanSupply(r.pool.QueryRow(ctx,
		`UPDATE supplies SET quantity = $1 WHERE kind = $2 AND id = $3 RETURNING `+supplyColumns,
		quantity, kind, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplyNotFound
	}
	return item, err
}

func (r *SupplyRepository) Delete(ctx context.Context, kind domain.SupplyKind, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM supplies WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete supply item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplyNotFound
	}
	return nil
}

func scanSupply(row pgx.Row) (*domain.SupplyItem, error) {
	var s domain.SupplyItem
	err := row.Scan(&s.ID, &s.Kind, &s.Name, &s.Type, &s.Quantity, &s.Unit, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
