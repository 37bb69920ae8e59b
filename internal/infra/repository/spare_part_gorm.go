package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"gorm.io/gorm"
)

var sparePartSortColumns = map[string]bool{
	"id":           true,
	"part_type":    true,
	"storage_type": true,
	"ram_type":     true,
	"ram_speed":    true,
	"capacity":     true,
	"quantity":     true,
	"last_edited":  true,
	"created_date": true,
}

type SparePartGormRepository struct {
	db *gorm.DB
}

func NewSparePartGormRepository(db *gorm.DB) *SparePartGormRepository {
	return &SparePartGormRepository{db: db}
}

// List filters by exact match on the type columns, unlike laptop search.
func (r *SparePartGormRepository) List(ctx context.Context, q repo.SparePartListQuery) ([]model.SparePart, error) {
	var parts []model.SparePart

	tx := r.db.WithContext(ctx).Model(&model.SparePart{})

	if q.PartType != "" {
		tx = tx.Where("part_type = ?", q.PartType)
	}
	if q.StorageType != "" {
		tx = tx.Where("storage_type = ?", q.StorageType)
	}
	if q.RAMType != "" {
		tx = tx.Where("ram_type = ?", q.RAMType)
	}
	if q.RAMSpeed != "" {
		tx = tx.Where("ram_speed = ?", q.RAMSpeed)
	}

	sortBy := q.SortBy
	if !sparePartSortColumns[sortBy] {
		sortBy = "id"
	}
	order := strings.ToLower(q.Order)
	if order != "asc" && order != "desc" {
		order = "asc"
	}
	tx = tx.Order(sortBy + " " + order)

	if err := tx.Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *SparePartGormRepository) FindByID(ctx context.Context, id int64) (model.SparePart, error) {
	var p model.SparePart
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SparePart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SparePart{}, err
	}
	return p, nil
}

func (r *SparePartGormRepository) Create(ctx context.Context, p model.SparePart) (model.SparePart, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.SparePart{}, err
	}
	return p, nil
}

func (r *SparePartGormRepository) Update(ctx context.Context, p model.SparePart) error {
	res := r.db.WithContext(ctx).Model(&model.SparePart{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"part_type":    p.PartType,
		"storage_type": p.StorageType,
		"ram_type":     p.RAMType,
		"ram_speed":    p.RAMSpeed,
		"capacity":     p.Capacity,
		"notes":        p.Notes,
		"quantity":     p.Quantity,
		"last_edited":  time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SparePartGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.SparePart{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DecrementIfAvailable only touches rows with stock left, so quantity can
// never go negative even under concurrent installs.
func (r *SparePartGormRepository) DecrementIfAvailable(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SparePart{}).
		Where("id = ? AND quantity > 0", id).
		Update("quantity", gorm.Expr("quantity - 1"))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *SparePartGormRepository) Increment(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.SparePart{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
