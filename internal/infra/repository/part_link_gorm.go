package repository

import (
	"context"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"gorm.io/gorm"
)

type PartLinkGormRepository struct {
	db *gorm.DB
}

func NewPartLinkGormRepository(db *gorm.DB) *PartLinkGormRepository {
	return &PartLinkGormRepository{db: db}
}

func (r *PartLinkGormRepository) Create(ctx context.Context, link model.LaptopSparepart) error {
	return r.db.WithContext(ctx).Create(&link).Error
}

// DeleteOne picks the oldest matching link row and removes only that one.
// A plain DELETE on the pair would wipe every installed instance at once.
func (r *PartLinkGormRepository) DeleteOne(ctx context.Context, laptopID int64, sparepartID int64) error {
	var link model.LaptopSparepart
	err := r.db.WithContext(ctx).
		Where("laptop_id = ? AND sparepart_id = ?", laptopID, sparepartID).
		Order("id asc").
		First(&link).Error
	if err == gorm.ErrRecordNotFound {
		return repo.ErrNotFound
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&model.LaptopSparepart{}, link.ID).Error
}

func (r *PartLinkGormRepository) ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopSparepart, error) {
	var links []model.LaptopSparepart
	err := r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Order("id asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *PartLinkGormRepository) ListInstalledParts(ctx context.Context, laptopID int64) ([]model.SparePart, error) {
	var parts []model.SparePart
	err := r.db.WithContext(ctx).
		Model(&model.SparePart{}).
		Joins("JOIN laptop_spareparts lsp ON lsp.sparepart_id = spare_parts.id").
		Where("lsp.laptop_id = ?", laptopID).
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *PartLinkGormRepository) DeleteByLaptopID(ctx context.Context, laptopID int64) error {
	return r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Delete(&model.LaptopSparepart{}).Error
}
