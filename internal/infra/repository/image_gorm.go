package repository

import (
	"context"
	"errors"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"gorm.io/gorm"
)

type ImageGormRepository struct {
	db *gorm.DB
}

func NewImageGormRepository(db *gorm.DB) *ImageGormRepository {
	return &ImageGormRepository{db: db}
}

func (r *ImageGormRepository) Create(ctx context.Context, img model.LaptopImage) (model.LaptopImage, error) {
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.LaptopImage{}, err
	}
	return img, nil
}

func (r *ImageGormRepository) FindByID(ctx context.Context, laptopID int64, imageID int64) (model.LaptopImage, error) {
	var img model.LaptopImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND laptop_id = ?", imageID, laptopID).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LaptopImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LaptopImage{}, err
	}
	return img, nil
}

func (r *ImageGormRepository) FindPrimaryOrAny(ctx context.Context, laptopID int64) (model.LaptopImage, error) {
	var img model.LaptopImage
	err := r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Order("is_primary desc, uploaded_date asc, id asc").
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LaptopImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LaptopImage{}, err
	}
	return img, nil
}

// ListByLaptopID returns metadata ordering primary first; the payload bytes
// come along but handlers only expose them on the byte-delivery routes.
func (r *ImageGormRepository) ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopImage, error) {
	var imgs []model.LaptopImage
	err := r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Order("is_primary desc, uploaded_date asc, id asc").
		Find(&imgs).Error
	if err != nil {
		return nil, err
	}
	return imgs, nil
}

func (r *ImageGormRepository) CountByLaptopID(ctx context.Context, laptopID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LaptopImage{}).
		Where("laptop_id = ?", laptopID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ImageGormRepository) Delete(ctx context.Context, laptopID int64, imageID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND laptop_id = ?", imageID, laptopID).
		Delete(&model.LaptopImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ImageGormRepository) DeleteByLaptopID(ctx context.Context, laptopID int64) error {
	return r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Delete(&model.LaptopImage{}).Error
}

func (r *ImageGormRepository) ClearPrimary(ctx context.Context, laptopID int64) error {
	return r.db.WithContext(ctx).Model(&model.LaptopImage{}).
		Where("laptop_id = ?", laptopID).
		Update("is_primary", false).Error
}

func (r *ImageGormRepository) SetPrimary(ctx context.Context, laptopID int64, imageID int64) error {
	res := r.db.WithContext(ctx).Model(&model.LaptopImage{}).
		Where("id = ? AND laptop_id = ?", imageID, laptopID).
		Update("is_primary", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// PromoteAny is the primary-deletion fallback: whichever image remains
// first in upload order becomes primary. No remaining image is not an error.
func (r *ImageGormRepository) PromoteAny(ctx context.Context, laptopID int64) error {
	var img model.LaptopImage
	err := r.db.WithContext(ctx).
		Where("laptop_id = ?", laptopID).
		Order("uploaded_date asc, id asc").
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&model.LaptopImage{}).
		Where("id = ?", img.ID).
		Update("is_primary", true).Error
}
