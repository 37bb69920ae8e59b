package repository

import (
	"context"

	"refurbstore/internal/domain/model"
)

type ImageRepository interface {
	Create(ctx context.Context, img model.LaptopImage) (model.LaptopImage, error)
	FindByID(ctx context.Context, laptopID int64, imageID int64) (model.LaptopImage, error)
	// FindPrimaryOrAny prefers the primary image and falls back to the
	// oldest upload when no primary exists.
	FindPrimaryOrAny(ctx context.Context, laptopID int64) (model.LaptopImage, error)
	ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopImage, error)
	CountByLaptopID(ctx context.Context, laptopID int64) (int64, error)
	Delete(ctx context.Context, laptopID int64, imageID int64) error
	DeleteByLaptopID(ctx context.Context, laptopID int64) error

	// ClearPrimary + SetPrimary implement "clear all, then set one".
	ClearPrimary(ctx context.Context, laptopID int64) error
	SetPrimary(ctx context.Context, laptopID int64, imageID int64) error
	// PromoteAny makes an arbitrary remaining image primary, if one exists.
	PromoteAny(ctx context.Context, laptopID int64) error
}
