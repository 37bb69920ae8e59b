package repository

import (
	"context"

	"refurbstore/internal/domain/model"
)

type PartLinkRepository interface {
	Create(ctx context.Context, link model.LaptopSparepart) error
	// DeleteOne removes exactly one link row for the pair, never all of them.
	DeleteOne(ctx context.Context, laptopID int64, sparepartID int64) error
	ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopSparepart, error)
	// ListInstalledParts resolves the linked spare part rows for a laptop.
	ListInstalledParts(ctx context.Context, laptopID int64) ([]model.SparePart, error)
	DeleteByLaptopID(ctx context.Context, laptopID int64) error
}
