package repository

import (
	"context"

	"refurbstore/internal/domain/model"
)

// SparePartListQuery filters are exact-match, not substring.
type SparePartListQuery struct {
	PartType    string
	StorageType string
	RAMType     string
	RAMSpeed    string
	SortBy      string
	Order       string
}

type SparePartRepository interface {
	List(ctx context.Context, q SparePartListQuery) ([]model.SparePart, error)
	FindByID(ctx context.Context, id int64) (model.SparePart, error)
	Create(ctx context.Context, p model.SparePart) (model.SparePart, error)
	Update(ctx context.Context, p model.SparePart) error
	Delete(ctx context.Context, id int64) error

	// DecrementIfAvailable subtracts one unit only when quantity > 0 and
	// reports whether a unit was actually consumed.
	DecrementIfAvailable(ctx context.Context, id int64) (bool, error)
	// Increment returns one unit to stock.
	Increment(ctx context.Context, id int64) error
}
