package repository

import (
	"context"
	"errors"
	"time"

	"refurbstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// LaptopListQuery drives the admin/storefront listings. Search is a
// case-insensitive substring match over name/cpu/ram/storage/os.
// SortBy/Order fall back to id/asc when not whitelisted.
type LaptopListQuery struct {
	Sold   bool
	Search string
	SortBy string
	Order  string
}

// LaptopStats backs the dashboard counters on the index page.
type LaptopStats struct {
	Total       int64   `json:"total"`
	Sold        int64   `json:"sold"`
	Available   int64   `json:"available"`
	TotalProfit float64 `json:"total_profit"`
}

type LaptopRepository interface {
	List(ctx context.Context, q LaptopListQuery) ([]model.Laptop, error)
	// ListAll returns every laptop regardless of sold state (CSV export).
	ListAll(ctx context.Context) ([]model.Laptop, error)
	FindByID(ctx context.Context, id int64) (model.Laptop, error)
	Create(ctx context.Context, l model.Laptop) (model.Laptop, error)
	Update(ctx context.Context, l model.Laptop) error
	Delete(ctx context.Context, id int64) error

	// SetSold flips the availability flag; soldAt is nil when marking
	// a unit available again.
	SetSold(ctx context.Context, id int64, sold bool, soldAt *time.Time) error

	// Serial allocation support.
	CountBySerialPrefix(ctx context.Context, prefix string) (int64, error)
	SerialExists(ctx context.Context, serial string) (bool, error)

	Stats(ctx context.Context) (LaptopStats, error)
}
