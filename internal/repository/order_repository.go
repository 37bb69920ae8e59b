package repository

import (
	"context"
	"time"

	"refurbstore/internal/domain/model"
)

type OrderListFilter struct {
	Status string
}

type OrderRepository interface {
	Create(ctx context.Context, o model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// FindByIDAndEmail is the guest lookup path: the order id alone is not
	// enough, the contact email must match too.
	FindByIDAndEmail(ctx context.Context, orderID int64, email string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	// UpdateStatus writes the status and both workflow timestamps in one
	// statement so transitions never leave a half-updated row.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, confirmedDate *time.Time, completedDate *time.Time) error
	Delete(ctx context.Context, orderID int64) error
}
