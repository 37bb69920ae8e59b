package repository

import (
	"context"

	repo "refurbstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	laptops    repo.LaptopRepository
	spareParts repo.SparePartRepository
	partLinks  repo.PartLinkRepository
	images     repo.ImageRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposGorm) Laptops() repo.LaptopRepository       { return r.laptops }
func (r *txReposGorm) SpareParts() repo.SparePartRepository { return r.spareParts }
func (r *txReposGorm) PartLinks() repo.PartLinkRepository   { return r.partLinks }
func (r *txReposGorm) Images() repo.ImageRepository         { return r.images }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// WithinTx rebuilds every repository on the transaction handle so all work
// inside fn commits or rolls back as one unit.
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &txReposGorm{
			laptops:    NewLaptopGormRepository(tx),
			spareParts: NewSparePartGormRepository(tx),
			partLinks:  NewPartLinkGormRepository(tx),
			images:     NewImageGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
		}
		return fn(r)
	})
}
