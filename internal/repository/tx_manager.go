package repository

import "context"

// TxRepos is the set of repositories bound to one open transaction.
type TxRepos interface {
	Laptops() LaptopRepository
	SpareParts() SparePartRepository
	PartLinks() PartLinkRepository
	Images() ImageRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
}

// TransactionManager hides begin/commit/rollback from the usecases. Any
// error returned by fn rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
