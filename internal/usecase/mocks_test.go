package usecase

import (
	"context"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockLaptopRepo struct {
	mock.Mock
}

func (m *mockLaptopRepo) List(ctx context.Context, q repo.LaptopListQuery) ([]model.Laptop, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Laptop), args.Error(1)
}

func (m *mockLaptopRepo) ListAll(ctx context.Context) ([]model.Laptop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Laptop), args.Error(1)
}

func (m *mockLaptopRepo) FindByID(ctx context.Context, id int64) (model.Laptop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Laptop), args.Error(1)
}

func (m *mockLaptopRepo) Create(ctx context.Context, l model.Laptop) (model.Laptop, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(model.Laptop), args.Error(1)
}

func (m *mockLaptopRepo) Update(ctx context.Context, l model.Laptop) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLaptopRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLaptopRepo) SetSold(ctx context.Context, id int64, sold bool, soldAt *time.Time) error {
	return m.Called(ctx, id, sold, soldAt).Error(0)
}

func (m *mockLaptopRepo) CountBySerialPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLaptopRepo) SerialExists(ctx context.Context, serial string) (bool, error) {
	args := m.Called(ctx, serial)
	return args.Bool(0), args.Error(1)
}

func (m *mockLaptopRepo) Stats(ctx context.Context) (repo.LaptopStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.LaptopStats), args.Error(1)
}

type mockSparePartRepo struct {
	mock.Mock
}

func (m *mockSparePartRepo) List(ctx context.Context, q repo.SparePartListQuery) ([]model.SparePart, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.SparePart), args.Error(1)
}

func (m *mockSparePartRepo) FindByID(ctx context.Context, id int64) (model.SparePart, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SparePart), args.Error(1)
}

func (m *mockSparePartRepo) Create(ctx context.Context, p model.SparePart) (model.SparePart, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.SparePart), args.Error(1)
}

func (m *mockSparePartRepo) Update(ctx context.Context, p model.SparePart) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockSparePartRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSparePartRepo) DecrementIfAvailable(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSparePartRepo) Increment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPartLinkRepo struct {
	mock.Mock
}

func (m *mockPartLinkRepo) Create(ctx context.Context, link model.LaptopSparepart) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockPartLinkRepo) DeleteOne(ctx context.Context, laptopID int64, sparepartID int64) error {
	return m.Called(ctx, laptopID, sparepartID).Error(0)
}

func (m *mockPartLinkRepo) ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopSparepart, error) {
	args := m.Called(ctx, laptopID)
	return args.Get(0).([]model.LaptopSparepart), args.Error(1)
}

func (m *mockPartLinkRepo) ListInstalledParts(ctx context.Context, laptopID int64) ([]model.SparePart, error) {
	args := m.Called(ctx, laptopID)
	return args.Get(0).([]model.SparePart), args.Error(1)
}

func (m *mockPartLinkRepo) DeleteByLaptopID(ctx context.Context, laptopID int64) error {
	return m.Called(ctx, laptopID).Error(0)
}

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Create(ctx context.Context, img model.LaptopImage) (model.LaptopImage, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(model.LaptopImage), args.Error(1)
}

func (m *mockImageRepo) FindByID(ctx context.Context, laptopID int64, imageID int64) (model.LaptopImage, error) {
	args := m.Called(ctx, laptopID, imageID)
	return args.Get(0).(model.LaptopImage), args.Error(1)
}

func (m *mockImageRepo) FindPrimaryOrAny(ctx context.Context, laptopID int64) (model.LaptopImage, error) {
	args := m.Called(ctx, laptopID)
	return args.Get(0).(model.LaptopImage), args.Error(1)
}

func (m *mockImageRepo) ListByLaptopID(ctx context.Context, laptopID int64) ([]model.LaptopImage, error) {
	args := m.Called(ctx, laptopID)
	return args.Get(0).([]model.LaptopImage), args.Error(1)
}

func (m *mockImageRepo) CountByLaptopID(ctx context.Context, laptopID int64) (int64, error) {
	args := m.Called(ctx, laptopID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, laptopID int64, imageID int64) error {
	return m.Called(ctx, laptopID, imageID).Error(0)
}

func (m *mockImageRepo) DeleteByLaptopID(ctx context.Context, laptopID int64) error {
	return m.Called(ctx, laptopID).Error(0)
}

func (m *mockImageRepo) ClearPrimary(ctx context.Context, laptopID int64) error {
	return m.Called(ctx, laptopID).Error(0)
}

func (m *mockImageRepo) SetPrimary(ctx context.Context, laptopID int64, imageID int64) error {
	return m.Called(ctx, laptopID, imageID).Error(0)
}

func (m *mockImageRepo) PromoteAny(ctx context.Context, laptopID int64) error {
	return m.Called(ctx, laptopID).Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, o model.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByIDAndEmail(ctx context.Context, orderID int64, email string) (model.Order, error) {
	args := m.Called(ctx, orderID, email)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, confirmedDate *time.Time, completedDate *time.Time) error {
	return m.Called(ctx, orderID, status, confirmedDate, completedDate).Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *mockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

// fakeTxRepos bundles the mocks behind the transaction boundary.
type fakeTxRepos struct {
	laptops    *mockLaptopRepo
	spareParts *mockSparePartRepo
	partLinks  *mockPartLinkRepo
	images     *mockImageRepo
	orders     *mockOrderRepo
	orderItems *mockOrderItemRepo
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		laptops:    new(mockLaptopRepo),
		spareParts: new(mockSparePartRepo),
		partLinks:  new(mockPartLinkRepo),
		images:     new(mockImageRepo),
		orders:     new(mockOrderRepo),
		orderItems: new(mockOrderItemRepo),
	}
}

func (f *fakeTxRepos) Laptops() repo.LaptopRepository       { return f.laptops }
func (f *fakeTxRepos) SpareParts() repo.SparePartRepository { return f.spareParts }
func (f *fakeTxRepos) PartLinks() repo.PartLinkRepository   { return f.partLinks }
func (f *fakeTxRepos) Images() repo.ImageRepository         { return f.images }
func (f *fakeTxRepos) Orders() repo.OrderRepository         { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.orderItems }

// fakeTxManager runs fn immediately against the bundled mocks. Rollback is
// not simulated: the tests assert on the error instead.
type fakeTxManager struct {
	repos *fakeTxRepos
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{repos: newFakeTxRepos()}
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}
