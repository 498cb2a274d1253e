package usecase

import (
	"context"
	"time"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// 固定時刻Clock
// =====================

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// =====================
// OrderRepository モック
// =====================

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepo) FindByNumber(ctx context.Context, number string) (model.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) Update(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.OrderRepository = (*MockOrderRepo)(nil)

// =====================
// OrderDetailRepository モック
// =====================

type MockOrderDetailRepo struct {
	mock.Mock
}

func (m *MockOrderDetailRepo) CreateBulk(ctx context.Context, orderID int64, details []model.OrderDetail) error {
	args := m.Called(ctx, orderID, details)
	return args.Error(0)
}

func (m *MockOrderDetailRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	details, _ := args.Get(0).([]model.OrderDetail)
	return details, args.Error(1)
}

var _ repo.OrderDetailRepository = (*MockOrderDetailRepo)(nil)

// =====================
// CustomerRepository モック
// =====================

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepo) FindByOpenID(ctx context.Context, openID string) (model.Customer, error) {
	args := m.Called(ctx, openID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer model.Customer) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.CustomerRepository = (*MockCustomerRepo)(nil)

// =====================
// AddressBookRepository モック
// =====================

type MockAddressBookRepo struct {
	mock.Mock
}

func (m *MockAddressBookRepo) FindByID(ctx context.Context, addressID int64) (model.AddressBook, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.AddressBook)
	return a, args.Error(1)
}

func (m *MockAddressBookRepo) Create(ctx context.Context, address model.AddressBook) (int64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressBookRepo) Update(ctx context.Context, address model.AddressBook) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressBookRepo) DeleteByID(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *MockAddressBookRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]model.AddressBook, error) {
	args := m.Called(ctx, customerID)
	addresses, _ := args.Get(0).([]model.AddressBook)
	return addresses, args.Error(1)
}

func (m *MockAddressBookRepo) ClearDefault(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

var _ repo.AddressBookRepository = (*MockAddressBookRepo)(nil)

// =====================
// DishRepository モック
// =====================

type MockDishRepo struct {
	mock.Mock
}

func (m *MockDishRepo) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	args := m.Called(ctx, dishID)
	d, _ := args.Get(0).(model.Dish)
	return d, args.Error(1)
}

func (m *MockDishRepo) Create(ctx context.Context, dish model.Dish) (int64, error) {
	args := m.Called(ctx, dish)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDishRepo) Update(ctx context.Context, dish model.Dish) error {
	args := m.Called(ctx, dish)
	return args.Error(0)
}

func (m *MockDishRepo) DeleteByIDs(ctx context.Context, dishIDs []int64) error {
	args := m.Called(ctx, dishIDs)
	return args.Error(0)
}

func (m *MockDishRepo) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	args := m.Called(ctx, categoryID)
	dishes, _ := args.Get(0).([]model.Dish)
	return dishes, args.Error(1)
}

func (m *MockDishRepo) List(ctx context.Context, f repo.DishListFilter) ([]model.Dish, int64, error) {
	args := m.Called(ctx, f)
	dishes, _ := args.Get(0).([]model.Dish)
	return dishes, args.Get(1).(int64), args.Error(2)
}

func (m *MockDishRepo) ReplaceFlavors(ctx context.Context, dishID int64, flavors []model.DishFlavor) error {
	args := m.Called(ctx, dishID, flavors)
	return args.Error(0)
}

func (m *MockDishRepo) ListFlavors(ctx context.Context, dishID int64) ([]model.DishFlavor, error) {
	args := m.Called(ctx, dishID)
	flavors, _ := args.Get(0).([]model.DishFlavor)
	return flavors, args.Error(1)
}

var _ repo.DishRepository = (*MockDishRepo)(nil)

// =====================
// SetmealRepository モック
// =====================

type MockSetmealRepo struct {
	mock.Mock
}

func (m *MockSetmealRepo) FindByID(ctx context.Context, setmealID int64) (model.Setmeal, error) {
	args := m.Called(ctx, setmealID)
	s, _ := args.Get(0).(model.Setmeal)
	return s, args.Error(1)
}

func (m *MockSetmealRepo) Create(ctx context.Context, setmeal model.Setmeal) (int64, error) {
	args := m.Called(ctx, setmeal)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSetmealRepo) Update(ctx context.Context, setmeal model.Setmeal) error {
	args := m.Called(ctx, setmeal)
	return args.Error(0)
}

func (m *MockSetmealRepo) DeleteByIDs(ctx context.Context, setmealIDs []int64) error {
	args := m.Called(ctx, setmealIDs)
	return args.Error(0)
}

func (m *MockSetmealRepo) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Setmeal, error) {
	args := m.Called(ctx, categoryID)
	setmeals, _ := args.Get(0).([]model.Setmeal)
	return setmeals, args.Error(1)
}

func (m *MockSetmealRepo) List(ctx context.Context, f repo.SetmealListFilter) ([]model.Setmeal, int64, error) {
	args := m.Called(ctx, f)
	setmeals, _ := args.Get(0).([]model.Setmeal)
	return setmeals, args.Get(1).(int64), args.Error(2)
}

func (m *MockSetmealRepo) ReplaceDishes(ctx context.Context, setmealID int64, dishes []model.SetmealDish) error {
	args := m.Called(ctx, setmealID, dishes)
	return args.Error(0)
}

func (m *MockSetmealRepo) ListDishes(ctx context.Context, setmealID int64) ([]model.SetmealDish, error) {
	args := m.Called(ctx, setmealID)
	dishes, _ := args.Get(0).([]model.SetmealDish)
	return dishes, args.Error(1)
}

func (m *MockSetmealRepo) CountByDishID(ctx context.Context, dishID int64) (int64, error) {
	args := m.Called(ctx, dishID)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.SetmealRepository = (*MockSetmealRepo)(nil)

// =====================
// TransactionManager スタブ
// Txの境界だけ再現し、中身は同じモックを返す
// =====================

type stubTxRepos struct {
	orders       *MockOrderRepo
	orderDetails *MockOrderDetailRepo
	dishes       *MockDishRepo
	setmeals     *MockSetmealRepo
	addressBooks *MockAddressBookRepo
}

func (r *stubTxRepos) Orders() repo.OrderRepository             { return r.orders }
func (r *stubTxRepos) OrderDetails() repo.OrderDetailRepository { return r.orderDetails }
func (r *stubTxRepos) Dishes() repo.DishRepository              { return r.dishes }
func (r *stubTxRepos) Setmeals() repo.SetmealRepository         { return r.setmeals }
func (r *stubTxRepos) AddressBooks() repo.AddressBookRepository { return r.addressBooks }

type stubTxManager struct {
	repos *stubTxRepos
}

func (tm *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.repos)
}

var _ repo.TransactionManager = (*stubTxManager)(nil)

// =====================
// CancelDelayScheduler スタブ
// =====================

type stubScheduler struct {
	scheduled []int64
	err       error
}

func (s *stubScheduler) Schedule(ctx context.Context, orderID int64, delay time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.scheduled = append(s.scheduled, orderID)
	return nil
}
