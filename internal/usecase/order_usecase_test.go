package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"takeout/internal/domain/cart"
	"takeout/internal/domain/model"
	"takeout/internal/infra/cache"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderTestEnv struct {
	uc        *OrderUsecase
	orders    *MockOrderRepo
	details   *MockOrderDetailRepo
	customers *MockCustomerRepo
	addresses *MockAddressBookRepo
	dishes    *MockDishRepo
	setmeals  *MockSetmealRepo
	store     *cache.MemoryStore
	scheduler *stubScheduler
	now       time.Time
}

func newOrderTestEnv() *orderTestEnv {
	env := &orderTestEnv{
		orders:    new(MockOrderRepo),
		details:   new(MockOrderDetailRepo),
		customers: new(MockCustomerRepo),
		addresses: new(MockAddressBookRepo),
		dishes:    new(MockDishRepo),
		setmeals:  new(MockSetmealRepo),
		store:     cache.NewMemoryStore(),
		scheduler: &stubScheduler{},
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	tx := &stubTxManager{repos: &stubTxRepos{
		orders:       env.orders,
		orderDetails: env.details,
		dishes:       env.dishes,
		setmeals:     env.setmeals,
		addressBooks: env.addresses,
	}}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.uc = NewOrderUsecase(tx, env.orders, env.details, env.customers, env.store,
		env.scheduler, &fixedClock{now: env.now}, log)
	return env
}

// カートを直接KVストアへ仕込む
func (env *orderTestEnv) seedCart(t *testing.T, customerID int64, c cart.Cart) {
	t.Helper()
	raw, err := json.Marshal(c)
	assert.NoError(t, err)
	assert.NoError(t, env.store.Set(context.Background(), cartCacheKey(customerID), raw, cartTTL))
}

func (env *orderTestEnv) cartExists(t *testing.T, customerID int64) bool {
	t.Helper()
	_, found, err := env.store.Get(context.Background(), cartCacheKey(customerID))
	assert.NoError(t, err)
	return found
}

func TestOrderSubmit_CreatesOrderAndClearsCart(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()

	env.seedCart(t, 10, cart.Cart{
		"dish_7_spicy": {Number: 2, UpdatedAt: env.now},
		"setmeal_3":    {Number: 1, UpdatedAt: env.now},
	})

	env.customers.On("FindByID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 10, Name: "taro"}, nil)
	env.addresses.On("FindByID", mock.Anything, int64(5)).
		Return(model.AddressBook{
			ID: 5, CustomerID: 10, Consignee: "taro", Phone: "09011112222",
			ProvinceName: "Tokyo", Detail: "1-2-3",
		}, nil)
	env.dishes.On("FindByID", mock.Anything, int64(7)).
		Return(model.Dish{ID: 7, Name: "mapo tofu", Image: "mapo.png", Price: decimal.NewFromInt(12)}, nil)
	env.setmeals.On("FindByID", mock.Anything, int64(3)).
		Return(model.Setmeal{ID: 3, Name: "lunch set", Image: "lunch.png", Price: decimal.NewFromInt(20)}, nil)

	var createdOrder model.Order
	env.orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(model.Order)
		}).
		Return(int64(101), nil)

	var createdDetails []model.OrderDetail
	env.details.On("CreateBulk", mock.Anything, int64(101), mock.Anything).
		Run(func(args mock.Arguments) {
			createdDetails = args.Get(2).([]model.OrderDetail)
		}).
		Return(nil)

	out, err := env.uc.Submit(ctx, 10, SubmitOrderInput{AddressBookID: 5, PayMethod: model.PayMethodWechat})
	assert.NoError(t, err)
	assert.Equal(t, int64(101), out.ID)
	assert.NotEmpty(t, out.Number)

	//金額は 12*2 + 20*1 = 44
	assert.True(t, decimal.NewFromInt(44).Equal(out.Amount))
	assert.True(t, decimal.NewFromInt(44).Equal(createdOrder.Amount))

	//スナップショット
	assert.Equal(t, model.OrderStatusUnpaid, createdOrder.Status)
	assert.Equal(t, "09011112222", createdOrder.Phone)
	assert.Equal(t, "Tokyo1-2-3", createdOrder.Address)

	//明細はキーの辞書順で2行
	assert.Len(t, createdDetails, 2)
	assert.Equal(t, "mapo tofu", createdDetails[0].Name)
	assert.Equal(t, "spicy", createdDetails[0].DishFlavor)
	assert.Equal(t, 2, createdDetails[0].Number)
	assert.Equal(t, "lunch set", createdDetails[1].Name)

	//コミット後にカートは消える
	assert.False(t, env.cartExists(t, 10))

	//自動キャンセルが予約される
	assert.Equal(t, []int64{101}, env.scheduler.scheduled)
}

func TestOrderSubmit_EmptyCartRejected(t *testing.T) {
	env := newOrderTestEnv()

	_, err := env.uc.Submit(context.Background(), 10, SubmitOrderInput{AddressBookID: 5})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.ErrorIs(t, err, ErrEmptyCart)

	//何も書かれない
	env.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.details.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderSubmit_ForeignAddressForbidden(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()

	env.seedCart(t, 10, cart.Cart{"dish_7": {Number: 1, UpdatedAt: env.now}})

	env.customers.On("FindByID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 10}, nil)
	env.addresses.On("FindByID", mock.Anything, int64(5)).
		Return(model.AddressBook{ID: 5, CustomerID: 99}, nil)

	_, err := env.uc.Submit(ctx, 10, SubmitOrderInput{AddressBookID: 5})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)

	//失敗時はカートが残る
	assert.True(t, env.cartExists(t, 10))
	env.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderPay_MovesUnpaidToUnaccepted(t *testing.T) {
	env := newOrderTestEnv()

	env.orders.On("FindByNumber", mock.Anything, "20250601-10").
		Return(model.Order{ID: 101, Number: "20250601-10", Status: model.OrderStatusUnpaid, PayStatus: model.PayStatusUnpaid}, nil)

	var updated model.Order
	env.orders.On("Update", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(model.Order)
		}).
		Return(nil)

	err := env.uc.Pay(context.Background(), "20250601-10", model.PayMethodWechat)
	assert.NoError(t, err)

	assert.Equal(t, model.OrderStatusUnaccepted, updated.Status)
	assert.Equal(t, model.PayStatusPaid, updated.PayStatus)
	assert.Equal(t, model.PayMethodWechat, updated.PayMethod)
}

func TestOrderPay_NotUnpaidConflicts(t *testing.T) {
	env := newOrderTestEnv()

	env.orders.On("FindByNumber", mock.Anything, "20250601-10").
		Return(model.Order{ID: 101, Status: model.OrderStatusAccepted}, nil)

	err := env.uc.Pay(context.Background(), "20250601-10", model.PayMethodWechat)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
	env.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderCancel_StampsTimeAndReason(t *testing.T) {
	env := newOrderTestEnv()

	env.orders.On("FindByID", mock.Anything, int64(101)).
		Return(model.Order{ID: 101, CustomerID: 10, Status: model.OrderStatusAccepted}, nil)

	var updated model.Order
	env.orders.On("Update", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(model.Order)
		}).
		Return(nil)

	err := env.uc.Cancel(context.Background(), 10, 101, "changed my mind")
	assert.NoError(t, err)

	assert.Equal(t, model.OrderStatusCanceled, updated.Status)
	assert.Equal(t, "changed my mind", updated.CancelReason)
	assert.NotNil(t, updated.CancelTime)
	assert.Equal(t, env.now, *updated.CancelTime)
}

func TestOrderCancel_TerminalStateConflicts(t *testing.T) {
	for _, s := range []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCanceled} {
		env := newOrderTestEnv()
		env.orders.On("FindByID", mock.Anything, int64(101)).
			Return(model.Order{ID: 101, CustomerID: 10, Status: s}, nil)

		err := env.uc.Cancel(context.Background(), 10, 101, "late")

		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 409, he.Status)
		env.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestOrderCancel_ForeignOrderHidden(t *testing.T) {
	env := newOrderTestEnv()

	env.orders.On("FindByID", mock.Anything, int64(101)).
		Return(model.Order{ID: 101, CustomerID: 99, Status: model.OrderStatusUnpaid}, nil)

	err := env.uc.Cancel(context.Background(), 10, 101, "not mine")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestOrderRepeat_ClonesAtOriginalPrices(t *testing.T) {
	env := newOrderTestEnv()

	prevDetails := []model.OrderDetail{
		{Name: "mapo tofu", Number: 2, Amount: decimal.NewFromInt(12)},
		{Name: "lunch set", Number: 1, Amount: decimal.NewFromInt(20)},
	}

	env.orders.On("FindByID", mock.Anything, int64(101)).
		Return(model.Order{
			ID: 101, Number: "old-number", CustomerID: 10,
			Status: model.OrderStatusCompleted, Amount: decimal.NewFromInt(44),
		}, nil)
	env.details.On("ListByOrderID", mock.Anything, int64(101)).
		Return(prevDetails, nil)

	var createdOrder model.Order
	env.orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(model.Order)
		}).
		Return(int64(202), nil)
	env.details.On("CreateBulk", mock.Anything, int64(202), prevDetails).
		Return(nil)

	out, err := env.uc.Repeat(context.Background(), 10, 101)
	assert.NoError(t, err)

	assert.Equal(t, int64(202), out.ID)
	assert.NotEqual(t, "old-number", out.Number)

	//新しい注文は未払いから始まり、金額は当時のまま
	assert.Equal(t, model.OrderStatusUnpaid, createdOrder.Status)
	assert.Equal(t, model.PayStatusUnpaid, createdOrder.PayStatus)
	assert.True(t, decimal.NewFromInt(44).Equal(createdOrder.Amount))
	assert.Nil(t, createdOrder.CancelTime)
}

func TestAutoCancel_CancelsOnlyUnpaid(t *testing.T) {
	orders := new(MockOrderRepo)
	now := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewAutoCancelWorker(orders, &fixedClock{now: now}, log)

	orders.On("FindByID", mock.Anything, int64(101)).
		Return(model.Order{ID: 101, Status: model.OrderStatusUnpaid}, nil)

	var updated model.Order
	orders.On("Update", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(model.Order)
		}).
		Return(nil)

	err := w.AutoCancelUnpaid(context.Background(), 101)
	assert.NoError(t, err)

	assert.Equal(t, model.OrderStatusCanceled, updated.Status)
	assert.Equal(t, "unpaid timeout", updated.CancelReason)
	assert.Equal(t, now, *updated.CancelTime)
}

func TestAutoCancel_PaidOrderUntouched(t *testing.T) {
	orders := new(MockOrderRepo)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewAutoCancelWorker(orders, &fixedClock{now: time.Now()}, log)

	orders.On("FindByID", mock.Anything, int64(101)).
		Return(model.Order{ID: 101, Status: model.OrderStatusUnaccepted}, nil)

	err := w.AutoCancelUnpaid(context.Background(), 101)
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAutoCancel_MissingOrderIsNoop(t *testing.T) {
	orders := new(MockOrderRepo)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewAutoCancelWorker(orders, &fixedClock{now: time.Now()}, log)

	orders.On("FindByID", mock.Anything, int64(404)).
		Return(model.Order{}, repo.ErrNotFound)

	err := w.AutoCancelUnpaid(context.Background(), 404)
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
