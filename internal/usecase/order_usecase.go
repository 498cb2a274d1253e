package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"takeout/internal/domain/cart"
	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
)

// 未払いのまま放置された注文はこの時間後に自動キャンセルされる。
const unpaidCancelDelay = 15 * time.Minute

// CancelDelayScheduler は注文IDを遅延付きでブローカーへ積む約束。
type CancelDelayScheduler interface {
	Schedule(ctx context.Context, orderID int64, delay time.Duration) error
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	details   repo.OrderDetailRepository
	customers repo.CustomerRepository
	cache     repo.CacheStore
	scheduler CancelDelayScheduler
	clock     Clock
	log       *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	details repo.OrderDetailRepository,
	customers repo.CustomerRepository,
	cache repo.CacheStore,
	scheduler CancelDelayScheduler,
	clock Clock,
	log *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		details:   details,
		customers: customers,
		cache:     cache,
		scheduler: scheduler,
		clock:     clock,
		log:       log,
	}
}

type SubmitOrderInput struct {
	AddressBookID   int64
	PayMethod       model.PayMethod
	PackAmount      decimal.Decimal
	TablewareNumber int
	TablewareStatus int
	DeliveryStatus  int
	Remark          string
}

type SubmitOrderOutput struct {
	ID        int64           `json:"id"`
	Number    string          `json:"order_number"`
	Amount    decimal.Decimal `json:"order_amount"`
	OrderTime time.Time       `json:"order_time"`
}

type OrderDetailOutput struct {
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	DishID     *int64          `json:"dish_id"`
	SetmealID  *int64          `json:"setmeal_id"`
	DishFlavor string          `json:"dish_flavor"`
	Number     int             `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
}

type OrderOutput struct {
	ID        int64               `json:"id"`
	Number    string              `json:"number"`
	Status    model.OrderStatus   `json:"status"`
	Amount    decimal.Decimal     `json:"amount"`
	OrderTime time.Time           `json:"order_time"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Consignee string              `json:"consignee"`
	Remark    string              `json:"remark"`
	Details   []OrderDetailOutput `json:"details"`
}

// Submit はカートを不変の注文＋明細へ確定する。
// 注文と明細は1トランザクションで作り、カートはコミット後にだけ消す。
// 明細の解決に失敗したら注文は残らず、カートもそのまま。
func (u *OrderUsecase) Submit(ctx context.Context, customerID int64, in SubmitOrderInput) (SubmitOrderOutput, error) {
	if customerID <= 0 {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressBookID <= 0 {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid address_book_id")
	}

	c, err := loadCart(ctx, u.cache, customerID)
	if err != nil {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	if c.Empty() {
		return SubmitOrderOutput{}, WrapHTTPError(http.StatusBadRequest, "cart is empty", ErrEmptyCart)
	}

	customer, err := u.customers.FindByID(ctx, customerID)
	if err == repo.ErrNotFound {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	number := fmt.Sprintf("%d%d", now.UnixNano(), customerID)

	var out SubmitOrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		addr, err := r.AddressBooks().FindByID(ctx, in.AddressBookID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "address not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の住所では注文できない
		if addr.CustomerID != customerID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		details := make([]model.OrderDetail, 0, len(c))
		amount := decimal.Zero

		for _, raw := range sortedKeys(c) {
			key, err := cart.ParseKey(raw)
			if err != nil {
				return WrapHTTPError(http.StatusBadRequest, "invalid item key", err)
			}
			entry := c[raw]

			detail := model.OrderDetail{
				DishFlavor: key.Flavor,
				Number:     int(entry.Number),
			}

			//名前・画像・単価はこの瞬間のスナップショット
			switch key.Kind {
			case cart.KindDish:
				d, err := r.Dishes().FindByID(ctx, key.ID)
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "dish not found")
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				dishID := d.ID
				detail.Name = d.Name
				detail.Image = d.Image
				detail.DishID = &dishID
				detail.Amount = d.Price

			case cart.KindSetmeal:
				s, err := r.Setmeals().FindByID(ctx, key.ID)
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "setmeal not found")
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				setmealID := s.ID
				detail.Name = s.Name
				detail.Image = s.Image
				detail.SetmealID = &setmealID
				detail.Amount = s.Price
			}

			amount = amount.Add(detail.Amount.Mul(decimal.NewFromInt(entry.Number)))
			details = append(details, detail)
		}

		order := model.Order{
			Number:          number,
			Status:          model.OrderStatusUnpaid,
			CustomerID:      customerID,
			AddressBookID:   in.AddressBookID,
			OrderTime:       now,
			PayMethod:       in.PayMethod,
			PayStatus:       model.PayStatusUnpaid,
			Amount:          amount,
			Remark:          in.Remark,
			Phone:           addr.Phone,
			Address:         addr.FullAddress(),
			UserName:        customer.Name,
			Consignee:       addr.Consignee,
			DeliveryStatus:  in.DeliveryStatus,
			PackAmount:      in.PackAmount,
			TablewareNumber: in.TablewareNumber,
			TablewareStatus: in.TablewareStatus,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderDetails().CreateBulk(ctx, orderID, details); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = SubmitOrderOutput{
			ID:        orderID,
			Number:    number,
			Amount:    amount,
			OrderTime: now,
		}
		return nil
	})

	if err != nil {
		return SubmitOrderOutput{}, err
	}

	//コミットできた後に消す。成功したのにカートが残って見えてはいけない
	if err := clearCart(ctx, u.cache, customerID); err != nil {
		u.log.Error("cart clear after submit failed", "customer_id", customerID, "error", err)
	}

	//未払い自動キャンセルの予約。失敗しても注文は成立している
	if err := u.scheduler.Schedule(ctx, out.ID, unpaidCancelDelay); err != nil {
		u.log.Error("cancel schedule failed", "order_id", out.ID, "error", err)
	}

	return out, nil
}

// Pay は未払いの注文だけを支払い済み（確認待ち）へ進める。
func (u *OrderUsecase) Pay(ctx context.Context, number string, method model.PayMethod) error {
	o, err := u.orders.FindByNumber(ctx, number)
	if err == repo.ErrNotFound {
		return WrapHTTPError(http.StatusNotFound, "order not found", repo.ErrNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.Status != model.OrderStatusUnpaid {
		return NewHTTPError(http.StatusConflict, "order is not unpaid")
	}

	o.Status = model.OrderStatusUnaccepted
	o.PayStatus = model.PayStatusPaid
	o.PayMethod = method

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Cancel は完了・キャンセル以外のどの状態からでもキャンセルできる。
// 他人の注文は「無い」扱い。
func (u *OrderUsecase) Cancel(ctx context.Context, customerID, orderID int64, reason string) error {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return WrapHTTPError(http.StatusNotFound, "order not found", repo.ErrNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != customerID {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}

	if o.Status.Terminal() {
		return NewHTTPError(http.StatusConflict, "order is already completed or canceled")
	}

	now := u.clock.Now()
	o.Status = model.OrderStatusCanceled
	o.CancelReason = reason
	o.CancelTime = &now

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Repeat は過去の注文を新しい未払い注文として作り直す。
// 明細は当時の価格のまま複製し、現在価格や販売状態は見ない。
func (u *OrderUsecase) Repeat(ctx context.Context, customerID int64, orderID int64) (SubmitOrderOutput, error) {
	if customerID <= 0 {
		return SubmitOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := u.clock.Now()
	number := fmt.Sprintf("%d%d", now.UnixNano(), customerID)

	var out SubmitOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		prev, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if prev.CustomerID != customerID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		clone := prev
		clone.ID = 0
		clone.Number = number
		clone.Status = model.OrderStatusUnpaid
		clone.PayStatus = model.PayStatusUnpaid
		clone.OrderTime = now
		clone.CheckoutTime = nil
		clone.CancelTime = nil
		clone.DeliveryTime = nil
		clone.CancelReason = ""
		clone.RejectionReason = ""

		orderID, err := r.Orders().Create(ctx, clone)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		prevDetails, err := r.OrderDetails().ListByOrderID(ctx, prev.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderDetails().CreateBulk(ctx, orderID, prevDetails); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = SubmitOrderOutput{
			ID:        orderID,
			Number:    number,
			Amount:    clone.Amount,
			OrderTime: now,
		}
		return nil
	})

	if err != nil {
		return SubmitOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, customerID, orderID int64) (OrderOutput, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, WrapHTTPError(http.StatusNotFound, "order not found", repo.ErrNotFound)
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != customerID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	details, err := u.details.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, details), nil
}

type OrderPageOutput struct {
	Total   int64         `json:"total"`
	Records []OrderOutput `json:"records"`
}

// History は顧客自身の注文履歴（新しい順）。
func (u *OrderUsecase) History(ctx context.Context, customerID int64, page repo.PageQuery, status *model.OrderStatus) (OrderPageOutput, error) {
	if customerID <= 0 {
		return OrderPageOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if status != nil && !status.Valid() {
		return OrderPageOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.List(ctx, repo.OrderListFilter{
		Page:       page,
		Status:     status,
		CustomerID: &customerID,
	})
	if err != nil {
		return OrderPageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	records := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		details, err := u.details.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderPageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		records = append(records, toOrderOutput(o, details))
	}

	return OrderPageOutput{Total: total, Records: records}, nil
}

func toOrderOutput(o model.Order, details []model.OrderDetail) OrderOutput {
	outDetails := make([]OrderDetailOutput, 0, len(details))
	for _, d := range details {
		outDetails = append(outDetails, OrderDetailOutput{
			Name:       d.Name,
			Image:      d.Image,
			DishID:     d.DishID,
			SetmealID:  d.SetmealID,
			DishFlavor: d.DishFlavor,
			Number:     d.Number,
			Amount:     d.Amount,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		Number:    o.Number,
		Status:    o.Status,
		Amount:    o.Amount,
		OrderTime: o.OrderTime,
		Phone:     o.Phone,
		Address:   o.Address,
		Consignee: o.Consignee,
		Remark:    o.Remark,
		Details:   outDetails,
	}
}
