package usecase

import (
	"context"
	"net/http"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"
)

// AdminOrderUsecase は店側の注文操作。受理・拒否・配達・完了は
// すべて「いまの状態」を見てからでないと進めない。
type AdminOrderUsecase struct {
	orders  repo.OrderRepository
	details repo.OrderDetailRepository
	clock   Clock
}

func NewAdminOrderUsecase(orders repo.OrderRepository, details repo.OrderDetailRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, details: details, clock: clock}
}

func (u *AdminOrderUsecase) findForTransition(ctx context.Context, orderID int64, want model.OrderStatus, conflict string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, WrapHTTPError(http.StatusNotFound, "order not found", repo.ErrNotFound)
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.Status != want {
		return model.Order{}, NewHTTPError(http.StatusConflict, conflict)
	}
	return o, nil
}

// Confirm は支払い済み(2)の注文を受理(3)へ進める。
func (u *AdminOrderUsecase) Confirm(ctx context.Context, orderID int64) error {
	o, err := u.findForTransition(ctx, orderID, model.OrderStatusUnaccepted, "order is not awaiting acceptance")
	if err != nil {
		return err
	}

	now := u.clock.Now()
	o.Status = model.OrderStatusAccepted
	o.CheckoutTime = &now

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Reject は支払い済み(2)の注文を断って未払い(1)へ戻す。
// 返金処理は外側の決済側の仕事なのでここでは状態だけ戻す。
func (u *AdminOrderUsecase) Reject(ctx context.Context, orderID int64, reason string) error {
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "rejection reason is required")
	}

	o, err := u.findForTransition(ctx, orderID, model.OrderStatusUnaccepted, "order is not awaiting acceptance")
	if err != nil {
		return err
	}

	o.Status = model.OrderStatusUnpaid
	o.RejectionReason = reason

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// StartDelivery は受理済み(3)を配達中(4)へ進め、配達開始時刻を押す。
func (u *AdminOrderUsecase) StartDelivery(ctx context.Context, orderID int64) error {
	o, err := u.findForTransition(ctx, orderID, model.OrderStatusAccepted, "order is not accepted")
	if err != nil {
		return err
	}

	now := u.clock.Now()
	o.Status = model.OrderStatusDistributing
	o.DeliveryTime = &now

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Complete は配達中(4)を完了(5)で締める。
func (u *AdminOrderUsecase) Complete(ctx context.Context, orderID int64) error {
	o, err := u.findForTransition(ctx, orderID, model.OrderStatusDistributing, "order is not in delivery")
	if err != nil {
		return err
	}

	o.Status = model.OrderStatusCompleted

	if err := u.orders.Update(ctx, o); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Cancel は店都合のキャンセル。完了・キャンセル済み以外ならいつでも打てる。
func (u *AdminOrderUsecase) Cancel(ctx context.Context, orderID int64, reason string) error {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return WrapHTTPError(http.StatusNotFound, "order not found", repo.ErrNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
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

type AdminOrderSearchInput struct {
	Page   repo.PageQuery
	Status *model.OrderStatus
	Number string
	Phone  string
}

// List は管理画面の注文検索。番号・電話・状態で絞れる。
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderSearchInput) (OrderPageOutput, error) {
	if in.Status != nil && !in.Status.Valid() {
		return OrderPageOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.List(ctx, repo.OrderListFilter{
		Page:   in.Page,
		Status: in.Status,
		Number: in.Number,
		Phone:  in.Phone,
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

type OrderStatisticsOutput struct {
	ToBeConfirmed      int64 `json:"to_be_confirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"delivery_in_progress"`
}

// Statistics は管理画面のバッジに出す件数。
func (u *AdminOrderUsecase) Statistics(ctx context.Context) (OrderStatisticsOutput, error) {
	var out OrderStatisticsOutput
	var err error

	if out.ToBeConfirmed, err = u.orders.CountByStatus(ctx, model.OrderStatusUnaccepted); err != nil {
		return OrderStatisticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.Confirmed, err = u.orders.CountByStatus(ctx, model.OrderStatusAccepted); err != nil {
		return OrderStatisticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.DeliveryInProgress, err = u.orders.CountByStatus(ctx, model.OrderStatusDistributing); err != nil {
		return OrderStatisticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}
