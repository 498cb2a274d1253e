package usecase

import (
	"context"
	"log/slog"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"
)

// AutoCancelWorker は遅延キューから届いた注文IDを処理する。
// APIサーバーとは別プロセスで動くので依存は注文リポジトリだけ。
type AutoCancelWorker struct {
	orders repo.OrderRepository
	clock  Clock
	log    *slog.Logger
}

func NewAutoCancelWorker(orders repo.OrderRepository, clock Clock, log *slog.Logger) *AutoCancelWorker {
	return &AutoCancelWorker{orders: orders, clock: clock, log: log}
}

// AutoCancelUnpaid は未払い(1)の注文だけをキャンセルする。
// 既に進んだ注文や消えた注文はログだけ残して何もしない。
// メッセージの重複配送があっても結果は変わらない。
func (w *AutoCancelWorker) AutoCancelUnpaid(ctx context.Context, orderID int64) error {
	o, err := w.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		w.log.Warn("auto cancel: order does not exist", "order_id", orderID)
		return nil
	}
	if err != nil {
		return err
	}

	if o.Status != model.OrderStatusUnpaid {
		w.log.Info("auto cancel: order already processed", "order_id", orderID, "status", int(o.Status))
		return nil
	}

	now := w.clock.Now()
	o.Status = model.OrderStatusCanceled
	o.CancelReason = "unpaid timeout"
	o.CancelTime = &now

	if err := w.orders.Update(ctx, o); err != nil {
		return err
	}

	w.log.Info("auto cancel: order canceled", "order_id", orderID)
	return nil
}
