package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type OrderListFilter struct {
	Page       PageQuery
	Status     *model.OrderStatus
	Number     string
	Phone      string
	CustomerID *int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByNumber(ctx context.Context, number string) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//statusや各時刻の更新はまとめてUpdateで書く
	Update(ctx context.Context, order model.Order) error

	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
}
