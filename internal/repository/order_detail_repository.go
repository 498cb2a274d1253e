package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type OrderDetailRepository interface {
	CreateBulk(ctx context.Context, orderID int64, details []model.OrderDetail) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderDetail, error)
}
