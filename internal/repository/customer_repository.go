package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByOpenID(ctx context.Context, openID string) (model.Customer, error)
	Create(ctx context.Context, customer model.Customer) (int64, error)
}
