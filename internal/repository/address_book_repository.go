package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type AddressBookRepository interface {
	FindByID(ctx context.Context, addressID int64) (model.AddressBook, error)
	Create(ctx context.Context, address model.AddressBook) (int64, error)
	Update(ctx context.Context, address model.AddressBook) error
	DeleteByID(ctx context.Context, addressID int64) error
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.AddressBook, error)

	//デフォルト住所は顧客ごとに1つ
	ClearDefault(ctx context.Context, customerID int64) error
}
