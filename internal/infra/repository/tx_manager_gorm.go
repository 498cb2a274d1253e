package repository

import (
	"context"

	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderDetails repo.OrderDetailRepository
	dishes       repo.DishRepository
	setmeals     repo.SetmealRepository
	addressBooks repo.AddressBookRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) OrderDetails() repo.OrderDetailRepository { return r.orderDetails }
func (r *txReposGorm) Dishes() repo.DishRepository              { return r.dishes }
func (r *txReposGorm) Setmeals() repo.SetmealRepository         { return r.setmeals }
func (r *txReposGorm) AddressBooks() repo.AddressBookRepository { return r.addressBooks }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderDetails: NewOrderDetailGormRepository(tx),
			dishes:       NewDishGormRepository(tx),
			setmeals:     NewSetmealGormRepository(tx),
			addressBooks: NewAddressBookGormRepository(tx),
		}
		return fn(r)
	})
}
