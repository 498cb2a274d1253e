package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type SetmealListFilter struct {
	Page       PageQuery
	Name       string
	CategoryID *int64
	Status     *model.BinaryStatus
}

type SetmealRepository interface {
	FindByID(ctx context.Context, setmealID int64) (model.Setmeal, error)
	Create(ctx context.Context, setmeal model.Setmeal) (int64, error)
	Update(ctx context.Context, setmeal model.Setmeal) error
	DeleteByIDs(ctx context.Context, setmealIDs []int64) error

	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Setmeal, error)
	List(ctx context.Context, f SetmealListFilter) ([]model.Setmeal, int64, error)

	ReplaceDishes(ctx context.Context, setmealID int64, dishes []model.SetmealDish) error
	ListDishes(ctx context.Context, setmealID int64) ([]model.SetmealDish, error)

	//料理がいくつのセットに入っているか（削除ガード用）
	CountByDishID(ctx context.Context, dishID int64) (int64, error)
}
