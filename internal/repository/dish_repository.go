package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type DishListFilter struct {
	Page       PageQuery
	Name       string
	CategoryID *int64
	Status     *model.BinaryStatus
}

type DishRepository interface {
	FindByID(ctx context.Context, dishID int64) (model.Dish, error)
	Create(ctx context.Context, dish model.Dish) (int64, error)
	Update(ctx context.Context, dish model.Dish) error
	DeleteByIDs(ctx context.Context, dishIDs []int64) error

	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Dish, error)
	List(ctx context.Context, f DishListFilter) ([]model.Dish, int64, error)

	//味は更新のたびに総入れ替え
	ReplaceFlavors(ctx context.Context, dishID int64, flavors []model.DishFlavor) error
	ListFlavors(ctx context.Context, dishID int64) ([]model.DishFlavor, error)
}
