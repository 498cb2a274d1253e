package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type CategoryListFilter struct {
	Page PageQuery
	Name string
	Type *model.CategoryType
}

type CategoryRepository interface {
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)
	Create(ctx context.Context, category model.Category) (int64, error)
	Update(ctx context.Context, category model.Category) error
	DeleteByID(ctx context.Context, categoryID int64) error

	ListByType(ctx context.Context, categoryType *model.CategoryType) ([]model.Category, error)
	List(ctx context.Context, f CategoryListFilter) ([]model.Category, int64, error)
}
