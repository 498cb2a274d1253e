package usecase

import (
	"context"
	"net/http"

	"takeout/internal/domain/model"
	"takeout/internal/domain/status"
	repo "takeout/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	dishes     repo.DishRepository
	setmeals   repo.SetmealRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository, dishes repo.DishRepository, setmeals repo.SetmealRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, dishes: dishes, setmeals: setmeals}
}

type CategoryInput struct {
	Name string
	Type model.CategoryType
	Sort int
}

func (in CategoryInput) validate() error {
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Type != model.CategoryTypeDish && in.Type != model.CategoryTypeSetmeal {
		return NewHTTPError(http.StatusBadRequest, "invalid category type")
	}
	return nil
}

func (u *CategoryUsecase) Create(ctx context.Context, operatorID int64, in CategoryInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	id, err := u.categories.Create(ctx, model.Category{
		Name:         in.Name,
		Type:         in.Type,
		Sort:         in.Sort,
		Status:       model.StatusActive,
		CreateUserID: operatorID,
		UpdateUserID: operatorID,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, operatorID int64, categoryID int64, in CategoryInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	c, err := u.categories.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c.Name = in.Name
	c.Type = in.Type
	c.Sort = in.Sort
	c.UpdateUserID = operatorID

	if err := u.categories.Update(ctx, c); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Delete は料理かセットが1つでも紐づいている間は消せない。
func (u *CategoryUsecase) Delete(ctx context.Context, categoryID int64) error {
	if _, err := u.categories.FindByID(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dishes, err := u.dishes.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(dishes) > 0 {
		return NewHTTPError(http.StatusConflict, "category still has dishes")
	}

	setmeals, err := u.setmeals.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(setmeals) > 0 {
		return NewHTTPError(http.StatusConflict, "category still has setmeals")
	}

	if err := u.categories.DeleteByID(ctx, categoryID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ChangeStatus は現状態との比較結果を文面で返す。同じ状態でもエラーにはしない。
func (u *CategoryUsecase) ChangeStatus(ctx context.Context, operatorID int64, categoryID int64, requested model.BinaryStatus) (string, error) {
	c, err := u.categories.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msg, err := status.Message("Category", categoryID, c.Status, requested)
	if err != nil {
		return "", WrapHTTPError(http.StatusBadRequest, err.Error(), err)
	}

	if c.Status != requested {
		c.Status = requested
		c.UpdateUserID = operatorID
		if err := u.categories.Update(ctx, c); err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return msg, nil
}

type CategoryPageOutput struct {
	Total   int64            `json:"total"`
	Records []model.Category `json:"records"`
}

func (u *CategoryUsecase) Page(ctx context.Context, page repo.PageQuery, name string, categoryType *model.CategoryType) (CategoryPageOutput, error) {
	categories, total, err := u.categories.List(ctx, repo.CategoryListFilter{
		Page: page,
		Name: name,
		Type: categoryType,
	})
	if err != nil {
		return CategoryPageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryPageOutput{Total: total, Records: categories}, nil
}

// ListByType は客側メニューのタブ。typeを省略すると全件。
func (u *CategoryUsecase) ListByType(ctx context.Context, categoryType *model.CategoryType) ([]model.Category, error) {
	categories, err := u.categories.ListByType(ctx, categoryType)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}
