package usecase

import (
	"context"
	"net/http"

	"takeout/internal/domain/model"
	"takeout/internal/domain/status"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
)

type DishUsecase struct {
	tx       repo.TransactionManager
	dishes   repo.DishRepository
	setmeals repo.SetmealRepository
}

func NewDishUsecase(tx repo.TransactionManager, dishes repo.DishRepository, setmeals repo.SetmealRepository) *DishUsecase {
	return &DishUsecase{tx: tx, dishes: dishes, setmeals: setmeals}
}

type DishFlavorInput struct {
	Name  string
	Value string
}

type DishInput struct {
	Name        string
	CategoryID  int64
	Price       decimal.Decimal
	Image       string
	Description string
	Flavors     []DishFlavorInput
}

func (in DishInput) validate() error {
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	return nil
}

func toFlavors(dishID int64, in []DishFlavorInput) []model.DishFlavor {
	flavors := make([]model.DishFlavor, 0, len(in))
	for _, f := range in {
		flavors = append(flavors, model.DishFlavor{
			DishID: dishID,
			Name:   f.Name,
			Value:  f.Value,
		})
	}
	return flavors
}

// Create は料理本体と味を1トランザクションで書く。新規は販売中で始まる。
func (u *DishUsecase) Create(ctx context.Context, operatorID int64, in DishInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var dishID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Dishes().Create(ctx, model.Dish{
			Name:         in.Name,
			CategoryID:   in.CategoryID,
			Price:        in.Price,
			Image:        in.Image,
			Description:  in.Description,
			Status:       model.StatusActive,
			CreateUserID: operatorID,
			UpdateUserID: operatorID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Dishes().ReplaceFlavors(ctx, id, toFlavors(id, in.Flavors)); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		dishID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dishID, nil
}

func (u *DishUsecase) Update(ctx context.Context, operatorID int64, dishID int64, in DishInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		d, err := r.Dishes().FindByID(ctx, dishID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "dish not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		d.Name = in.Name
		d.CategoryID = in.CategoryID
		d.Price = in.Price
		d.Image = in.Image
		d.Description = in.Description
		d.UpdateUserID = operatorID

		if err := r.Dishes().Update(ctx, d); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Dishes().ReplaceFlavors(ctx, dishID, toFlavors(dishID, in.Flavors)); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Delete は販売中の料理とセットに入っている料理を拒む。
func (u *DishUsecase) Delete(ctx context.Context, dishIDs []int64) error {
	if len(dishIDs) == 0 {
		return NewHTTPError(http.StatusBadRequest, "ids are required")
	}

	for _, id := range dishIDs {
		d, err := u.dishes.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "dish not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if d.Status == model.StatusActive {
			return NewHTTPError(http.StatusConflict, "dish on sale cannot be deleted")
		}

		n, err := u.setmeals.CountByDishID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if n > 0 {
			return NewHTTPError(http.StatusConflict, "dish is referenced by a setmeal")
		}
	}

	if err := u.dishes.DeleteByIDs(ctx, dishIDs); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *DishUsecase) ChangeStatus(ctx context.Context, operatorID int64, dishID int64, requested model.BinaryStatus) (string, error) {
	d, err := u.dishes.FindByID(ctx, dishID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "dish not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msg, err := status.Message("Dish", dishID, d.Status, requested)
	if err != nil {
		return "", WrapHTTPError(http.StatusBadRequest, err.Error(), err)
	}

	if d.Status != requested {
		d.Status = requested
		d.UpdateUserID = operatorID
		if err := u.dishes.Update(ctx, d); err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return msg, nil
}

type DishOutput struct {
	model.Dish
	Flavors []model.DishFlavor `json:"flavors"`
}

func (u *DishUsecase) GetByID(ctx context.Context, dishID int64) (DishOutput, error) {
	d, err := u.dishes.FindByID(ctx, dishID)
	if err == repo.ErrNotFound {
		return DishOutput{}, NewHTTPError(http.StatusNotFound, "dish not found")
	}
	if err != nil {
		return DishOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	flavors, err := u.dishes.ListFlavors(ctx, dishID)
	if err != nil {
		return DishOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return DishOutput{Dish: d, Flavors: flavors}, nil
}

type DishPageOutput struct {
	Total   int64        `json:"total"`
	Records []model.Dish `json:"records"`
}

func (u *DishUsecase) Page(ctx context.Context, f repo.DishListFilter) (DishPageOutput, error) {
	dishes, total, err := u.dishes.List(ctx, f)
	if err != nil {
		return DishPageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return DishPageOutput{Total: total, Records: dishes}, nil
}

// ListForMenu は客側メニュー。販売中の料理だけ味付きで返す。
func (u *DishUsecase) ListForMenu(ctx context.Context, categoryID int64) ([]DishOutput, error) {
	dishes, err := u.dishes.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]DishOutput, 0, len(dishes))
	for _, d := range dishes {
		if d.Status != model.StatusActive {
			continue
		}
		flavors, err := u.dishes.ListFlavors(ctx, d.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, DishOutput{Dish: d, Flavors: flavors})
	}
	return out, nil
}
