package usecase

import (
	"context"
	"net/http"

	"takeout/internal/domain/model"
	"takeout/internal/domain/status"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
)

type SetmealUsecase struct {
	tx       repo.TransactionManager
	setmeals repo.SetmealRepository
	dishes   repo.DishRepository
}

func NewSetmealUsecase(tx repo.TransactionManager, setmeals repo.SetmealRepository, dishes repo.DishRepository) *SetmealUsecase {
	return &SetmealUsecase{tx: tx, setmeals: setmeals, dishes: dishes}
}

type SetmealDishInput struct {
	DishID int64
	Copies int
}

type SetmealInput struct {
	Name        string
	CategoryID  int64
	Price       decimal.Decimal
	Image       string
	Description string
	Dishes      []SetmealDishInput
}

func (in SetmealInput) validate() error {
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if len(in.Dishes) == 0 {
		return NewHTTPError(http.StatusBadRequest, "setmeal needs at least one dish")
	}
	return nil
}

// resolveDishes は構成料理の存在を確かめ、名前と価格をその時点の値で控える。
func resolveDishes(ctx context.Context, dishes repo.DishRepository, setmealID int64, in []SetmealDishInput) ([]model.SetmealDish, error) {
	out := make([]model.SetmealDish, 0, len(in))
	for _, sd := range in {
		d, err := dishes.FindByID(ctx, sd.DishID)
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "dish not found")
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		copies := sd.Copies
		if copies < 1 {
			copies = 1
		}
		out = append(out, model.SetmealDish{
			SetmealID: setmealID,
			DishID:    d.ID,
			Name:      d.Name,
			Price:     d.Price,
			Copies:    copies,
		})
	}
	return out, nil
}

func (u *SetmealUsecase) Create(ctx context.Context, operatorID int64, in SetmealInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var setmealID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Setmeals().Create(ctx, model.Setmeal{
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

		dishes, err := resolveDishes(ctx, r.Dishes(), id, in.Dishes)
		if err != nil {
			return err
		}
		if err := r.Setmeals().ReplaceDishes(ctx, id, dishes); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		setmealID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return setmealID, nil
}

func (u *SetmealUsecase) Update(ctx context.Context, operatorID int64, setmealID int64, in SetmealInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Setmeals().FindByID(ctx, setmealID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "setmeal not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		s.Name = in.Name
		s.CategoryID = in.CategoryID
		s.Price = in.Price
		s.Image = in.Image
		s.Description = in.Description
		s.UpdateUserID = operatorID

		if err := r.Setmeals().Update(ctx, s); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		dishes, err := resolveDishes(ctx, r.Dishes(), setmealID, in.Dishes)
		if err != nil {
			return err
		}
		if err := r.Setmeals().ReplaceDishes(ctx, setmealID, dishes); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func (u *SetmealUsecase) Delete(ctx context.Context, setmealIDs []int64) error {
	if len(setmealIDs) == 0 {
		return NewHTTPError(http.StatusBadRequest, "ids are required")
	}

	for _, id := range setmealIDs {
		s, err := u.setmeals.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "setmeal not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if s.Status == model.StatusActive {
			return NewHTTPError(http.StatusConflict, "setmeal on sale cannot be deleted")
		}
	}

	if err := u.setmeals.DeleteByIDs(ctx, setmealIDs); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ChangeStatus は販売開始時だけ構成料理の状態を見る。
// 停止中の料理を含むセットは売り出せない。
func (u *SetmealUsecase) ChangeStatus(ctx context.Context, operatorID int64, setmealID int64, requested model.BinaryStatus) (string, error) {
	s, err := u.setmeals.FindByID(ctx, setmealID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "setmeal not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msg, err := status.Message("Setmeal", setmealID, s.Status, requested)
	if err != nil {
		return "", WrapHTTPError(http.StatusBadRequest, err.Error(), err)
	}

	if requested == model.StatusActive && s.Status != model.StatusActive {
		dishes, err := u.setmeals.ListDishes(ctx, setmealID)
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		for _, sd := range dishes {
			d, err := u.dishes.FindByID(ctx, sd.DishID)
			if err == repo.ErrNotFound {
				return "", NewHTTPError(http.StatusConflict, "setmeal contains a deleted dish")
			}
			if err != nil {
				return "", NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if d.Status != model.StatusActive {
				return "", NewHTTPError(http.StatusConflict, "setmeal contains a dish not on sale")
			}
		}
	}

	if s.Status != requested {
		s.Status = requested
		s.UpdateUserID = operatorID
		if err := u.setmeals.Update(ctx, s); err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return msg, nil
}

type SetmealOutput struct {
	model.Setmeal
	Dishes []model.SetmealDish `json:"dishes"`
}

func (u *SetmealUsecase) GetByID(ctx context.Context, setmealID int64) (SetmealOutput, error) {
	s, err := u.setmeals.FindByID(ctx, setmealID)
	if err == repo.ErrNotFound {
		return SetmealOutput{}, NewHTTPError(http.StatusNotFound, "setmeal not found")
	}
	if err != nil {
		return SetmealOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dishes, err := u.setmeals.ListDishes(ctx, setmealID)
	if err != nil {
		return SetmealOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SetmealOutput{Setmeal: s, Dishes: dishes}, nil
}

type SetmealPageOutput struct {
	Total   int64           `json:"total"`
	Records []model.Setmeal `json:"records"`
}

func (u *SetmealUsecase) Page(ctx context.Context, f repo.SetmealListFilter) (SetmealPageOutput, error) {
	setmeals, total, err := u.setmeals.List(ctx, f)
	if err != nil {
		return SetmealPageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SetmealPageOutput{Total: total, Records: setmeals}, nil
}

// ListForMenu は客側メニュー。販売中のセットだけ返す。
func (u *SetmealUsecase) ListForMenu(ctx context.Context, categoryID int64) ([]model.Setmeal, error) {
	setmeals, err := u.setmeals.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]model.Setmeal, 0, len(setmeals))
	for _, s := range setmeals {
		if s.Status == model.StatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}
