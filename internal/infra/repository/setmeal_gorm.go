package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type SetmealGormRepository struct {
	db *gorm.DB
}

func NewSetmealGormRepository(db *gorm.DB) *SetmealGormRepository {
	return &SetmealGormRepository{db: db}
}

func (r *SetmealGormRepository) FindByID(ctx context.Context, setmealID int64) (model.Setmeal, error) {
	var s model.Setmeal
	err := r.db.WithContext(ctx).Where("id = ?", setmealID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Setmeal{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Setmeal{}, err
	}
	return s, nil
}

func (r *SetmealGormRepository) Create(ctx context.Context, setmeal model.Setmeal) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&setmeal).Error; err != nil {
		return 0, err
	}
	return setmeal.ID, nil
}

func (r *SetmealGormRepository) Update(ctx context.Context, setmeal model.Setmeal) error {
	res := r.db.WithContext(ctx).Save(&setmeal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SetmealGormRepository) DeleteByIDs(ctx context.Context, setmealIDs []int64) error {
	if len(setmealIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("setmeal_id IN ?", setmealIDs).Delete(&model.SetmealDish{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", setmealIDs).Delete(&model.Setmeal{}).Error
	})
}

func (r *SetmealGormRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Setmeal, error) {
	var items []model.Setmeal
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SetmealGormRepository) List(ctx context.Context, f repo.SetmealListFilter) ([]model.Setmeal, int64, error) {
	page := f.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Setmeal{})

	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Setmeal{}, 0, err
	}

	var items []model.Setmeal
	err := q.Order("id asc").Limit(page.PageSize).Offset(page.Offset()).Find(&items).Error
	if err != nil {
		return []model.Setmeal{}, 0, err
	}

	return items, total, nil
}

func (r *SetmealGormRepository) ReplaceDishes(ctx context.Context, setmealID int64, dishes []model.SetmealDish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("setmeal_id = ?", setmealID).Delete(&model.SetmealDish{}).Error; err != nil {
			return err
		}
		if len(dishes) == 0 {
			return nil
		}

		rows := make([]model.SetmealDish, 0, len(dishes))
		for _, d := range dishes {
			d.ID = 0
			d.SetmealID = setmealID
			rows = append(rows, d)
		}
		return tx.Create(&rows).Error
	})
}

func (r *SetmealGormRepository) ListDishes(ctx context.Context, setmealID int64) ([]model.SetmealDish, error) {
	var items []model.SetmealDish
	err := r.db.WithContext(ctx).
		Where("setmeal_id = ?", setmealID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SetmealGormRepository) CountByDishID(ctx context.Context, dishID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SetmealDish{}).
		Where("dish_id = ?", dishID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
