package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

func (r *DishGormRepository) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).Where("id = ?", dishID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dish{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func (r *DishGormRepository) Create(ctx context.Context, dish model.Dish) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&dish).Error; err != nil {
		return 0, err
	}
	return dish.ID, nil
}

func (r *DishGormRepository) Update(ctx context.Context, dish model.Dish) error {
	res := r.db.WithContext(ctx).Save(&dish)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DishGormRepository) DeleteByIDs(ctx context.Context, dishIDs []int64) error {
	if len(dishIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id IN ?", dishIDs).Delete(&model.DishFlavor{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", dishIDs).Delete(&model.Dish{}).Error
	})
}

func (r *DishGormRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	var items []model.Dish
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DishGormRepository) List(ctx context.Context, f repo.DishListFilter) ([]model.Dish, int64, error) {
	page := f.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Dish{})

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
		return []model.Dish{}, 0, err
	}

	var items []model.Dish
	err := q.Order("id asc").Limit(page.PageSize).Offset(page.Offset()).Find(&items).Error
	if err != nil {
		return []model.Dish{}, 0, err
	}

	return items, total, nil
}

func (r *DishGormRepository) ReplaceFlavors(ctx context.Context, dishID int64, flavors []model.DishFlavor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", dishID).Delete(&model.DishFlavor{}).Error; err != nil {
			return err
		}
		if len(flavors) == 0 {
			return nil
		}

		rows := make([]model.DishFlavor, 0, len(flavors))
		for _, f := range flavors {
			f.ID = 0
			f.DishID = dishID
			rows = append(rows, f)
		}
		return tx.Create(&rows).Error
	})
}

func (r *DishGormRepository) ListFlavors(ctx context.Context, dishID int64) ([]model.DishFlavor, error) {
	var items []model.DishFlavor
	err := r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
