package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, category model.Category) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, category model.Category) error {
	res := r.db.WithContext(ctx).Save(&category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) DeleteByID(ctx context.Context, categoryID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", categoryID).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) ListByType(ctx context.Context, categoryType *model.CategoryType) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if categoryType != nil {
		q = q.Where("type = ?", *categoryType)
	}

	var items []model.Category
	if err := q.Order("sort asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CategoryGormRepository) List(ctx context.Context, f repo.CategoryListFilter) ([]model.Category, int64, error) {
	page := f.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Category{})

	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Category{}, 0, err
	}

	var items []model.Category
	err := q.Order("sort asc").Limit(page.PageSize).Offset(page.Offset()).Find(&items).Error
	if err != nil {
		return []model.Category{}, 0, err
	}

	return items, total, nil
}
