package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type EmployeeGormRepository struct {
	db *gorm.DB
}

func NewEmployeeGormRepository(db *gorm.DB) *EmployeeGormRepository {
	return &EmployeeGormRepository{db: db}
}

func (r *EmployeeGormRepository) FindByID(ctx context.Context, employeeID int64) (model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("id = ?", employeeID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Employee{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeGormRepository) FindByUsername(ctx context.Context, username string) (model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Employee{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeGormRepository) Create(ctx context.Context, employee model.Employee) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return 0, err
	}
	return employee.ID, nil
}

func (r *EmployeeGormRepository) Update(ctx context.Context, employee model.Employee) error {
	res := r.db.WithContext(ctx).Save(&employee)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EmployeeGormRepository) List(ctx context.Context, f repo.EmployeeListFilter) ([]model.Employee, int64, error) {
	page := f.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Employee{})

	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Employee{}, 0, err
	}

	var items []model.Employee
	err := q.Order("id asc").Limit(page.PageSize).Offset(page.Offset()).Find(&items).Error
	if err != nil {
		return []model.Employee{}, 0, err
	}

	return items, total, nil
}
