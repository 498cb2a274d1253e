package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByOpenID(ctx context.Context, openID string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, customer model.Customer) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return 0, err
	}
	return customer.ID, nil
}
