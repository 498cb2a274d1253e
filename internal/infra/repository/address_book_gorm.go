package repository

import (
	"context"
	"errors"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"gorm.io/gorm"
)

type AddressBookGormRepository struct {
	db *gorm.DB
}

func NewAddressBookGormRepository(db *gorm.DB) *AddressBookGormRepository {
	return &AddressBookGormRepository{db: db}
}

func (r *AddressBookGormRepository) FindByID(ctx context.Context, addressID int64) (model.AddressBook, error) {
	var a model.AddressBook
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AddressBook{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AddressBook{}, err
	}
	return a, nil
}

func (r *AddressBookGormRepository) Create(ctx context.Context, address model.AddressBook) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return 0, err
	}
	return address.ID, nil
}

func (r *AddressBookGormRepository) Update(ctx context.Context, address model.AddressBook) error {
	res := r.db.WithContext(ctx).Save(&address)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AddressBookGormRepository) DeleteByID(ctx context.Context, addressID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", addressID).Delete(&model.AddressBook{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AddressBookGormRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.AddressBook, error) {
	var items []model.AddressBook
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default desc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AddressBookGormRepository) ClearDefault(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Model(&model.AddressBook{}).
		Where("customer_id = ? AND is_default = ?", customerID, true).
		Update("is_default", false).Error
}
