package usecase

import (
	"context"
	"net/http"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"
)

type AddressUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressBookRepository
}

func NewAddressUsecase(tx repo.TransactionManager, addresses repo.AddressBookRepository) *AddressUsecase {
	return &AddressUsecase{tx: tx, addresses: addresses}
}

type AddressInput struct {
	Consignee    string
	Sex          string
	Phone        string
	ProvinceName string
	CityName     string
	DistrictName string
	Detail       string
	Label        string
	IsDefault    bool
}

func (in AddressInput) validate() error {
	if in.Consignee == "" {
		return NewHTTPError(http.StatusBadRequest, "consignee is required")
	}
	if in.Phone == "" {
		return NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	if in.Detail == "" {
		return NewHTTPError(http.StatusBadRequest, "detail is required")
	}
	return nil
}

// findOwned は他人の住所を「無い」扱いで弾く。
func (u *AddressUsecase) findOwned(ctx context.Context, customerID, addressID int64) (model.AddressBook, error) {
	a, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return model.AddressBook{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return model.AddressBook{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if a.CustomerID != customerID {
		return model.AddressBook{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	return a, nil
}

func (u *AddressUsecase) Create(ctx context.Context, customerID int64, in AddressInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var addressID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//デフォルトにするなら既存のデフォルトを先に下ろす
		if in.IsDefault {
			if err := r.AddressBooks().ClearDefault(ctx, customerID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		id, err := r.AddressBooks().Create(ctx, model.AddressBook{
			CustomerID:   customerID,
			Consignee:    in.Consignee,
			Sex:          in.Sex,
			Phone:        in.Phone,
			ProvinceName: in.ProvinceName,
			CityName:     in.CityName,
			DistrictName: in.DistrictName,
			Detail:       in.Detail,
			Label:        in.Label,
			IsDefault:    in.IsDefault,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		addressID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return addressID, nil
}

func (u *AddressUsecase) Update(ctx context.Context, customerID, addressID int64, in AddressInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	a, err := u.findOwned(ctx, customerID, addressID)
	if err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.IsDefault && !a.IsDefault {
			if err := r.AddressBooks().ClearDefault(ctx, customerID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		a.Consignee = in.Consignee
		a.Sex = in.Sex
		a.Phone = in.Phone
		a.ProvinceName = in.ProvinceName
		a.CityName = in.CityName
		a.DistrictName = in.DistrictName
		a.Detail = in.Detail
		a.Label = in.Label
		a.IsDefault = in.IsDefault

		if err := r.AddressBooks().Update(ctx, a); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func (u *AddressUsecase) Delete(ctx context.Context, customerID, addressID int64) error {
	if _, err := u.findOwned(ctx, customerID, addressID); err != nil {
		return err
	}

	if err := u.addresses.DeleteByID(ctx, addressID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AddressUsecase) GetByID(ctx context.Context, customerID, addressID int64) (model.AddressBook, error) {
	return u.findOwned(ctx, customerID, addressID)
}

func (u *AddressUsecase) List(ctx context.Context, customerID int64) ([]model.AddressBook, error) {
	addresses, err := u.addresses.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return addresses, nil
}

// Default はデフォルト住所。未設定なら404。
func (u *AddressUsecase) Default(ctx context.Context, customerID int64) (model.AddressBook, error) {
	addresses, err := u.addresses.ListByCustomerID(ctx, customerID)
	if err != nil {
		return model.AddressBook{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, a := range addresses {
		if a.IsDefault {
			return a, nil
		}
	}
	return model.AddressBook{}, NewHTTPError(http.StatusNotFound, "default address not set")
}

// SetDefault は指定の1件だけをデフォルトにする。
func (u *AddressUsecase) SetDefault(ctx context.Context, customerID, addressID int64) error {
	a, err := u.findOwned(ctx, customerID, addressID)
	if err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.AddressBooks().ClearDefault(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		a.IsDefault = true
		if err := r.AddressBooks().Update(ctx, a); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
