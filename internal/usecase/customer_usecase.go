package usecase

import (
	"context"
	"net/http"
	"time"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"
)

// WechatClient はログインコードをopenidへ引き換える外部API。
type WechatClient interface {
	CodeToOpenID(ctx context.Context, code string) (string, error)
}

type CustomerUsecase struct {
	customers repo.CustomerRepository
	wechat    WechatClient
	issuer    TokenIssuer
	clock     Clock
}

func NewCustomerUsecase(customers repo.CustomerRepository, wechat WechatClient, issuer TokenIssuer, clock Clock) *CustomerUsecase {
	return &CustomerUsecase{customers: customers, wechat: wechat, issuer: issuer, clock: clock}
}

type CustomerLoginOutput struct {
	ID        int64     `json:"id"`
	OpenID    string    `json:"openid"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login はopenid初見なら顧客を作る。以降は同じ行に紐づく。
func (u *CustomerUsecase) Login(ctx context.Context, code string) (CustomerLoginOutput, error) {
	if code == "" {
		return CustomerLoginOutput{}, NewHTTPError(http.StatusBadRequest, "code is required")
	}

	openID, err := u.wechat.CodeToOpenID(ctx, code)
	if err != nil {
		return CustomerLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "wechat login failed")
	}

	c, err := u.customers.FindByOpenID(ctx, openID)
	if err == repo.ErrNotFound {
		id, err := u.customers.Create(ctx, model.Customer{OpenID: openID})
		if err != nil {
			return CustomerLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		c = model.Customer{ID: id, OpenID: openID}
	} else if err != nil {
		return CustomerLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, expiresAt, err := u.issuer.Issue(c.ID, RoleCustomer, u.clock.Now())
	if err != nil {
		return CustomerLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return CustomerLoginOutput{
		ID:        c.ID,
		OpenID:    c.OpenID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
