package usecase

import "time"

// トークンに入れる役割。
const (
	RoleCustomer = "CUSTOMER"
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// TokenIssuer はアクセストークンの発行だけを担う。検証はミドルウェア側。
type TokenIssuer interface {
	Issue(subject int64, role string, now time.Time) (token string, expiresAt time.Time, err error)
}
