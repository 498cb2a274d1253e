package usecase

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"takeout/internal/domain/model"
	"takeout/internal/domain/status"
	repo "takeout/internal/repository"
)

type EmployeeUsecase struct {
	employees repo.EmployeeRepository
	issuer    TokenIssuer
	clock     Clock
}

func NewEmployeeUsecase(employees repo.EmployeeRepository, issuer TokenIssuer, clock Clock) *EmployeeUsecase {
	return &EmployeeUsecase{employees: employees, issuer: issuer, clock: clock}
}

type EmployeeLoginOutput struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login はロック中(0)の従業員を通さない。
// 失敗理由はユーザー名・パスワードどちらでも同じ文面で返す。
func (u *EmployeeUsecase) Login(ctx context.Context, username, password string) (EmployeeLoginOutput, error) {
	e, err := u.employees.FindByUsername(ctx, username)
	if err == repo.ErrNotFound {
		return EmployeeLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		return EmployeeLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return EmployeeLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	if e.Status == model.StatusLocked {
		return EmployeeLoginOutput{}, NewHTTPError(http.StatusForbidden, "account is locked")
	}

	role := RoleEmployee
	if e.IsAdmin {
		role = RoleAdmin
	}

	token, expiresAt, err := u.issuer.Issue(e.ID, role, u.clock.Now())
	if err != nil {
		return EmployeeLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return EmployeeLoginOutput{
		ID:        e.ID,
		Username:  e.Username,
		Name:      e.Name,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

type EmployeeInput struct {
	Username string
	Name     string
	Phone    string
	Sex      string
	IDNumber string
}

func (in EmployeeInput) validate() error {
	if in.Username == "" {
		return NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return nil
}

// 新規従業員の初期パスワード。初回ログイン後に変えてもらう運用。
const defaultEmployeePassword = "123456"

func (u *EmployeeUsecase) Create(ctx context.Context, operatorID int64, in EmployeeInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	if _, err := u.employees.FindByUsername(ctx, in.Username); err == nil {
		return 0, NewHTTPError(http.StatusConflict, "username already exists")
	} else if err != repo.ErrNotFound {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultEmployeePassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	id, err := u.employees.Create(ctx, model.Employee{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Sex:          in.Sex,
		IDNumber:     in.IDNumber,
		Status:       model.StatusActive,
		CreateUserID: operatorID,
		UpdateUserID: operatorID,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *EmployeeUsecase) Update(ctx context.Context, operatorID int64, employeeID int64, in EmployeeInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	e, err := u.employees.FindByID(ctx, employeeID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "employee not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	e.Username = in.Username
	e.Name = in.Name
	e.Phone = in.Phone
	e.Sex = in.Sex
	e.IDNumber = in.IDNumber
	e.UpdateUserID = operatorID

	if err := u.employees.Update(ctx, e); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *EmployeeUsecase) ChangeStatus(ctx context.Context, operatorID int64, employeeID int64, requested model.BinaryStatus) (string, error) {
	e, err := u.employees.FindByID(ctx, employeeID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "employee not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msg, err := status.Message("Employee", employeeID, e.Status, requested)
	if err != nil {
		return "", WrapHTTPError(http.StatusBadRequest, err.Error(), err)
	}

	if e.Status != requested {
		e.Status = requested
		e.UpdateUserID = operatorID
		if err := u.employees.Update(ctx, e); err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return msg, nil
}

// EditPassword は本人の旧パスワード確認付きの変更。
func (u *EmployeeUsecase) EditPassword(ctx context.Context, employeeID int64, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	e, err := u.employees.FindByID(ctx, employeeID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "employee not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(oldPassword)); err != nil {
		return NewHTTPError(http.StatusUnauthorized, "old password does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	e.PasswordHash = string(hash)
	e.UpdateUserID = employeeID

	if err := u.employees.Update(ctx, e); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *EmployeeUsecase) GetByID(ctx context.Context, employeeID int64) (model.Employee, error) {
	e, err := u.employees.FindByID(ctx, employeeID)
	if err == repo.ErrNotFound {
		return model.Employee{}, NewHTTPError(http.StatusNotFound, "employee not found")
	}
	if err != nil {
		return model.Employee{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return e, nil
}

type EmployeePageOutput struct {
	Total   int64            `json:"total"`
	Records []model.Employee `json:"records"`
}

func (u *EmployeeUsecase) Page(ctx context.Context, page repo.PageQuery, name string) (EmployeePageOutput, error) {
	employees, total, err := u.employees.List(ctx, repo.EmployeeListFilter{Page: page, Name: name})
	if err != nil {
		return EmployeePageOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return EmployeePageOutput{Total: total, Records: employees}, nil
}
