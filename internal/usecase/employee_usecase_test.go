package usecase

import (
	"context"
	"testing"
	"time"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) FindByID(ctx context.Context, employeeID int64) (model.Employee, error) {
	args := m.Called(ctx, employeeID)
	e, _ := args.Get(0).(model.Employee)
	return e, args.Error(1)
}

func (m *MockEmployeeRepo) FindByUsername(ctx context.Context, username string) (model.Employee, error) {
	args := m.Called(ctx, username)
	e, _ := args.Get(0).(model.Employee)
	return e, args.Error(1)
}

func (m *MockEmployeeRepo) Create(ctx context.Context, employee model.Employee) (int64, error) {
	args := m.Called(ctx, employee)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepo) Update(ctx context.Context, employee model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepo) List(ctx context.Context, f repo.EmployeeListFilter) ([]model.Employee, int64, error) {
	args := m.Called(ctx, f)
	employees, _ := args.Get(0).([]model.Employee)
	return employees, args.Get(1).(int64), args.Error(2)
}

var _ repo.EmployeeRepository = (*MockEmployeeRepo)(nil)

type stubIssuer struct {
	token string
	role  string
}

func (s *stubIssuer) Issue(subject int64, role string, now time.Time) (string, time.Time, error) {
	s.role = role
	return s.token, now.Add(2 * time.Hour), nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestEmployeeLogin_Succeeds(t *testing.T) {
	employees := new(MockEmployeeRepo)
	issuer := &stubIssuer{token: "signed-token"}
	uc := NewEmployeeUsecase(employees, issuer, &fixedClock{now: time.Now()})

	employees.On("FindByUsername", mock.Anything, "chef").
		Return(model.Employee{
			ID: 5, Username: "chef", Name: "Chef Wang",
			PasswordHash: hashFor(t, "secret123"),
			Status:       model.StatusActive,
		}, nil)

	out, err := uc.Login(context.Background(), "chef", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, RoleEmployee, issuer.role)
}

func TestEmployeeLogin_AdminGetsAdminRole(t *testing.T) {
	employees := new(MockEmployeeRepo)
	issuer := &stubIssuer{token: "signed-token"}
	uc := NewEmployeeUsecase(employees, issuer, &fixedClock{now: time.Now()})

	employees.On("FindByUsername", mock.Anything, "boss").
		Return(model.Employee{
			ID: 1, Username: "boss",
			PasswordHash: hashFor(t, "secret123"),
			Status:       model.StatusActive,
			IsAdmin:      true,
		}, nil)

	_, err := uc.Login(context.Background(), "boss", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, issuer.role)
}

func TestEmployeeLogin_WrongPassword(t *testing.T) {
	employees := new(MockEmployeeRepo)
	uc := NewEmployeeUsecase(employees, &stubIssuer{}, &fixedClock{now: time.Now()})

	employees.On("FindByUsername", mock.Anything, "chef").
		Return(model.Employee{
			ID: 5, PasswordHash: hashFor(t, "secret123"), Status: model.StatusActive,
		}, nil)

	_, err := uc.Login(context.Background(), "chef", "wrong")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
}

func TestEmployeeLogin_LockedAccountForbidden(t *testing.T) {
	employees := new(MockEmployeeRepo)
	uc := NewEmployeeUsecase(employees, &stubIssuer{}, &fixedClock{now: time.Now()})

	employees.On("FindByUsername", mock.Anything, "chef").
		Return(model.Employee{
			ID: 5, PasswordHash: hashFor(t, "secret123"), Status: model.StatusLocked,
		}, nil)

	_, err := uc.Login(context.Background(), "chef", "secret123")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestEmployeeChangeStatus_Messages(t *testing.T) {
	cases := []struct {
		name      string
		previous  model.BinaryStatus
		requested model.BinaryStatus
		want      string
	}{
		{"lock active", model.StatusActive, model.StatusLocked, "Employee (id = 5) was LOCKED."},
		{"activate locked", model.StatusLocked, model.StatusActive, "Employee (id = 5) was ACTIVATED."},
		{"already active", model.StatusActive, model.StatusActive, "Employee (id = 5) was already ACTIVATED."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			employees := new(MockEmployeeRepo)
			uc := NewEmployeeUsecase(employees, &stubIssuer{}, &fixedClock{now: time.Now()})

			employees.On("FindByID", mock.Anything, int64(5)).
				Return(model.Employee{ID: 5, Status: tc.previous}, nil)
			employees.On("Update", mock.Anything, mock.AnythingOfType("model.Employee")).
				Return(nil)

			msg, err := uc.ChangeStatus(context.Background(), 1, 5, tc.requested)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, msg)

			//同じ状態なら書かない
			if tc.previous == tc.requested {
				employees.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEmployeeChangeStatus_InvalidCodeRejected(t *testing.T) {
	employees := new(MockEmployeeRepo)
	uc := NewEmployeeUsecase(employees, &stubIssuer{}, &fixedClock{now: time.Now()})

	employees.On("FindByID", mock.Anything, int64(5)).
		Return(model.Employee{ID: 5, Status: model.StatusActive}, nil)

	_, err := uc.ChangeStatus(context.Background(), 1, 5, model.BinaryStatus(7))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}
