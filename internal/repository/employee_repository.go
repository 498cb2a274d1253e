package repository

import (
	"context"

	"takeout/internal/domain/model"
)

type EmployeeListFilter struct {
	Page PageQuery
	Name string
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, employeeID int64) (model.Employee, error)
	FindByUsername(ctx context.Context, username string) (model.Employee, error)
	Create(ctx context.Context, employee model.Employee) (int64, error)
	Update(ctx context.Context, employee model.Employee) error
	List(ctx context.Context, f EmployeeListFilter) ([]model.Employee, int64, error)
}
