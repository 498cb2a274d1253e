package handler

import (
	"net/http"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/employeeのHTTP。閲覧は従業員全員、編集系は管理者のみ。
type EmployeeHandler struct {
	uc *usecase.EmployeeUsecase
}

// DI
func NewEmployeeHandler(uc *usecase.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

type EmployeeRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Sex      string `json:"sex"`
	IDNumber string `json:"id_number"`
}

func (r EmployeeRequest) toInput() usecase.EmployeeInput {
	return usecase.EmployeeInput{
		Username: r.Username,
		Name:     r.Name,
		Phone:    r.Phone,
		Sex:      r.Sex,
		IDNumber: r.IDNumber,
	}
}

type EditPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *EmployeeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/employee")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))

	g.GET("/page", h.page)
	g.GET("/:id", h.detail)
	g.PUT("/editPassword", h.editPassword)

	admin := g.Group("")
	admin.Use(middleware.RoleGuard(usecase.RoleAdmin))
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.PUT("/:id/status/:status", h.changeStatus)
}

func (h *EmployeeHandler) page(c echo.Context) error {
	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	out, err := h.uc.Page(c.Request().Context(), page, c.QueryParam("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) detail(c echo.Context) error {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), employeeID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) create(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), operatorID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *EmployeeHandler) update(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	employeeID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), operatorID, employeeID, req.toInput()); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "employee updated"})
}

func (h *EmployeeHandler) changeStatus(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	employeeID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	n, ok := parseStatusParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	msg, err := h.uc.ChangeStatus(c.Request().Context(), operatorID, employeeID, model.BinaryStatus(n))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}

func (h *EmployeeHandler) editPassword(c echo.Context) error {
	employeeID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EditPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.EditPassword(c.Request().Context(), employeeID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "password updated"})
}
