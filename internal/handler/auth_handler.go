package handler

import (
	"net/http"

	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ログイン系のHTTP。認証前なのでミドルウェアは通さない。
type AuthHandler struct {
	customers *usecase.CustomerUsecase
	employees *usecase.EmployeeUsecase
}

// DI
func NewAuthHandler(customers *usecase.CustomerUsecase, employees *usecase.EmployeeUsecase) *AuthHandler {
	return &AuthHandler{customers: customers, employees: employees}
}

type WechatLoginRequest struct {
	Code string `json:"code"`
}

type EmployeeLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/user/login", h.wechatLogin)
	e.POST("/admin/employee/login", h.employeeLogin)
}

func (h *AuthHandler) wechatLogin(c echo.Context) error {
	var req WechatLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.customers.Login(c.Request().Context(), req.Code)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) employeeLogin(c echo.Context) error {
	var req EmployeeLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.employees.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
