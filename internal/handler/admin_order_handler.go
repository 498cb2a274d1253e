package handler

import (
	"net/http"
	"strconv"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orderのHTTP
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type AdminCancelOrderRequest struct {
	Reason string `json:"reason"`
}

// /admin/order を登録。従業員と管理者のどちらも操作できる。
func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/order")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))

	g.GET("/page", h.page)
	g.GET("/statistics", h.statistics)
	g.PUT("/confirm/:id", h.confirm)
	g.PUT("/rejection/:id", h.reject)
	g.PUT("/delivery/:id", h.startDelivery)
	g.PUT("/complete/:id", h.complete)
	g.PUT("/cancel/:id", h.cancel)
}

func (h *AdminOrderHandler) page(c echo.Context) error {
	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	in := usecase.AdminOrderSearchInput{
		Page:   page,
		Number: c.QueryParam("number"),
		Phone:  c.QueryParam("phone"),
	}

	if v := c.QueryParam("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		s := model.OrderStatus(n)
		in.Status = &s
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) statistics(c echo.Context) error {
	out, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) confirm(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Confirm(c.Request().Context(), orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order confirmed"})
}

func (h *AdminOrderHandler) reject(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req RejectOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Reject(c.Request().Context(), orderID, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order rejected"})
}

func (h *AdminOrderHandler) startDelivery(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.StartDelivery(c.Request().Context(), orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "delivery started"})
}

func (h *AdminOrderHandler) complete(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Complete(c.Request().Context(), orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order completed"})
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminCancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Cancel(c.Request().Context(), orderID, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order canceled"})
}
