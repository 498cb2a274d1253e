package handler

import (
	"net/http"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 店舗の営業状態。参照は誰でも、切替は店側だけ。
type ShopHandler struct {
	uc *usecase.ShopUsecase
}

// DI
func NewShopHandler(uc *usecase.ShopUsecase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

type SetShopStatusRequest struct {
	Status int `json:"status"`
}

type ShopStatusResponse struct {
	Status int `json:"status"`
}

func (h *ShopHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/user/shop/status", h.status)
	e.GET("/admin/shop/status", h.status)

	g := e.Group("/admin/shop")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))
	g.PUT("/:status", h.setStatus)
}

func (h *ShopHandler) status(c echo.Context) error {
	s, err := h.uc.Status(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ShopStatusResponse{Status: int(s)})
}

func (h *ShopHandler) setStatus(c echo.Context) error {
	n, ok := parseStatusParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	if err := h.uc.SetStatus(c.Request().Context(), model.BinaryStatus(n)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "shop status updated"})
}
