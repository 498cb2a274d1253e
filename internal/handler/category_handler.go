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

// カテゴリのHTTP。客側は一覧だけ見える。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryRequest struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	Sort int    `json:"sort"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/user/category/list", h.listForMenu)

	g := e.Group("/admin/category")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))

	g.GET("/page", h.page)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.PUT("/:id/status/:status", h.changeStatus)
}

// typeクエリを読む。空ならnil（全タイプ）。
func categoryTypeFromRequest(c echo.Context) (*model.CategoryType, bool) {
	v := c.QueryParam("type")
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, false
	}
	t := model.CategoryType(n)
	return &t, true
}

func (h *CategoryHandler) listForMenu(c echo.Context) error {
	categoryType, ok := categoryTypeFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid type"})
	}

	out, err := h.uc.ListByType(c.Request().Context(), categoryType)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) page(c echo.Context) error {
	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	categoryType, ok := categoryTypeFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid type"})
	}

	out, err := h.uc.Page(c.Request().Context(), page, c.QueryParam("name"), categoryType)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), operatorID, usecase.CategoryInput{
		Name: req.Name,
		Type: model.CategoryType(req.Type),
		Sort: req.Sort,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *CategoryHandler) update(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), operatorID, categoryID, usecase.CategoryInput{
		Name: req.Name,
		Type: model.CategoryType(req.Type),
		Sort: req.Sort,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "category updated"})
}

func (h *CategoryHandler) remove(c echo.Context) error {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), categoryID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "category deleted"})
}

func (h *CategoryHandler) changeStatus(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	n, ok := parseStatusParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	msg, err := h.uc.ChangeStatus(c.Request().Context(), operatorID, categoryID, model.BinaryStatus(n))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}
