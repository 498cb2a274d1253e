package handler

import (
	"net/http"
	"strconv"
	"strings"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	repo "takeout/internal/repository"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 料理のHTTP。客側は販売中の一覧だけ。
type DishHandler struct {
	uc *usecase.DishUsecase
}

// DI
func NewDishHandler(uc *usecase.DishUsecase) *DishHandler {
	return &DishHandler{uc: uc}
}

type DishFlavorRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type DishRequest struct {
	Name        string              `json:"name"`
	CategoryID  int64               `json:"category_id"`
	Price       decimal.Decimal     `json:"price"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	Flavors     []DishFlavorRequest `json:"flavors"`
}

func (r DishRequest) toInput() usecase.DishInput {
	flavors := make([]usecase.DishFlavorInput, 0, len(r.Flavors))
	for _, f := range r.Flavors {
		flavors = append(flavors, usecase.DishFlavorInput{Name: f.Name, Value: f.Value})
	}
	return usecase.DishInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Flavors:     flavors,
	}
}

func (h *DishHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/user/dish/list", h.listForMenu)

	g := e.Group("/admin/dish")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))

	g.GET("/page", h.page)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("", h.remove)
	g.PUT("/:id/status/:status", h.changeStatus)
}

func (h *DishHandler) listForMenu(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.QueryParam("category_id"), 10, 64)
	if err != nil || categoryID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
	}

	out, err := h.uc.ListForMenu(c.Request().Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) page(c echo.Context) error {
	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	f := repo.DishListFilter{
		Page: page,
		Name: c.QueryParam("name"),
	}

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		f.CategoryID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		s := model.BinaryStatus(n)
		f.Status = &s
	}

	out, err := h.uc.Page(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) detail(c echo.Context) error {
	dishID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), dishID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) create(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), operatorID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *DishHandler) update(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	dishID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req DishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), operatorID, dishID, req.toInput()); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "dish updated"})
}

// idsクエリ（カンマ区切り）をまとめて消す
func (h *DishHandler) remove(c echo.Context) error {
	ids, ok := parseIDsQuery(c.QueryParam("ids"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ids"})
	}

	if err := h.uc.Delete(c.Request().Context(), ids); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "dishes deleted"})
}

func (h *DishHandler) changeStatus(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	dishID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	n, ok := parseStatusParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	msg, err := h.uc.ChangeStatus(c.Request().Context(), operatorID, dishID, model.BinaryStatus(n))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}

func parseIDsQuery(raw string) ([]int64, bool) {
	if raw == "" {
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
