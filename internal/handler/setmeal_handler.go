package handler

import (
	"net/http"
	"strconv"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	repo "takeout/internal/repository"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// セットメニューのHTTP。
type SetmealHandler struct {
	uc *usecase.SetmealUsecase
}

// DI
func NewSetmealHandler(uc *usecase.SetmealUsecase) *SetmealHandler {
	return &SetmealHandler{uc: uc}
}

type SetmealDishRequest struct {
	DishID int64 `json:"dish_id"`
	Copies int   `json:"copies"`
}

type SetmealRequest struct {
	Name        string               `json:"name"`
	CategoryID  int64                `json:"category_id"`
	Price       decimal.Decimal      `json:"price"`
	Image       string               `json:"image"`
	Description string               `json:"description"`
	Dishes      []SetmealDishRequest `json:"dishes"`
}

func (r SetmealRequest) toInput() usecase.SetmealInput {
	dishes := make([]usecase.SetmealDishInput, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		dishes = append(dishes, usecase.SetmealDishInput{DishID: d.DishID, Copies: d.Copies})
	}
	return usecase.SetmealInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Dishes:      dishes,
	}
}

func (h *SetmealHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/user/setmeal/list", h.listForMenu)

	g := e.Group("/admin/setmeal")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleEmployee, usecase.RoleAdmin))

	g.GET("/page", h.page)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("", h.remove)
	g.PUT("/:id/status/:status", h.changeStatus)
}

func (h *SetmealHandler) listForMenu(c echo.Context) error {
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

func (h *SetmealHandler) page(c echo.Context) error {
	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	f := repo.SetmealListFilter{
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

func (h *SetmealHandler) detail(c echo.Context) error {
	setmealID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), setmealID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SetmealHandler) create(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SetmealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), operatorID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *SetmealHandler) update(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	setmealID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SetmealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), operatorID, setmealID, req.toInput()); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "setmeal updated"})
}

func (h *SetmealHandler) remove(c echo.Context) error {
	ids, ok := parseIDsQuery(c.QueryParam("ids"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ids"})
	}

	if err := h.uc.Delete(c.Request().Context(), ids); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "setmeals deleted"})
}

func (h *SetmealHandler) changeStatus(c echo.Context) error {
	operatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	setmealID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	n, ok := parseStatusParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	msg, err := h.uc.ChangeStatus(c.Request().Context(), operatorID, setmealID, model.BinaryStatus(n))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}
