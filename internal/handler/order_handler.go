package handler

import (
	"net/http"
	"strconv"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/middleware"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /user/orderのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type SubmitOrderRequest struct {
	AddressBookID   int64           `json:"address_book_id"`
	PayMethod       int             `json:"pay_method"`
	PackAmount      decimal.Decimal `json:"pack_amount"`
	TablewareNumber int             `json:"tableware_number"`
	TablewareStatus int             `json:"tableware_status"`
	DeliveryStatus  int             `json:"delivery_status"`
	Remark          string          `json:"remark"`
}

type PayOrderRequest struct {
	Number    string `json:"order_number"`
	PayMethod int    `json:"pay_method"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// /user/order を登録
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/user/order")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(usecase.RoleCustomer))

	g.POST("/submit", h.submit)
	g.PUT("/payment", h.pay)
	g.GET("/history", h.history)
	g.GET("/:id", h.detail)
	g.PUT("/cancel/:id", h.cancel)
	g.POST("/repeat/:id", h.repeat)
}

func (h *OrderHandler) submit(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SubmitOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Submit(c.Request().Context(), customerID, usecase.SubmitOrderInput{
		AddressBookID:   req.AddressBookID,
		PayMethod:       model.PayMethod(req.PayMethod),
		PackAmount:      req.PackAmount,
		TablewareNumber: req.TablewareNumber,
		TablewareStatus: req.TablewareStatus,
		DeliveryStatus:  req.DeliveryStatus,
		Remark:          req.Remark,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) pay(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PayOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Pay(c.Request().Context(), req.Number, model.PayMethod(req.PayMethod)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "payment accepted"})
}

func (h *OrderHandler) history(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page, ok := pageQueryFromRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}

	var status *model.OrderStatus
	if v := c.QueryParam("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		s := model.OrderStatus(n)
		status = &s
	}

	out, err := h.uc.History(c.Request().Context(), customerID, page, status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Cancel(c.Request().Context(), customerID, orderID, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order canceled"})
}

func (h *OrderHandler) repeat(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Repeat(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
