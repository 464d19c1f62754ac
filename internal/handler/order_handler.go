package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"
)

// /ordersのHTTP。作成はゲスト可、履歴と返品はログイン必須。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type PlaceOrderRequest struct {
	GuestEmail      string                   `json:"guest_email"`
	Items           []usecase.OrderLineInput `json:"items"`
	ShippingAddress model.ShippingAddress    `json:"shipping_address"`
	PaymentMethod   string                   `json:"payment_method"`
	Currency        string                   `json:"currency"`
}

type ReturnRequest struct {
	Reason string `json:"reason"`
}

// /orders配下を登録
func (h *OrderHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	og := g.Group("/orders")

	og.POST("", h.place, middleware.OptionalAuthJWT(cfg))
	og.GET("/:orderNumber", h.getByNumber, middleware.OptionalAuthJWT(cfg))

	og.GET("", h.listMine, middleware.AuthJWT(cfg))
	og.POST("/:orderId/return", h.requestReturn, middleware.AuthJWT(cfg))
}

func (h *OrderHandler) place(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, _ := getUserIDFromContext(c)
	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		UserID:          userID,
		GuestEmail:      req.GuestEmail,
		Lines:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Currency:        req.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ゲストは ?email= で本人確認する
func (h *OrderHandler) getByNumber(c echo.Context) error {
	userID, _ := getUserIDFromContext(c)

	out, err := h.uc.GetByNumber(c.Request().Context(), c.Param("orderNumber"), userID, c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) requestReturn(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
	}

	var req ReturnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.RequestReturn(c.Request().Context(), userID, orderID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "return requested"})
}
