package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /payment-methodsのHTTP
type PaymentMethodHandler struct {
	uc *usecase.PaymentMethodUsecase
}

// DI
func NewPaymentMethodHandler(uc *usecase.PaymentMethodUsecase) *PaymentMethodHandler {
	return &PaymentMethodHandler{uc: uc}
}

// /payment-methodsを登録
func (h *PaymentMethodHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/payment-methods", h.list)
}

func (h *PaymentMethodHandler) list(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
