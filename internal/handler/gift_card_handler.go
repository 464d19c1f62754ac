package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /gift-cardsのHTTP。購入も照会も認証不要（贈り主がゲストのこともある）。
type GiftCardHandler struct {
	uc *usecase.GiftCardUsecase
}

// DI
func NewGiftCardHandler(uc *usecase.GiftCardUsecase) *GiftCardHandler {
	return &GiftCardHandler{uc: uc}
}

// /gift-cards配下を登録
func (h *GiftCardHandler) RegisterRoutes(g *echo.Group) {
	gg := g.Group("/gift-cards")
	gg.POST("", h.purchase)
	gg.GET("/:code", h.lookup)
}

func (h *GiftCardHandler) purchase(c echo.Context) error {
	var req usecase.PurchaseGiftCardInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Purchase(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *GiftCardHandler) lookup(c echo.Context) error {
	out, err := h.uc.Lookup(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
