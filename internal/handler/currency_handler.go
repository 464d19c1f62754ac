package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /currencyのHTTP
type CurrencyHandler struct {
	uc *usecase.CurrencyUsecase
}

// DI
func NewCurrencyHandler(uc *usecase.CurrencyUsecase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

// /currency配下を登録
func (h *CurrencyHandler) RegisterRoutes(g *echo.Group) {
	cg := g.Group("/currency")
	cg.GET("/rates", h.rates)
	cg.POST("/convert", h.convert)
}

func (h *CurrencyHandler) rates(c echo.Context) error {
	out, err := h.uc.Rates(c.Request().Context(), c.QueryParam("base"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CurrencyHandler) convert(c echo.Context) error {
	var req usecase.ConvertInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Convert(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
