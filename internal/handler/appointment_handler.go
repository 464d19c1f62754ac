package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /appointmentsのHTTP。来店予約はゲストでも申し込める。
type AppointmentHandler struct {
	uc *usecase.AppointmentUsecase
}

// DI
func NewAppointmentHandler(uc *usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// /appointments配下を登録
func (h *AppointmentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/appointments", h.request)
}

func (h *AppointmentHandler) request(c echo.Context) error {
	var req usecase.RequestAppointmentInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Request(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
