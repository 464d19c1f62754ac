package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
)

// /cartのHTTP。ゲスト（X-Session-ID）でもログインでも使える。
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type SyncCartRequest struct {
	Items []usecase.SyncCartLine `json:"items"`
}

// /cart配下を登録
func (h *CartHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	cg := g.Group("/cart")
	cg.Use(middleware.OptionalAuthJWT(cfg))
	cg.Use(middleware.SessionID())

	cg.GET("", h.get)
	cg.POST("", h.addItem)
	cg.PUT("/:itemId", h.updateItem)
	cg.DELETE("/:itemId", h.removeItem)
	cg.POST("/sync", h.sync)
}

func (h *CartHandler) get(c echo.Context) error {
	owner, ok := cartOwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session id or login required"})
	}

	out, err := h.uc.Get(c.Request().Context(), owner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	owner, ok := cartOwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session id or login required"})
	}

	var req usecase.AddCartItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	owner, ok := cartOwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session id or login required"})
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), owner, itemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	owner, ok := cartOwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session id or login required"})
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), owner, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ログイン直後にゲストカートをマージする
func (h *CartHandler) sync(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SyncCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Sync(c.Request().Context(), userID, getSessionIDFromContext(c), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
