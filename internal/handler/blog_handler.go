package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	repo "app/internal/repository"
	"app/internal/usecase"
)

// /blogのHTTP。閲覧のみ、認証不要。
type BlogHandler struct {
	uc *usecase.BlogUsecase
}

// DI
func NewBlogHandler(uc *usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

// /blog配下を登録
func (h *BlogHandler) RegisterRoutes(g *echo.Group) {
	bg := g.Group("/blog")
	bg.GET("", h.list)
	bg.GET("/:slug", h.getBySlug)
}

func (h *BlogHandler) list(c echo.Context) error {
	q := repo.BlogListQuery{
		Category: c.QueryParam("category"),
		Tag:      c.QueryParam("tag"),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) getBySlug(c echo.Context) error {
	out, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
