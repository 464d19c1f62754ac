package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	repo "app/internal/repository"
	"app/internal/usecase"
)

// /productsのHTTP
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// /products配下を登録。認証不要（公開カタログ）。
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	pg := g.Group("/products")
	pg.GET("", h.list)
	pg.GET("/featured/list", h.featured)
	pg.GET("/filters/options", h.filterOptions)
	pg.GET("/:slug", h.getBySlug)
}

func (h *ProductHandler) list(c echo.Context) error {
	q := repo.ProductListQuery{
		Search:      c.QueryParam("search"),
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		MetalType:   c.QueryParam("metalType"),
		MetalColor:  c.QueryParam("metalColor"),
		StoneType:   c.QueryParam("stoneType"),
		Gender:      c.QueryParam("gender"),
		Sort:        c.QueryParam("sort"),
		Featured:    c.QueryParam("featured") == "true",
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if v := c.QueryParam("karat"); v != "" {
		if karat, err := strconv.Atoi(v); err == nil {
			q.Karat = &karat
		}
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &min
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &max
		}
	}

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) getBySlug(c echo.Context) error {
	out, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) featured(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.Featured(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) filterOptions(c echo.Context) error {
	out, err := h.uc.FilterOptions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
