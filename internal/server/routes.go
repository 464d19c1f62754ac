package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/config"
	"app/internal/handler"
)

// 全ハンドラーの束。main側でDIして渡す。
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	User          *handler.UserHandler
	GiftCard      *handler.GiftCardHandler
	Currency      *handler.CurrencyHandler
	PaymentMethod *handler.PaymentMethodHandler
	Blog          *handler.BlogHandler
	Appointment   *handler.AppointmentHandler
	StoreInfo     *handler.StoreInfoHandler
}

// /api配下に全ルートを登録する
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	h.Auth.RegisterRoutes(api, cfg)
	h.Product.RegisterRoutes(api)
	h.Cart.RegisterRoutes(api, cfg)
	h.Order.RegisterRoutes(api, cfg)
	h.User.RegisterRoutes(api, cfg)
	h.GiftCard.RegisterRoutes(api)
	h.Currency.RegisterRoutes(api)
	h.PaymentMethod.RegisterRoutes(api)
	h.Blog.RegisterRoutes(api)
	h.Appointment.RegisterRoutes(api)
	h.StoreInfo.RegisterRoutes(api)
}
