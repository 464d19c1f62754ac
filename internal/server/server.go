package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"app/internal/config"
	"app/internal/logging"
)

// New はechoを組み立てる。ルーティングはroutes.go側。
func New(cfg config.Config, log *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  []string{cfg.ClientURL},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Session-ID"},
		ExposeHeaders: []string{"X-Session-ID"},
	}))

	RegisterRoutes(e, cfg, h)
	return e
}

// Start はHTTPサーバーを起動する。
func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
