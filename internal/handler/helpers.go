package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/apperr"
	"app/internal/domain/model"
	"app/internal/middleware"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをHTTPステータスへ変換する。
// 種別が分からないものは詳細を漏らさず500。
func writeError(c echo.Context, err error) error {
	if e, ok := apperr.As(err); ok {
		switch e.Kind {
		case apperr.KindValidation:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: e.Message})
		case apperr.KindNotFound:
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: e.Message})
		case apperr.KindAuth:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: e.Message})
		case apperr.KindDependency:
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: e.Message})
		}
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func getSessionIDFromContext(c echo.Context) string {
	v := c.Get(middleware.CtxSessionIDKey)
	sid, _ := v.(string)
	return sid
}

// リクエストからカート所有者を決める。ログイン優先、無ければ匿名セッション。
func cartOwnerFromContext(c echo.Context) (model.CartOwner, bool) {
	if userID, ok := getUserIDFromContext(c); ok {
		return model.UserOwner(userID), true
	}
	if sid := getSessionIDFromContext(c); sid != "" {
		return model.SessionOwner(sid), true
	}
	return model.CartOwner{}, false
}
