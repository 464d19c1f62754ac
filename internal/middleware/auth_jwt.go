package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"app/internal/config"
)

const (
	CtxUserIDKey    = "user_id"    // int64（未ログインなら0）
	CtxSessionIDKey = "session_id" // string（匿名カート用）
)

// bearerAuth用のJWT検証ミドルウェア。トークンが無い・不正なら401。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := userIDFromRequest(c, cfg.JWTSecret)
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

// トークンがあれば検証してuser_idを載せ、無ければ匿名のまま通す。
// カートやチェックアウトはゲストでも使えるため。
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "" {
				userID, err := userIDFromRequest(c, cfg.JWTSecret)
				if err != nil || userID <= 0 {
					//トークンを出してきたのに不正なら弾く
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
				c.Set(CtxUserIDKey, userID)
			}
			return next(c)
		}
	}
}

// 匿名セッションIDをcontextへ載せる（X-Session-IDヘッダ優先、無ければsessionIdクエリ）。
// どちらも無ければ新規発行してレスポンスヘッダで返す。
func SessionID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := c.Request().Header.Get("X-Session-ID")
			if sid == "" {
				sid = c.QueryParam("sessionId")
			}
			if sid == "" {
				sid = uuid.NewString()
				c.Response().Header().Set("X-Session-ID", sid)
			}
			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

func userIDFromRequest(c echo.Context, secret string) (int64, error) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return 0, errors.New("missing authorization header")
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, errors.New("invalid authorization header")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return 0, errors.New("empty token")
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	return parseUserID(claims["sub"])
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// subをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}
