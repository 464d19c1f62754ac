package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"app/internal/config"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func issueToken(t *testing.T, secret string, sub interface{}, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runWithAuth(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, int64) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	handler := mw(func(c echo.Context) error {
		gotUserID, _ = c.Get(CtxUserIDKey).(int64)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, gotUserID
}

func TestAuthJWT(t *testing.T) {
	cfg := testConfig()
	mw := AuthJWT(cfg)

	//正しいトークン
	rec, userID := runWithAuth(mw, "Bearer "+issueToken(t, cfg.JWTSecret, 42, time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)

	//ヘッダなし
	rec, _ = runWithAuth(mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//Bearer形式でない
	rec, _ = runWithAuth(mw, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//署名が違う
	rec, _ = runWithAuth(mw, "Bearer "+issueToken(t, "other-secret", 42, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//期限切れ
	rec, _ = runWithAuth(mw, "Bearer "+issueToken(t, cfg.JWTSecret, 42, -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//subが不正
	rec, _ = runWithAuth(mw, "Bearer "+issueToken(t, cfg.JWTSecret, "not-a-number", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthJWT(t *testing.T) {
	cfg := testConfig()
	mw := OptionalAuthJWT(cfg)

	//トークンなしは匿名で通る
	rec, userID := runWithAuth(mw, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), userID)

	//正しいトークンならuser_idが載る
	rec, userID = runWithAuth(mw, "Bearer "+issueToken(t, cfg.JWTSecret, 42, time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)

	//不正なトークンを出してきたら弾く
	rec, _ = runWithAuth(mw, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionID(t *testing.T) {
	e := echo.New()
	mw := SessionID()

	run := func(header string, query string) string {
		target := "/"
		if query != "" {
			target = "/?sessionId=" + query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if header != "" {
			req.Header.Set("X-Session-ID", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var got string
		handler := mw(func(c echo.Context) error {
			got, _ = c.Get(CtxSessionIDKey).(string)
			return c.NoContent(http.StatusOK)
		})
		_ = handler(c)
		return got
	}

	assert.Equal(t, "sess-h", run("sess-h", ""))
	assert.Equal(t, "sess-q", run("", "sess-q"))
	//ヘッダ優先
	assert.Equal(t, "sess-h", run("sess-h", "sess-q"))
	//無ければ新規発行される
	assert.NotEmpty(t, run("", ""))
}
