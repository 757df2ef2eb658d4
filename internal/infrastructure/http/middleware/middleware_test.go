package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/smart-insights/pkg/config"
)

func newServer(t *testing.T, cfg config.ServerConfig) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)

	e := echo.New()
	Register(e, &cfg, zap.New(core))
	e.POST("/echo", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	return e, logs
}

func TestRegister_RequestIDAndAccessLog(t *testing.T) {
	e, logs := newServer(t, config.ServerConfig{AllowedOrigins: []string{"*"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, id, 36)

	entries := logs.FilterMessage("http.request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestRegister_BodyLimit(t *testing.T) {
	e, _ := newServer(t, config.ServerConfig{AllowedOrigins: []string{"*"}, BodyLimit: "1K"})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 4096))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRegister_RecoversPanics(t *testing.T) {
	e, _ := newServer(t, config.ServerConfig{AllowedOrigins: []string{"*"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegister_CORS(t *testing.T) {
	e, _ := newServer(t, config.ServerConfig{AllowedOrigins: []string{"https://dash.example.com"}})

	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(echo.HeaderOrigin, "https://dash.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "https://dash.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
