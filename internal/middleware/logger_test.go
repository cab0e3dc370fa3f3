package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantCode  int
		wantLevel string
	}{
		{"ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, http.StatusOK, "info"},
		{"client error", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) }, http.StatusNotFound, "warn"},
		{"returned error", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway) }, http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/users/transactions", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

			require.NoError(t, RequestLogger()(tt.handler)(c))
			assert.Equal(t, tt.wantCode, rec.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/users/transactions", entry["path"])
			assert.Equal(t, float64(tt.wantCode), entry["status"])
			assert.Equal(t, "req-1", entry["request_id"])
		})
	}
}
