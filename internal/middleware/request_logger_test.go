package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedEcho(t *testing.T) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/bad", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad"})
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})
	return e, logs
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e, logs := newLoggedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	e, _ := newLoggedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLogger_Levels(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{path: "/bad", status: http.StatusBadRequest, level: zapcore.WarnLevel},
		{path: "/boom", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
		{path: "/missing", status: http.StatusNotFound, level: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, logs := newLoggedEcho(t)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
		})
	}
}
