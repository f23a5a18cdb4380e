package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_NilClientPassesThrough(t *testing.T) {
	m := NewCache(nil, time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextUserID, uuid.New())

	called := false
	err := m.Response(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCache_SkipsNonGET(t *testing.T) {
	var nilCache *Cache

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/tags", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := nilCache.Response(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCaptureWriter_RecordsStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte(`{"status":"error"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.status)
	assert.Equal(t, `{"status":"error"}`, w.body.String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `{"status":"error"}`, rec.Body.String())
}

func TestDefaultTTL(t *testing.T) {
	m := NewCache(nil, 0)
	assert.Equal(t, time.Hour, m.TTL)
}
