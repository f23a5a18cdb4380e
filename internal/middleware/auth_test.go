package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func callRequireAuth(t *testing.T, m *Auth, authorization string) (uuid.UUID, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uuid.UUID
	err := m.RequireAuth(func(c echo.Context) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		seen = id
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m := NewAuth(testSecret)
	userID := uuid.New()
	token, err := tokens.NewAccessToken(testSecret, userID, time.Now())
	require.NoError(t, err)

	seen, err := callRequireAuth(t, m, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, userID, seen)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := NewAuth(testSecret)

	_, err := callRequireAuth(t, m, "")
	requireAppErr(t, err, apperr.CodeForbidden, http.StatusForbidden)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m := NewAuth(testSecret)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		_, err := callRequireAuth(t, m, header)
		requireAppErr(t, err, apperr.CodeForbidden, http.StatusForbidden)
	}
}

func TestRequireAuth_MissingSecret(t *testing.T) {
	m := NewAuth(nil)

	_, err := callRequireAuth(t, m, "Bearer whatever")
	requireAppErr(t, err, apperr.CodeConfig, http.StatusInternalServerError)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	m := NewAuth(testSecret)
	token, err := tokens.NewAccessToken(testSecret, uuid.New(), time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = callRequireAuth(t, m, "Bearer "+token)
	appErr := requireAppErr(t, err, apperr.CodeUnauthorized, http.StatusUnauthorized)
	assert.Equal(t, "Access token has expired", appErr.Message)
}

func TestRequireAuth_BadSignature(t *testing.T) {
	m := NewAuth(testSecret)
	token, err := tokens.NewAccessToken([]byte("some-other-secret"), uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = callRequireAuth(t, m, "Bearer "+token)
	appErr := requireAppErr(t, err, apperr.CodeUnauthorized, http.StatusUnauthorized)
	assert.Equal(t, "Unauthorized", appErr.Message)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	m := NewAuth(testSecret)

	_, err := callRequireAuth(t, m, "Bearer not.a.jwt")
	requireAppErr(t, err, apperr.CodeUnauthorized, http.StatusUnauthorized)
}

func requireAppErr(t *testing.T, err error, code string, status int) *apperr.Error {
	t.Helper()

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.Status)
	return appErr
}
