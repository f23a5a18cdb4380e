package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arfandy/journal-backend/internal/logging"
)

const cacheKeyPrefix = "cache:"

// Cache is a best-effort response cache for authenticated GET endpoints,
// keyed by URL and user. Redis failures are swallowed; the request always
// proceeds.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{Client: client, TTL: ttl}
}

type captureWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (m *Cache) Response(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m == nil || m.Client == nil || c.Request().Method != http.MethodGet {
			return next(c)
		}
		userID, ok := c.Get(ContextUserID).(uuid.UUID)
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "cache")
		key := cacheKeyPrefix + c.Request().URL.RequestURI() + ":" + userID.String()

		if cached, err := m.Client.Get(ctx, key).Result(); err == nil {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		} else if err != redis.Nil {
			l.Warn("cache_get_failed", "error", err)
		}

		writer := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
		c.Response().Writer = writer

		if err := next(c); err != nil {
			return err
		}

		if writer.status == http.StatusOK && writer.body.Len() > 0 {
			if err := m.Client.Set(ctx, key, writer.body.String(), m.TTL).Err(); err != nil {
				l.Warn("cache_set_failed", "error", err)
			}
		}
		return nil
	}
}
