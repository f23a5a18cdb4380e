package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/arfandy/journal-backend/internal/middleware"
)

type Deps struct {
	Auth         *AuthHTTP
	User         *UserHTTP
	Category     *CategoryHTTP
	Tag          *TagHTTP
	Journal      *JournalHTTP
	Notification *NotificationHTTP
	AuthMW       *mw.Auth
	CacheMW      *mw.Cache
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/refresh_token", d.Auth.Refresh)
	api.POST("/notification/send-notification", d.Notification.Send)

	private := api.Group("", d.AuthMW.RequireAuth)

	private.POST("/auth/logout", d.Auth.Logout)

	private.GET("/user", d.User.Get)
	private.PATCH("/user", d.User.Update)
	private.DELETE("/user", d.User.Delete)
	private.PATCH("/user/fcm-token", d.User.StoreFcmToken)

	cached := func(h echo.HandlerFunc) echo.HandlerFunc {
		if d.CacheMW == nil {
			return h
		}
		return d.CacheMW.Response(h)
	}

	private.GET("/categories", cached(d.Category.List))
	private.POST("/categories", d.Category.Create)
	private.PUT("/categories/:id", d.Category.Update)
	private.DELETE("/categories/:id", d.Category.Delete)

	private.GET("/tags", cached(d.Tag.List))
	private.POST("/tags", d.Tag.Create)
	private.PUT("/tags/:id", d.Tag.Update)
	private.DELETE("/tags/:id", d.Tag.Delete)

	private.GET("/journals", d.Journal.List)
	private.POST("/journals", d.Journal.Create)
	private.PUT("/journals/:id", d.Journal.Update)
	private.DELETE("/journals/:id", d.Journal.Delete)
	private.POST("/journals/bulk-delete", d.Journal.BulkDelete)
}
