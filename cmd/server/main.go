package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/config"
	"github.com/arfandy/journal-backend/internal/events"
	"github.com/arfandy/journal-backend/internal/httpserver"
	"github.com/arfandy/journal-backend/internal/logging"
	mw "github.com/arfandy/journal-backend/internal/middleware"
	"github.com/arfandy/journal-backend/internal/notify"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/validate"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, logging.DefaultRedactedKeys)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	validator := validate.New()
	secret := []byte(cfg.JWTAccessSecret)

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress)
		defer producer.Close()
	}

	authSvc := &service.AuthService{Repo: gormRepo, Validate: validator, AccessSecret: secret}
	userSvc := &service.UserService{Repo: gormRepo, Auth: authSvc, Validate: validator}
	categorySvc := &service.CategoryService{Repo: gormRepo, Validate: validator}
	tagSvc := &service.TagService{Repo: gormRepo, Validate: validator}
	journalSvc := &service.JournalService{Repo: gormRepo, Validate: validator}
	notificationSvc := &service.NotificationService{
		Sender:   notify.NewSender(cfg.PushURL, cfg.PushServerKey),
		Validate: validator,
	}

	var cacheMW *mw.Cache
	if client := config.InitRedis(cfg); client != nil {
		cacheMW = mw.NewCache(client, time.Hour)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.HTTPErrorHandler = httpserver.ErrorHandler(logger)
	e.Use(mw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:         &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		User:         &httpserver.UserHTTP{Svc: userSvc},
		Category:     &httpserver.CategoryHTTP{Svc: categorySvc},
		Tag:          &httpserver.TagHTTP{Svc: tagSvc},
		Journal:      &httpserver.JournalHTTP{Svc: journalSvc, Producer: producer},
		Notification: &httpserver.NotificationHTTP{Svc: notificationSvc},
		AuthMW:       mw.NewAuth(secret),
		CacheMW:      cacheMW,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
