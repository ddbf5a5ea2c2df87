package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmarkhas/shop_backend/internal/config"
	"github.com/dmarkhas/shop_backend/internal/httpserver"
	"github.com/dmarkhas/shop_backend/internal/imagestore"
	"github.com/dmarkhas/shop_backend/internal/logging"
	authmw "github.com/dmarkhas/shop_backend/internal/middleware/auth"
	"github.com/dmarkhas/shop_backend/internal/mykafka"
	"github.com/dmarkhas/shop_backend/internal/repo"
	"github.com/dmarkhas/shop_backend/internal/service"
	"github.com/dmarkhas/shop_backend/internal/service/token"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KafkaAddress != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KafkaAddress, ","))
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	images, err := imagestore.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("image store init error: %v", err)
	}

	store := repo.New(db)
	tokens := &token.Service{Secret: cfg.JWTSecret}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: store, Tokens: tokens}, Events: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: store, Images: images}, Events: producer},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: store}, Events: producer},
		ProfileHandler: &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: store, Images: images}, Events: producer},
		Auth:           &authmw.Middleware{Tokens: tokens},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server_starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
