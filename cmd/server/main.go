package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bookgetter/bookstore/internal/config"
	"github.com/bookgetter/bookstore/internal/events"
	"github.com/bookgetter/bookstore/internal/handlers"
	"github.com/bookgetter/bookstore/internal/logging"
	"github.com/bookgetter/bookstore/internal/repository"
	"github.com/bookgetter/bookstore/internal/store"
	httpserver "github.com/bookgetter/bookstore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	backend, err := store.NewFileBackend(configuration.DATA_DIR)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	books := repository.NewBookRepository(backend)
	users := repository.NewUserRepository(backend)
	carts := repository.NewCartRepository(backend, books)
	orders := repository.NewOrderRepository(backend, books)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		JWTSecret:     jwtSecret,
		AuthHandler:   &handlers.AuthHandler{Users: users, JWTSecret: jwtSecret, Producer: producer},
		BookHandler:   &handlers.BookHandler{Books: books, Producer: producer},
		CartHandler:   &handlers.CartHandler{Carts: carts, Books: books, Producer: producer},
		OrderHandler:  &handlers.OrderHandler{Orders: orders, Carts: carts, Producer: producer},
		UserHandler:   &handlers.UserHandler{Users: users},
		AdminHandler:  &handlers.AdminHandler{Books: books, Users: users, Orders: orders},
		UploadHandler: &handlers.UploadHandler{Dir: configuration.UPLOAD_DIR},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", configuration.HTTP_ADDR, "data_dir", configuration.DATA_DIR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
