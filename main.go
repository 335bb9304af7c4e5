package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobiletoilet/internal/cache"
	intconfig "mobiletoilet/internal/config"
	intdb "mobiletoilet/internal/db"
	router "mobiletoilet/internal/http"
	h "mobiletoilet/internal/http/handlers"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/repositories"
	"mobiletoilet/internal/services"
	"mobiletoilet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log := utils.Logger()
	defer func() { _ = log.Sync() }()

	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB()

	rdb, err := intconfig.ConnectRedis(env)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	catalog, err := i18n.Load(env.DefaultLocale)
	if err != nil {
		log.Fatal("message catalog", zap.Error(err))
	}

	bookings := repositories.BookingRepository{DB: db}
	payments := repositories.PaymentRepository{DB: db}
	files := repositories.FilestoreRepository{DB: db}
	tenants := cache.TenantCache{Client: rdb, Source: repositories.TenantRepository{DB: db}}

	docs := services.DocsService{Tenants: tenants}
	pdf := services.NewFilestorePDFService(files, docs, catalog.For(env.DefaultLocale), env.FilestoreBaseURL)

	r := router.NewRouter(router.Deps{
		Bookings: h.BookingHandlers{
			Details: services.DetailsService{
				Bookings: bookings,
				Payments: payments,
				Timeline: repositories.WorkflowRepository{DB: db},
				Sessions: cache.SessionStore{Client: rdb},
			},
			Receipts:  services.NewReceiptService(bookings, payments, pdf, cache.Locker{Client: rdb}),
			Docs:      docs,
			Catalog:   catalog,
			PDFLocale: env.DefaultLocale,
		},
		Files: h.FileHandlers{Files: files},
		Checks: map[string]h.Checker{
			"database": db.PingContext,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"schema":   func(ctx context.Context) error { return intdb.RequireTables(ctx, db, intdb.Tables...) },
		},
		JWTSecret: []byte(env.JWTSecret),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
