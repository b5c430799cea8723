package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/config"
	"github.com/awsomeshop/awsomeshop/internal/server/db"
	"github.com/awsomeshop/awsomeshop/internal/server/events"
	"github.com/awsomeshop/awsomeshop/internal/server/httpserver"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if len(cfg.JWTSecret) == 0 {
		log.Error("startup_failed", "error", "JWT_SECRET is required")
		os.Exit(1)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL, cfg.SQLitePath)
	cancel()
	if err != nil {
		log.Error("db_open_failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}

	repos := repo.New(gdb)

	var publisher service.EventPublisher = service.NopPublisher{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, log)
		publisher = producer
		log.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	authSvc := &service.AuthService{
		Repos:           repos,
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		ExpirationHours: cfg.JWTExpirationHours,
	}
	userSvc := &service.UserService{Repos: repos, DB: gdb}
	productSvc := &service.ProductService{Repos: repos, DB: gdb}
	pointsSvc := &service.PointsService{Repos: repos, DB: gdb, Events: publisher}
	redemptionSvc := &service.RedemptionService{Repos: repos, DB: gdb, Events: publisher}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(gdb, repos, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error("admin_seed_failed", "error", err)
			os.Exit(1)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	httpserver.Register(e, &httpserver.Deps{
		Log:  log,
		Auth: &httpserver.Auth{Svc: authSvc},

		AuthHandler:       &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler:    &httpserver.ProductHTTP{Svc: productSvc},
		RedemptionHandler: &httpserver.RedemptionHTTP{Svc: redemptionSvc},
		PointsHandler:     &httpserver.PointsHTTP{Svc: pointsSvc},
		UserHandler:       &httpserver.UserHTTP{Svc: userSvc},

		AdminUserHandler:    &httpserver.AdminUserHTTP{Svc: userSvc},
		AdminProductHandler: &httpserver.AdminProductHTTP{Svc: productSvc},
		AdminPointsHandler:  &httpserver.AdminPointsHTTP{Svc: pointsSvc},
		AdminOrderHandler:   &httpserver.AdminOrderHTTP{Svc: redemptionSvc},
		AdminReportHandler:  &httpserver.AdminReportHTTP{Points: pointsSvc, RedemptionSvc: redemptionSvc},
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_start_failed", "error", err)
			os.Exit(1)
		}
	}()
	log.Info("server_started", "port", cfg.ServerPort)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("kafka_close_error", "error", err)
		}
	}
}

// seedAdmin creates the admin account on first boot; an existing account
// with the same email is left alone.
func seedAdmin(gdb *gorm.DB, repos *repo.Repos, email, password string) error {
	ctx := context.Background()

	exists, err := repos.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}

	return gdb.WithContext(ctx).Create(&models.User{
		FullName:          "Administrator",
		Email:             email,
		PasswordHash:      hash,
		Role:              "admin",
		IsFirstLogin:      false,
		IsActive:          true,
		PreferredLanguage: "zh",
	}).Error
}
