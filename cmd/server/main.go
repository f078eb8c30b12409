// main.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/database"
	"github.com/localnerve/portfolio-leads/internal/handlers"
	"github.com/localnerve/portfolio-leads/internal/logging"
	"github.com/localnerve/portfolio-leads/internal/middleware"
	"github.com/localnerve/portfolio-leads/internal/notify"
	"github.com/localnerve/portfolio-leads/internal/services"
	"github.com/localnerve/portfolio-leads/internal/utils"

	_ "github.com/localnerve/portfolio-leads/docs/api" // Swagger docs
)

// @title Portfolio Leads API
// @version 1.0.0
// @description Lead lifecycle and referential-integrity service for the portfolio admin console
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/portfolio-leads
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to the store and prepare its schema
	store, err := database.OpenStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	// Notification delivery: queue when Redis is configured, else SMTP or log
	var notifier notify.Notifier
	if cfg.QueueEnabled() {
		client := asynq.NewClient(notify.RedisOpt(cfg))
		defer client.Close()
		notifier = notify.NewQueueNotifier(client)
		zlog.Info("Contact notifications go through the task queue", zap.String("redis", cfg.RedisAddr))
	} else {
		notifier = notify.NewMailNotifierFromConfig(cfg, zlog)
	}

	submissions := services.NewSubmissionService(store, notifier, cfg.NotifyTimeout, zlog)
	svc := handlers.Services{
		Categories:  services.NewCategoryService(store, zlog),
		Clients:     services.NewClientService(store, zlog),
		Submissions: submissions,
		Projects:    services.NewProjectService(store, zlog),
		Ledger:      services.NewLedgerService(store, zlog),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(zlog),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("portfolio_leads")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: cfg, Store: store, Logger: zlog}
	app.Get("/health", health.Health)

	// API routes under /api
	if !cfg.AuthEnabled {
		zlog.Warn("Admin authorization is disabled")
	}
	handlers.Register(app.Group("/api"), svc, middleware.AuthAdmin(cfg, zlog))

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zlog.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("Shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("Starting server", zap.String("port", cfg.Port), zap.String("store", store.Name()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("Failed to start server", zap.Error(err))
	}

	// Let detached notifications finish before the store and queue close
	submissions.Wait()
	zlog.Info("Server stopped")
}
