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
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/logging"
	"github.com/localnerve/portfolio-leads/internal/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.QueueEnabled() {
		log.Fatalf("REDIS_ADDR is required for the notification worker")
	}

	zlog, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !cfg.MailEnabled() {
		zlog.Warn("SMTP is not configured; notifications will only be logged")
	}

	server := asynq.NewServer(notify.RedisOpt(cfg), asynq.Config{
		Concurrency: 2,
		Logger:      zlog.Named("asynq").Sugar(),
	})
	processor := notify.NewProcessor(notify.NewMailNotifierFromConfig(cfg, zlog), zlog)
	mux := processor.Handler()

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()

	zlog.Info("Notification worker started", zap.String("redis", cfg.RedisAddr))
	if err := server.Run(mux); err != nil {
		zlog.Error("worker stopped", zap.Error(err))
		os.Exit(1)
	}
}
