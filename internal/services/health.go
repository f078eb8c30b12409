// health.go
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

package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/utils"
)

// Dependency states reported by HealthCheck
const (
	StateOK          = "ok"
	StateDisabled    = "disabled"
	StateUnreachable = "unreachable"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Mail         string            `json:"mail"`
	Queue        string            `json:"queue"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(component, message string, err error) {
	r.Status = "unhealthy"
	r.Details[component+"_error"] = err.Error()
	msg := fmt.Sprintf("%s: %v", message, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage = strings.Join([]string{r.ErrorMessage, msg}, "; ")
	}
}

// HealthCheck probes the store and every configured dependency
func HealthCheck(ctx context.Context, cfg *config.Config, store repository.Store, logger *zap.Logger) HealthCheckResult {
	logger = logger.Named("health")
	result := HealthCheckResult{
		Status:     "healthy",
		Authorizer: StateDisabled,
		Mail:       StateDisabled,
		Queue:      StateDisabled,
		Details:    make(map[string]string),
	}

	// Check database connectivity
	if err := store.Ping(ctx); err != nil {
		result.Database = StateUnreachable
		result.fail("database", "Database ping failed", err)
		logger.Warn("Health check failed - database ping", zap.Error(err))
	} else {
		result.Database = StateOK
		result.Details["database_type"] = store.Name()
	}

	if cfg.AuthEnabled {
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			result.Authorizer = StateUnreachable
			result.fail("authorizer", "Authorizer ping failed", err)
			logger.Warn("Health check failed - authorizer ping", zap.Error(err))
		} else {
			result.Authorizer = StateOK
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	}

	if cfg.MailEnabled() {
		if err := utils.PingSMTP(cfg.SMTPHost, cfg.SMTPPort); err != nil {
			result.Mail = StateUnreachable
			result.fail("mail", "SMTP ping failed", err)
			logger.Warn("Health check failed - smtp ping", zap.Error(err))
		} else {
			result.Mail = StateOK
		}
	}

	if cfg.QueueEnabled() {
		if err := utils.PingRedis(cfg.RedisAddr); err != nil {
			result.Queue = StateUnreachable
			result.fail("queue", "Redis ping failed", err)
			logger.Warn("Health check failed - redis ping", zap.Error(err))
		} else {
			result.Queue = StateOK
		}
	}

	if result.Status == "healthy" {
		logger.Debug("Health check passed - all systems operational")
	}

	return result
}
