// notify.go
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

// Package notify delivers the "new contact" notification that accompanies a
// submission. Delivery is best-effort: callers log failures and move on.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/models"
)

// ContactNotification is the payload sent for each inbound contact request.
type ContactNotification struct {
	SubmissionID  string                 `json:"submissionId"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Message       string                 `json:"message"`
	PreferredTime string                 `json:"preferredTime"`
	Metadata      models.CaptureMetadata `json:"metadata"`
	ReceivedAt    time.Time              `json:"receivedAt"`
}

// Notifier delivers a contact notification.
type Notifier interface {
	Notify(ctx context.Context, n ContactNotification) error
}

// LogNotifier only records the notification. It is used when neither a
// queue nor SMTP is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs the notification
func (l *LogNotifier) Notify(_ context.Context, n ContactNotification) error {
	l.logger.Info("Contact notification (delivery disabled)",
		zap.String("submission_id", n.SubmissionID),
		zap.String("name", n.Name),
		zap.String("email", n.Email))
	return nil
}

// NewMailNotifierFromConfig returns SMTP delivery when configured, else a LogNotifier
func NewMailNotifierFromConfig(cfg *config.Config, logger *zap.Logger) Notifier {
	if !cfg.MailEnabled() {
		return NewLogNotifier(logger)
	}
	mailer := NewMailer(MailerConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
	})
	return NewMailNotifier(mailer, cfg.MailFrom, cfg.MailTo, logger)
}
