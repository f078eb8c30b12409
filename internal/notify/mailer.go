// mailer.go
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

package notify

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:embed templates/contact.html
var contactTemplateSource string

var contactTemplate = template.Must(template.New("contact").Parse(contactTemplateSource))

// Sender sends one HTML message and returns its Message-ID.
type Sender interface {
	SendMail(ctx context.Context, from, to, subject, html string) (string, error)
}

// MailerConfig holds SMTP connection settings
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer is an SMTP Sender backed by go-mail.
type Mailer struct {
	cfg MailerConfig
}

// NewMailer creates a Mailer
func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

// SendMail delivers an HTML message. to may hold several comma-separated addresses.
func (m *Mailer) SendMail(ctx context.Context, from, to, subject, html string) (string, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return "", fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(splitAddresses(to)...); err != nil {
		return "", fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := mail.NewClient(m.cfg.Host, m.options()...)
	if err != nil {
		return "", fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send mail: %w", err)
	}

	var messageID string
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}

func splitAddresses(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// MailNotifier renders the contact email and hands it to a Sender.
type MailNotifier struct {
	sender Sender
	from   string
	to     string
	logger *zap.Logger
}

// NewMailNotifier creates a MailNotifier
func NewMailNotifier(sender Sender, from, to string, logger *zap.Logger) *MailNotifier {
	return &MailNotifier{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger.Named("notify"),
	}
}

// Subject returns the subject line for n
func Subject(n ContactNotification) string {
	return fmt.Sprintf("New contact form submission from %s", n.Name)
}

// RenderContact renders the HTML body for n
func RenderContact(n ContactNotification) (string, error) {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, n); err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return buf.String(), nil
}

// Notify renders and sends the contact email
func (m *MailNotifier) Notify(ctx context.Context, n ContactNotification) error {
	html, err := RenderContact(n)
	if err != nil {
		return err
	}
	messageID, err := m.sender.SendMail(ctx, m.from, m.to, Subject(n), html)
	if err != nil {
		return err
	}
	m.logger.Info("Contact notification sent",
		zap.String("submission_id", n.SubmissionID),
		zap.String("message_id", messageID))
	return nil
}
