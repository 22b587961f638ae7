// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify delivers out-of-band messages such as confirmation codes.

Two senders exist:

  - [LogSender] writes the message to the structured log (development).
  - [SMTPSender] relays the message through an SMTP server (production).

The backend is chosen by MAIL_BACKEND via [New].
*/
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/al3eon/api-yamdb/internal/platform/config"
)

// Message is a single plain-text notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message]. An error means the recipient did not get it.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// New returns the sender selected by cfg.MailBackend.
func New(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	switch cfg.MailBackend {
	case config.MailBackendLog:
		return NewLogSender(logger), nil
	case config.MailBackendSMTP:
		return NewSMTPSender(SMTPOptions{
			Addr:     cfg.SMTPAddr,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	default:
		return nil, fmt.Errorf("notify: unknown mail backend %q", cfg.MailBackend)
	}
}

// # Log Backend

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a [LogSender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements [Sender].
func (sender *LogSender) Send(ctx context.Context, message Message) error {
	sender.logger.InfoContext(ctx, "mail_sent",
		slog.String("backend", config.MailBackendLog),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
