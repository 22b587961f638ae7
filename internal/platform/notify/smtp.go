// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPOptions configures an [SMTPSender].
type SMTPOptions struct {
	// Addr is host:port of the relay.
	Addr string
	// Username and Password enable PLAIN auth when Username is set.
	Username string
	Password string
	// From is the envelope and header sender.
	From string
}

// SMTPSender relays messages through an SMTP server.
type SMTPSender struct {
	options SMTPOptions
	auth    smtp.Auth
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender validates options and creates an [SMTPSender].
func NewSMTPSender(options SMTPOptions) (*SMTPSender, error) {
	host, _, err := net.SplitHostPort(options.Addr)
	if err != nil {
		return nil, fmt.Errorf("notify: invalid SMTP_ADDR %q: %w", options.Addr, err)
	}
	if options.From == "" {
		return nil, fmt.Errorf("notify: MAIL_FROM is required for the smtp backend")
	}

	sender := &SMTPSender{options: options, send: smtp.SendMail}
	if options.Username != "" {
		sender.auth = smtp.PlainAuth("", options.Username, options.Password, host)
	}

	return sender, nil
}

// Send implements [Sender].
//
// net/smtp has no context support; the call runs in a goroutine and Send
// returns ctx.Err() if the context ends first.
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	payload := buildMessage(sender.options.From, message, time.Now())

	done := make(chan error, 1)
	go func() {
		done <- sender.send(sender.options.Addr, sender.auth, sender.options.From, []string{message.To}, payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("notify: smtp send to %s failed: %w", message.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: smtp send interrupted: %w", ctx.Err())
	}
}

// buildMessage renders an RFC 5322 plain-text message.
func buildMessage(from string, message Message, now time.Time) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + sanitizeHeader(message.Subject) + "\r\n")
	builder.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))

	return []byte(builder.String())
}

func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
