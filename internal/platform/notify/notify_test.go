// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/config"
)

func TestLogSender_Send(t *testing.T) {
	var buffer bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewJSONHandler(&buffer, nil)))

	err := sender.Send(context.Background(), Message{To: "a@x.io", Subject: "Code", Body: "abc-123"})
	require.NoError(t, err)

	assert.Contains(t, buffer.String(), `"msg":"mail_sent"`)
	assert.Contains(t, buffer.String(), "abc-123")
}

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(SMTPOptions{Addr: "no-port", From: "noreply@yamdb.io"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPOptions{Addr: "mail:25"})
	assert.Error(t, err)

	sender, err := NewSMTPSender(SMTPOptions{Addr: "mail:25", From: "noreply@yamdb.io", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.NotNil(t, sender.auth)
}

func TestSMTPSender_Send(t *testing.T) {
	sender, err := NewSMTPSender(SMTPOptions{Addr: "mail:25", From: "noreply@yamdb.io"})
	require.NoError(t, err)

	var captured []byte
	var recipients []string
	sender.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		captured, recipients = msg, to
		return nil
	}

	err = sender.Send(context.Background(), Message{To: "a@x.io", Subject: "Code\r\nBcc: evil@x.io", Body: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.io"}, recipients)
	assert.Contains(t, string(captured), "Subject: Code  Bcc: evil@x.io\r\n")
	assert.Contains(t, string(captured), "line1\r\nline2")

	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay refused")
	}
	assert.Error(t, sender.Send(context.Background(), Message{To: "a@x.io"}))
}

func TestSMTPSender_SendHonoursContext(t *testing.T) {
	sender, err := NewSMTPSender(SMTPOptions{Addr: "mail:25", From: "noreply@yamdb.io"})
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = sender.Send(ctx, Message{To: "a@x.io"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_SelectsBackend(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	sender, err := New(&config.Config{MailBackend: config.MailBackendLog}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, sender)

	sender, err = New(&config.Config{MailBackend: config.MailBackendSMTP, SMTPAddr: "mail:25", MailFrom: "noreply@yamdb.io"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)

	_, err = New(&config.Config{MailBackend: "pigeon"}, logger)
	assert.Error(t, err)
}
