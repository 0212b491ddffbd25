// Package transport provides the mail delivery adapters.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// SMTPTransport delivers messages over one long-lived SMTP connection,
// reused for every recipient of the run.
type SMTPTransport struct {
	client *smtp.Client
	logger *zap.Logger
}

// DialSMTP connects to the server (port 25 assumed when none is given),
// upgrades to STARTTLS when the server offers it, and authenticates with
// SASL PLAIN when credentials are configured.
func DialSMTP(server, username, password string, logger *zap.Logger) (*SMTPTransport, error) {
	addr := server
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort(addr, "25")
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to SMTP server %s: %w", addr, err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		host, _, _ := net.SplitHostPort(addr)
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if username != "" {
		if err := client.Auth(sasl.NewPlainClient("", username, password)); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	logger.Info("connected to SMTP server", zap.String("server", addr))
	return &SMTPTransport{client: client, logger: logger}, nil
}

// Send submits one message envelope. On a mid-transaction error the session
// is reset so the connection stays usable for the next recipient.
func (t *SMTPTransport) Send(ctx context.Context, from string, recipients []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.client.Mail(from, nil); err != nil {
		return t.fail(fmt.Errorf("MAIL FROM rejected: %w", err))
	}
	for _, rcpt := range recipients {
		if err := t.client.Rcpt(rcpt, nil); err != nil {
			return t.fail(fmt.Errorf("recipient %s rejected: %w", rcpt, err))
		}
	}
	w, err := t.client.Data()
	if err != nil {
		return t.fail(fmt.Errorf("DATA rejected: %w", err))
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return t.fail(fmt.Errorf("cannot write message: %w", err))
	}
	if err := w.Close(); err != nil {
		return t.fail(fmt.Errorf("message rejected: %w", err))
	}
	return nil
}

func (t *SMTPTransport) fail(err error) error {
	if resetErr := t.client.Reset(); resetErr != nil {
		t.logger.Warn("SMTP reset failed", zap.Error(resetErr))
	}
	return err
}

// Close ends the SMTP session.
func (t *SMTPTransport) Close() error {
	return t.client.Quit()
}
