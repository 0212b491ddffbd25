package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/adapters/transport"
	"github.com/mikey/csv-mailer/internal/config"
	"github.com/mikey/csv-mailer/internal/core"
)

// TransportFactory creates mail transports based on configuration.
type TransportFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTransportFactory creates a new transport factory.
func NewTransportFactory(cfg *config.Config, logger *zap.Logger) *TransportFactory {
	return &TransportFactory{cfg: cfg, logger: logger}
}

// CreateTransport connects the configured transport. server is the resolved
// SMTP server address; the SES transport ignores it.
func (f *TransportFactory) CreateTransport(ctx context.Context, server string) (core.Transport, error) {
	transportType := f.cfg.GetString("transport.type")

	switch transportType {
	case "smtp":
		return transport.DialSMTP(
			server,
			f.cfg.GetString("transport.username"),
			f.cfg.GetString("transport.password"),
			f.logger,
		)
	case "ses":
		return transport.NewSES(ctx, f.cfg.GetString("transport.region"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", transportType)
	}
}
