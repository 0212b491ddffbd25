package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/adapters/history"
	"github.com/mikey/csv-mailer/internal/config"
	"github.com/mikey/csv-mailer/internal/core"
)

// HistoryFactory creates the optional send-history store.
type HistoryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHistoryFactory creates a new history factory.
func NewHistoryFactory(cfg *config.Config, logger *zap.Logger) *HistoryFactory {
	return &HistoryFactory{cfg: cfg, logger: logger}
}

// CreateHistory returns the configured store, or nil when history is
// disabled.
func (f *HistoryFactory) CreateHistory() (core.History, error) {
	if !f.cfg.GetBool("history.enabled") {
		return nil, nil
	}

	historyType := f.cfg.GetString("history.type")
	switch historyType {
	case "memory":
		return history.NewMemoryHistory(f.logger), nil
	case "sqlite":
		return history.NewSQLiteHistory(f.cfg.GetString("history.sqlite_path"), f.logger)
	case "mysql":
		return history.NewMySQLHistory(f.cfg.GetString("history.mysql_dsn"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported history type: %s", historyType)
	}
}
