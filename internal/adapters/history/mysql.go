package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/core"
)

// MySQLHistory persists outcomes in a shared MySQL database, for setups
// where several operators mail from the same dataset.
type MySQLHistory struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLHistory connects with the given DSN and ensures the table exists.
func NewMySQLHistory(dsn string, logger *zap.Logger) (*MySQLHistory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS send_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			recipient VARCHAR(255) NOT NULL,
			status VARCHAR(16) NOT NULL,
			subject VARCHAR(255),
			group_info VARCHAR(255),
			dry_run BOOLEAN,
			sent_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLHistory{db: db, logger: logger}, nil
}

// Record inserts one outcome row.
func (h *MySQLHistory) Record(ctx context.Context, entry *core.HistoryEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO send_history (recipient, status, subject, group_info, dry_run, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.Recipient, entry.Status, entry.Subject, entry.GroupInfo, entry.DryRun, entry.SentAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (h *MySQLHistory) Close() error {
	if err := h.db.Close(); err != nil {
		h.logger.Error("failed to close MySQL connection", zap.Error(err))
		return err
	}
	return nil
}
