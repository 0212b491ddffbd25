package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/core"
)

// SQLiteHistory persists outcomes in an embedded SQLite database.
type SQLiteHistory struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteHistory opens (or creates) the history database at dbPath.
func NewSQLiteHistory(dbPath string, logger *zap.Logger) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS send_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipient TEXT NOT NULL,
			status TEXT NOT NULL,
			subject TEXT,
			group_info TEXT,
			dry_run BOOLEAN,
			sent_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteHistory{db: db, logger: logger}, nil
}

// Record inserts one outcome row.
func (h *SQLiteHistory) Record(ctx context.Context, entry *core.HistoryEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO send_history (recipient, status, subject, group_info, dry_run, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.Recipient, entry.Status, entry.Subject, entry.GroupInfo, entry.DryRun,
		entry.SentAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (h *SQLiteHistory) Close() error {
	if err := h.db.Close(); err != nil {
		h.logger.Error("failed to close SQLite database", zap.Error(err))
		return err
	}
	return nil
}
