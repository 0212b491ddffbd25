// Package logbook writes the two per-run audit artifacts: a status log with
// one line per outcome, and an archive holding the full text of every sent
// message.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/core"
)

const rule = 79

// Logbook owns the status log and the sent-mail archive of one run.
type Logbook struct {
	statusFile  *os.File
	archiveFile *os.File
	baseName    string
	logger      *zap.Logger
}

// Open creates `<base>.log` and `<base>-emails.txt` under dir, creating the
// directory if needed. The base name derives from the start time, with a
// distinguishing suffix on dry runs.
func Open(dir string, dryRun bool, start time.Time, logger *zap.Logger) (*Logbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	base := start.Format("2006-01-02-150405")
	if dryRun {
		base += "-dry-run"
	}

	statusFile, err := os.Create(filepath.Join(dir, base+".log"))
	if err != nil {
		return nil, fmt.Errorf("cannot create status log: %w", err)
	}
	archiveFile, err := os.Create(filepath.Join(dir, base+"-emails.txt"))
	if err != nil {
		statusFile.Close()
		return nil, fmt.Errorf("cannot create email archive: %w", err)
	}

	logger.Info("opened session logs",
		zap.String("dir", dir), zap.String("base", base))
	return &Logbook{
		statusFile:  statusFile,
		archiveFile: archiveFile,
		baseName:    base,
		logger:      logger,
	}, nil
}

// BaseName returns the timestamp-derived base of the log file names.
func (b *Logbook) BaseName() string {
	return b.baseName
}

// Status appends one outcome line:
// "<OK|FAILED|SKIPPED> to <address>: <field1>: <value1> <field2>: <value2>".
func (b *Logbook) Status(outcome core.Outcome, rec core.Record, fields []string) error {
	addr := rec.Get(core.FieldEmail)
	if parsed, err := core.SplitAddress(addr); err == nil {
		addr = parsed.Email
	}

	details := make([]string, len(fields))
	for i, field := range fields {
		details[i] = fmt.Sprintf("%s: %s", field, rec.Get(field))
	}
	_, err := fmt.Fprintf(b.statusFile, "%s to %s: %s\n",
		outcome, addr, strings.Join(details, " "))
	if err != nil {
		return fmt.Errorf("cannot write status log: %w", err)
	}
	return nil
}

// Archive appends the full text of one sent message, preceded by a rule
// line.
func (b *Logbook) Archive(msg []byte) error {
	if _, err := fmt.Fprintf(b.archiveFile, "%s\n", strings.Repeat("-", rule)); err != nil {
		return fmt.Errorf("cannot write email archive: %w", err)
	}
	if _, err := b.archiveFile.Write(msg); err != nil {
		return fmt.Errorf("cannot write email archive: %w", err)
	}
	if _, err := b.archiveFile.WriteString("\n"); err != nil {
		return fmt.Errorf("cannot write email archive: %w", err)
	}
	return nil
}

// Close flushes and closes both files. Called on every exit path, normal or
// fatal, so already-written outcomes stay on disk.
func (b *Logbook) Close() error {
	statusErr := b.statusFile.Close()
	archiveErr := b.archiveFile.Close()
	if statusErr != nil {
		return statusErr
	}
	return archiveErr
}
