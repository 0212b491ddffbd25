// Package history stores one row per dispatch outcome, so past runs can be
// audited outside the per-run log files.
package history

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/core"
)

// MemoryHistory keeps the run's outcomes in memory. Useful for tests and
// for runs where persistence is not wanted.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []*core.HistoryEntry
	logger  *zap.Logger
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory(logger *zap.Logger) *MemoryHistory {
	return &MemoryHistory{logger: logger}
}

// Record appends one outcome.
func (h *MemoryHistory) Record(ctx context.Context, entry *core.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return nil
}

// Entries returns the recorded outcomes in insertion order.
func (h *MemoryHistory) Entries() []*core.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*core.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Close is a no-op.
func (h *MemoryHistory) Close() error {
	return nil
}
