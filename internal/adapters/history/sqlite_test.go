package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/core"
)

func TestSQLiteHistoryRoundTrip(t *testing.T) {
	h, err := NewSQLiteHistory(":memory:", zap.NewNop())
	require.NoError(t, err)
	defer h.Close()

	err = h.Record(context.Background(), &core.HistoryEntry{
		Recipient: "matti@example.fi",
		Status:    "OK",
		Subject:   "Lasku",
		GroupInfo: "#1: SINGLE INVOICE",
		DryRun:    false,
		SentAt:    time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var recipient, status string
	row := h.db.QueryRow("SELECT recipient, status FROM send_history")
	require.NoError(t, row.Scan(&recipient, &status))
	assert.Equal(t, "matti@example.fi", recipient)
	assert.Equal(t, "OK", status)
}
