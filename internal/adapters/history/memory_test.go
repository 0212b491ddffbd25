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

func TestMemoryHistoryRecordsInOrder(t *testing.T) {
	h := NewMemoryHistory(zap.NewNop())
	ctx := context.Background()

	for _, r := range []string{"a@x.fi", "b@x.fi"} {
		err := h.Record(ctx, &core.HistoryEntry{
			Recipient: r,
			Status:    "OK",
			Subject:   "Lasku",
			SentAt:    time.Now(),
		})
		require.NoError(t, err)
	}

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a@x.fi", entries[0].Recipient)
	assert.Equal(t, "b@x.fi", entries[1].Recipient)
	assert.NoError(t, h.Close())
}
