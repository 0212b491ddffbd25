package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRecordsByReference(t *testing.T) {
	records := []Record{
		rec("email", "a@x.fi", "viite", "100", "summa", "25,00"),
		rec("email", "b@x.fi", "viite", "200", "summa", "10,00"),
		rec("email", "c@x.fi", "viite", "100", "summa", "25,00"),
		rec("email", "d@x.fi", "viite", "300", "summa", "5,00"),
		rec("email", "e@x.fi", "viite", "100", "summa", "25,00"),
	}
	groups := GroupRecords(records, FieldRef)
	require.Len(t, groups, 3)

	assert.Len(t, groups[0].Rows, 3)
	assert.Equal(t, "a@x.fi", groups[0].Rows[0].Get(FieldEmail))
	assert.Equal(t, "c@x.fi", groups[0].Rows[1].Get(FieldEmail))
	assert.Equal(t, "e@x.fi", groups[0].Rows[2].Get(FieldEmail))
	assert.Equal(t, "#1: INVOICE GROUP", groups[0].InfoHeader)
	assert.Equal(t, "VIITE: 100\n", groups[0].InfoMsg)

	assert.Len(t, groups[1].Rows, 1)
	assert.Equal(t, "#2: SINGLE INVOICE", groups[1].InfoHeader)
	assert.Equal(t, "EMAIL: b@x.fi\nVIITE: 200\nSUMMA: 10,00\n", groups[1].InfoMsg)

	assert.Len(t, groups[2].Rows, 1)
	assert.Equal(t, "#3: SINGLE INVOICE", groups[2].InfoHeader)
}

func TestGroupRecordsSingletons(t *testing.T) {
	records := []Record{
		rec("email", "a@x.fi", "viite", "100"),
		rec("email", "b@x.fi", "viite", "100"),
	}
	groups := GroupRecords(records, "")
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Rows, 1)
	assert.Len(t, groups[1].Rows, 1)
	assert.Equal(t, "#1: SINGLE INVOICE", groups[0].InfoHeader)
	assert.Equal(t, "#2: SINGLE INVOICE", groups[1].InfoHeader)
}
