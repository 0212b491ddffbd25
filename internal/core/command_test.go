package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(day, month, year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.Month(month), day, 10, 30, 0, 0, time.Local)
	}
}

func TestInvoiceDefaultsToTodaysRows(t *testing.T) {
	cmd := &Command{Kind: CommandInvoice, Now: fixedClock(15, 3, 2024)}
	records := []Record{
		rec("email", "a@x.fi", "nro", "1", "pvm", "15.3.2024"),
		rec("email", "b@x.fi", "nro", "2", "pvm", "14.3.2024"),
		rec("email", "c@x.fi", "nro", "3", "pvm", "15.3.2024"),
	}
	out, err := cmd.FilterData(records)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a@x.fi", out[0].Get(FieldEmail))
	assert.Equal(t, "c@x.fi", out[1].Get(FieldEmail))
}

func TestInvoiceIndexSelectionSkipsDateDefault(t *testing.T) {
	cmd := &Command{Kind: CommandInvoice, IndexExpr: "1-2", Now: fixedClock(15, 3, 2024)}
	records := []Record{
		rec("email", "a@x.fi", "nro", "1", "pvm", "1.1.2020"),
		rec("email", "b@x.fi", "nro", "2", "pvm", "1.1.2020"),
		rec("email", "c@x.fi", "nro", "3", "pvm", "15.3.2024"),
	}
	out, err := cmd.FilterData(records)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].Get(FieldIndex))
	assert.Equal(t, "2", out[1].Get(FieldIndex))
}

func TestReminderSelectsOverdueUnpaid(t *testing.T) {
	cmd := &Command{Kind: CommandInvoice, Reminder: true, Now: fixedClock(15, 3, 2024)}
	records := []Record{
		rec("email", "a@x.fi", "nro", "1", "maksettu", "", "eräpäivä", "1.1.2024"),
		rec("email", "b@x.fi", "nro", "2", "maksettu", "14.2.2024", "eräpäivä", "1.1.2024"),
		rec("email", "c@x.fi", "nro", "3", "maksettu", "", "eräpäivä", "1.1.2030"),
	}
	out, err := cmd.FilterData(records)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a@x.fi", out[0].Get(FieldEmail))
	assert.Equal(t, DueImmediately, out[0].Get(FieldDueDate))

	// The canonical record keeps its real due date.
	assert.Equal(t, "1.1.2024", records[0].Get(FieldDueDate))
}

func TestReminderInvalidDueDate(t *testing.T) {
	cmd := &Command{Kind: CommandInvoice, Reminder: true, Now: fixedClock(15, 3, 2024)}
	records := []Record{
		rec("email", "a@x.fi", "maksettu", "", "eräpäivä", "sometime"),
	}
	_, err := cmd.FilterData(records)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestMessageFilterHasNoDateDefault(t *testing.T) {
	cmd := &Command{Kind: CommandMessage, Now: fixedClock(15, 3, 2024)}
	records := []Record{
		rec("email", "a@x.fi", "pvm", "1.1.2020"),
		rec("email", "b@x.fi", "pvm", "2.2.2021"),
	}
	out, err := cmd.FilterData(records)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestValueFilter(t *testing.T) {
	cmd := &Command{
		Kind:         CommandMessage,
		FilterBy:     "ryhmä",
		FilterValues: []string{"A", "C"},
	}
	records := []Record{
		rec("email", "a@x.fi", "ryhmä", "A"),
		rec("email", "b@x.fi", "ryhmä", "B"),
		rec("email", "c@x.fi", "ryhmä", "C"),
	}
	out, err := cmd.FilterData(records)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a@x.fi", out[0].Get(FieldEmail))
	assert.Equal(t, "c@x.fi", out[1].Get(FieldEmail))
}

func TestGroupDataMessageIsOneBatch(t *testing.T) {
	cmd := &Command{Kind: CommandMessage}
	records := []Record{
		rec("email", "a@x.fi"),
		rec("email", "b@x.fi"),
	}
	groups := cmd.GroupData(records)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Rows, 2)
}

func TestInvoiceTemplateDefaults(t *testing.T) {
	cmd := &Command{
		Kind:      CommandInvoice,
		Payee:     "Kerho ry",
		Bank:      "Testipankki",
		Account:   "FI00 1234 5678 9012 34",
		Signature: "\n\nParhain terveisin,\n  Laskutus\n",
	}
	prompter := &scriptedPrompter{}

	tpl, err := cmd.MessageTemplate(prompter)
	require.NoError(t, err)
	assert.Contains(t, tpl, DefaultGreeting)
	assert.Contains(t, tpl, "Saaja: Kerho ry")
	assert.Contains(t, tpl, "Tilinumero: FI00 1234 5678 9012 34")
	assert.Contains(t, tpl, "{{ viitenro }}")
	assert.Contains(t, tpl, "{{ erapaiva }}")
	assert.Contains(t, tpl, "Parhain terveisin")
}

func TestMessageTemplatePromptExpandsEscapes(t *testing.T) {
	cmd := &Command{Kind: CommandMessage}
	prompter := &scriptedPrompter{answers: []string{`Hei {{ nimi }},\n\nTervetuloa!`}}

	tpl, err := cmd.MessageTemplate(prompter)
	require.NoError(t, err)
	assert.Equal(t, "Hei {{ nimi }},\n\nTervetuloa!", tpl)
}
