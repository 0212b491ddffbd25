package core

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// CommandKind selects between the two message-building behaviors.
type CommandKind int

const (
	// CommandInvoice sends per-row personalized invoices.
	CommandInvoice CommandKind = iota
	// CommandMessage sends one free-form template to the filtered rows.
	CommandMessage
)

// DueImmediately replaces the due-date field of overdue reminder rows so the
// rendered message reads "pay now" instead of a past date.
const DueImmediately = "HETI"

// DefaultGreeting is the invoice greeting offered when the operator gives no
// message of their own.
const DefaultGreeting = "Hei,\n\nOhessa lasku."

// invoiceLogFields are the audit columns written to the status log for
// invoice runs.
var invoiceLogFields = []string{FieldIndex, "selite", FieldAmount, "viitenro"}

// Command is the tagged variant over the invoice and message subcommands.
// All three pipeline operations dispatch on Kind with a static switch.
type Command struct {
	Kind CommandKind

	// Generic row selection.
	FilterBy     string
	FilterValues []string

	// Invoice-only selection.
	IndexExpr string
	Dates     []time.Time
	Reminder  bool
	GroupBy   string

	// Message body inputs. MessageText and DetailsText hold either literal
	// template text or a path to a file containing it.
	MessageText string
	DetailsText string

	// Invoice details-block defaults.
	Payee     string
	Bank      string
	Account   string
	Signature string

	// Now is the clock used for date defaults and overdue checks. Nil means
	// time.Now.
	Now func() time.Time
}

func (c *Command) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// LogFields returns the command's designated audit fields, or nil when the
// dataset's leading columns should be used instead.
func (c *Command) LogFields() []string {
	if c.Kind == CommandInvoice {
		return invoiceLogFields
	}
	return nil
}

// FilterData reduces the record set to the rows this run should mail.
func (c *Command) FilterData(records []Record) ([]Record, error) {
	switch c.Kind {
	case CommandInvoice:
		return c.filterInvoices(records)
	case CommandMessage:
		return c.filterMessages(records)
	default:
		return nil, Configf("unknown command kind %d", c.Kind)
	}
}

func (c *Command) filterMessages(records []Record) ([]Record, error) {
	spec := NewFilterSpec()
	c.addValueFilter(spec)
	return Filter(records, spec)
}

func (c *Command) filterInvoices(records []Record) ([]Record, error) {
	spec := NewFilterSpec()
	c.addValueFilter(spec)

	if c.IndexExpr != "" {
		ranges, err := ParseIndexRanges(c.IndexExpr)
		if err != nil {
			return nil, err
		}
		spec.Add(FieldIndex, ranges...)
	}

	// A run with no explicit selection targets today's entries, except in
	// reminder mode where the due-date check below does the selecting.
	if len(c.Dates) > 0 || (!c.Reminder && spec.Empty()) {
		dates := c.Dates
		if len(dates) == 0 {
			dates = []time.Time{Day(c.now())}
		}
		for _, d := range dates {
			spec.Add(FieldDate, DateRange(d))
		}
	}

	rows, err := Filter(records, spec)
	if err != nil {
		return nil, err
	}

	if !c.Reminder {
		return rows, nil
	}

	// Keep only unpaid rows whose due date has passed, and derive display
	// records with the due date overridden. The canonical rows stay intact.
	today := Day(c.now())
	var overdue []Record
	for _, rec := range rows {
		if strings.TrimSpace(rec.Get(FieldPaid)) != "" {
			continue
		}
		due, err := ParseDate(rec.Get(FieldDueDate))
		if err != nil {
			return nil, Configf("row has invalid due date %q: %v", rec.Get(FieldDueDate), err)
		}
		if due.Before(today) {
			overdue = append(overdue, rec.WithField(FieldDueDate, DueImmediately))
		}
	}
	return overdue, nil
}

func (c *Command) addValueFilter(spec *FilterSpec) {
	if c.FilterBy == "" || len(c.FilterValues) == 0 {
		return
	}
	ranges := make([]Range, len(c.FilterValues))
	for i, v := range c.FilterValues {
		ranges[i] = ValueRange(v)
	}
	spec.Add(c.FilterBy, ranges...)
}

// GroupData partitions the filtered rows into email groups.
func (c *Command) GroupData(records []Record) []*EmailGroup {
	switch c.Kind {
	case CommandInvoice:
		return GroupRecords(records, c.GroupBy)
	default:
		// One structurally identical mail per row, reviewed as one batch.
		return []*EmailGroup{{Rows: records}}
	}
}

// MessageTemplate resolves the message template for this run. This is one of
// the two designed interaction points: when no template was supplied the
// operator is asked, with the invoice greeting defaulted.
func (c *Command) MessageTemplate(prompter Prompter) (string, error) {
	switch c.Kind {
	case CommandInvoice:
		greeting, err := textOrPrompt(prompter, c.MessageText, "Greeting message", DefaultGreeting)
		if err != nil {
			return "", err
		}
		details := c.DetailsText
		if details == "" {
			details = c.defaultDetails()
		} else {
			details = readTextOrFile(details)
		}
		return greeting + "\n" + details + c.Signature, nil
	default:
		return textOrPrompt(prompter, c.MessageText, "Message", "")
	}
}

// defaultDetails builds the built-in Finnish invoice details block.
func (c *Command) defaultDetails() string {
	return fmt.Sprintf(`
Selite: {{ selite }}
Saaja: %s
Pankkiyhteys: %s
Tilinumero: %s
Viitenumero: {{ viitenro }}
Summa: {{ summa }}
Eräpäivä: {{ erapaiva }}
`, c.Payee, c.Bank, c.Account)
}

// readTextOrFile returns the contents of value when it names an existing
// file, otherwise value itself.
func readTextOrFile(value string) string {
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		if data, err := os.ReadFile(value); err == nil {
			return string(data)
		}
	}
	return value
}

// textOrPrompt resolves template text from a flag value or, failing that,
// from the operator. Escaped newlines and tabs in a typed answer are
// expanded so multi-line messages can be entered on one line.
func textOrPrompt(prompter Prompter, value, question, def string) (string, error) {
	if value != "" {
		return readTextOrFile(value), nil
	}
	answer, err := prompter.Ask(question, def, nil)
	if err != nil {
		return "", err
	}
	answer = strings.ReplaceAll(answer, `\n`, "\n")
	answer = strings.ReplaceAll(answer, `\t`, "\t")
	return answer, nil
}
