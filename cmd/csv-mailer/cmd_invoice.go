package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mikey/csv-mailer/internal/core"
)

var (
	flagInvoiceMessage string
	flagMsgDetails     string
	flagReminder       bool
	flagGroupBy        string
	flagDates          []string
	flagIndex          string
)

// invoiceCmd sends per-row personalized invoices.
var invoiceCmd = &cobra.Command{
	Use:   "invoice CSV",
	Short: "Send invoices from a CSV dataset",
	Long: `Send one invoice email per selected row. With no explicit selection the
run targets rows whose date column equals today. In reminder mode only
unpaid rows whose due date has passed are selected, and the rendered due
date reads "` + core.DueImmediately + `".`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

func init() {
	f := invoiceCmd.Flags()
	f.StringVarP(&flagInvoiceMessage, "message", "m", "", "Greeting message (text or file), used for all invoices")
	f.StringVar(&flagMsgDetails, "msg-details", "", "Invoice details template (text or file)")
	f.BoolVarP(&flagReminder, "reminder", "r", false, "Only send invoices whose due date has passed")
	f.StringVarP(&flagGroupBy, "group-by", "G", core.FieldRef, "Mass-send invoices with the same value of this column")
	f.StringArrayVarP(&flagDates, "date", "D", nil, "Send invoices having this date (day.month.year)")
	f.StringVarP(&flagIndex, "index", "I", "", "Send invoices having these index numbers, e.g. 1-3,5")
	invoiceCmd.MarkFlagsMutuallyExclusive("date", "index")

	rootCmd.AddCommand(invoiceCmd)
}

func runInvoice(cmd *cobra.Command, args []string) error {
	dates := make([]time.Time, 0, len(flagDates))
	for _, d := range flagDates {
		parsed, err := core.ParseDate(d)
		if err != nil {
			return core.Configf("invalid date %q: %v", d, err)
		}
		dates = append(dates, parsed)
	}

	command := &core.Command{
		Kind:        core.CommandInvoice,
		IndexExpr:   flagIndex,
		Dates:       dates,
		Reminder:    flagReminder,
		GroupBy:     flagGroupBy,
		MessageText: flagInvoiceMessage,
		DetailsText: flagMsgDetails,
	}
	return runWith(buildOptions(cmd, args[0], "invoice", command))
}
