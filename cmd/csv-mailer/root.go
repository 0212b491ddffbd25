package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikey/csv-mailer/internal/core"
	"github.com/mikey/csv-mailer/internal/di"
)

var (
	flagDryRun        bool
	flagLogDir        string
	flagFrom          string
	flagCC            []string
	flagBCC           []string
	flagSMTPServer    string
	flagSubject       string
	flagSubjectPrefix string
	flagFilterBy      string
	flagFilterValues  []string
	flagTransport     string
	flagConfigFile    string
	flagVerbose       bool
	flagJSONLog       bool
)

// rootCmd is the entry point; the work happens in the invoice and message
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "csv-mailer",
	Short: "Send personalized emails to the recipients listed in a CSV file",
	Long: `csv-mailer reads a tabular dataset of billing/contact records, selects
and groups a subset of rows, renders a personalized message per row from a
shared template, and dispatches the messages after an explicit confirmation.

Every run writes a status log and a sent-email archive under the log
directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagDryRun, "dry-run", "d", false, "Do everything but send email")
	pf.StringVarP(&flagLogDir, "log-dir", "l", "", "Directory for log files")
	pf.StringVar(&flagFrom, "from", "", "Sender's email")
	pf.StringArrayVar(&flagCC, "cc", nil, "Carbon copy to this email")
	pf.StringArrayVar(&flagBCC, "bcc", nil, "Blind (hidden) carbon copy to this email")
	pf.StringVar(&flagSMTPServer, "smtp-server", "", "Address of the SMTP server")
	pf.StringVar(&flagSubject, "subject", "", "Message subject, used for all emails")
	pf.StringVar(&flagSubjectPrefix, "subject-prefix", "", "Prefix all email subjects with this text")
	pf.StringVarP(&flagFilterBy, "filter-by", "F", "", "Filter messages by this column")
	pf.StringArrayVarP(&flagFilterValues, "filter-value", "f", nil, "Send rows having this value in the filter column")
	pf.StringVar(&flagTransport, "transport", "", "Mail transport (smtp, ses)")
	pf.StringVar(&flagConfigFile, "config", "", "Path to config file")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	pf.BoolVar(&flagJSONLog, "json-log", false, "Output logs in JSON format")
}

// Execute runs the CLI. A completed run exits 0, including runs where
// nothing matched or the operator declined to send.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildOptions assembles the container options for one subcommand run.
func buildOptions(cmd *cobra.Command, csvPath, name string, command *core.Command) *di.Options {
	command.FilterBy = flagFilterBy
	command.FilterValues = flagFilterValues

	return &di.Options{
		CSVPath:          csvPath,
		ConfigFile:       flagConfigFile,
		DryRun:           flagDryRun,
		LogDir:           flagLogDir,
		From:             flagFrom,
		CC:               flagCC,
		BCC:              flagBCC,
		SMTPServer:       flagSMTPServer,
		Subject:          flagSubject,
		SubjectPrefix:    flagSubjectPrefix,
		SubjectPrefixSet: cmd.Flags().Changed("subject-prefix"),
		TransportType:    flagTransport,
		Verbose:          flagVerbose,
		JSONLog:          flagJSONLog,
		CommandName:      name,
		Command:          command,
	}
}
