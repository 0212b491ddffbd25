package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/csv-mailer/internal/core"
)

var flagMessageText string

// messageCmd sends one free-form template to the filtered rows.
var messageCmd = &cobra.Command{
	Use:   "message CSV",
	Short: "Compose and send emails from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessage,
}

func init() {
	messageCmd.Flags().StringVarP(&flagMessageText, "message", "m", "", "Message template (text or file)")
	rootCmd.AddCommand(messageCmd)
}

func runMessage(cmd *cobra.Command, args []string) error {
	command := &core.Command{
		Kind:        core.CommandMessage,
		MessageText: flagMessageText,
	}
	return runWith(buildOptions(cmd, args[0], "message", command))
}
