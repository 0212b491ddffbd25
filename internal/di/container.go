// Package di wires one run's dependencies into a dig container.
package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/adapters/prompt"
	"github.com/mikey/csv-mailer/internal/config"
	"github.com/mikey/csv-mailer/internal/core"
	"github.com/mikey/csv-mailer/internal/factory"
	"github.com/mikey/csv-mailer/internal/ingest"
	"github.com/mikey/csv-mailer/internal/logging"
)

// Options carries everything the CLI layer gathered from flags and
// arguments before the container is built.
type Options struct {
	CSVPath    string
	ConfigFile string

	DryRun        bool
	LogDir        string
	From          string
	CC            []string
	BCC           []string
	SMTPServer    string
	Subject       string
	SubjectPrefix string
	// SubjectPrefixSet distinguishes an explicit empty --subject-prefix
	// from the flag being absent, in which case the config value applies.
	SubjectPrefixSet bool
	TransportType    string

	Verbose bool
	JSONLog bool

	CommandName string
	Command     *core.Command
}

// BuildContainer creates and configures the dependency injection container
// for one run.
func BuildContainer(opts *Options) (*dig.Container, error) {
	container := dig.New()

	// Register options
	if err := container.Provide(func() *Options { return opts }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(opts *Options) (*zap.Logger, error) {
		return logging.NewConsole(opts.Verbose, opts.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration, with flag overrides layered on top
	if err := container.Provide(func(opts *Options, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.New(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("loaded configuration", zap.String("file", used))
		}
		if opts.TransportType != "" {
			cfg.GetViper().Set("transport.type", opts.TransportType)
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register operator prompt
	if err := container.Provide(func() core.Prompter {
		return prompt.NewTerminal()
	}); err != nil {
		return nil, err
	}

	// Register template renderer
	if err := container.Provide(core.NewRenderer); err != nil {
		return nil, err
	}

	// Register dataset ingestion
	if err := container.Provide(func(opts *Options, cfg *config.Config) (*ingest.Dataset, error) {
		return ingest.Load(opts.CSVPath, cfg.GetString("ingest.encoding"))
	}); err != nil {
		return nil, err
	}

	// Register the command, completed with the config-provided defaults
	if err := container.Provide(func(opts *Options, cfg *config.Config) *core.Command {
		command := opts.Command
		command.Payee = cfg.GetString("invoice.payee")
		command.Bank = cfg.GetString("invoice.bank")
		command.Account = cfg.GetString("invoice.account")
		command.Signature = cfg.GetString("signature")
		return command
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTransportFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewHistoryFactory); err != nil {
		return nil, err
	}

	return container, nil
}
