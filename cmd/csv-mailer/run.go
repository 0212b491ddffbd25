package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/csv-mailer/internal/config"
	"github.com/mikey/csv-mailer/internal/core"
	"github.com/mikey/csv-mailer/internal/di"
	"github.com/mikey/csv-mailer/internal/factory"
	"github.com/mikey/csv-mailer/internal/ingest"
	"github.com/mikey/csv-mailer/internal/logbook"
)

// runWith builds the dependency container and runs the pipeline.
func runWith(opts *di.Options) error {
	container, err := di.BuildContainer(opts)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}
	return container.Invoke(runPipeline)
}

// runPipeline is the filter -> group -> render -> confirm -> dispatch -> log
// workflow, run once per invocation with all dependencies injected.
func runPipeline(
	opts *di.Options,
	cfg *config.Config,
	logger *zap.Logger,
	prompter core.Prompter,
	renderer *core.Renderer,
	dataset *ingest.Dataset,
	command *core.Command,
	transports *factory.TransportFactory,
	histories *factory.HistoryFactory,
) error {
	defer logger.Sync()
	ctx := context.Background()

	fmt.Println("Welcome to csv-mailer!")
	fmt.Printf("Dataset time stamp: %s\n", dataset.Timestamp)

	sendData, err := command.FilterData(dataset.Records)
	if err != nil {
		return err
	}
	if len(sendData) == 0 {
		fmt.Println("No messages to send, exiting")
		return nil
	}
	groups := command.GroupData(sendData)

	template, err := command.MessageTemplate(prompter)
	if err != nil {
		return err
	}

	runCfg, err := resolveRunConfig(opts, cfg, prompter)
	if err != nil {
		return err
	}
	runCfg.LogFields = auditFields(command, dataset)

	logDir := opts.LogDir
	if logDir == "" {
		logDir = cfg.CommandString(opts.CommandName, "log_dir")
	}
	book, err := logbook.Open(logDir, runCfg.DryRun, time.Now(), logger)
	if err != nil {
		return err
	}
	defer book.Close()

	var transport core.Transport
	if !runCfg.DryRun {
		transport, err = transports.CreateTransport(ctx, runCfg.Server)
		if err != nil {
			return err
		}
		defer transport.Close()
	}

	history, err := histories.CreateHistory()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	controller := core.NewController(transport, prompter, book, history, renderer, logger, os.Stdout)
	return controller.Run(ctx, runCfg, groups, template)
}

// resolveRunConfig merges flags, config file and environment into a fully
// populated run configuration, prompting the operator for anything still
// missing.
func resolveRunConfig(opts *di.Options, cfg *config.Config, prompter core.Prompter) (*core.RunConfig, error) {
	name := opts.CommandName

	server := opts.SMTPServer
	if server == "" {
		server = cfg.CommandString(name, "smtp_server")
	}
	from := opts.From
	if from == "" {
		from = cfg.CommandString(name, "from")
	}

	prefix := opts.SubjectPrefix
	if !opts.SubjectPrefixSet {
		prefix = cfg.CommandString(name, "subject_prefix")
		if opts.Command.Reminder {
			if p := cfg.CommandString(name, "reminder_subject_prefix"); p != "" {
				prefix = p
			}
		}
	}

	return core.ResolveRunConfig(core.RunInputs{
		Server:        server,
		From:          from,
		EnvFrom:       os.Getenv("EMAIL"),
		CC:            opts.CC,
		BCC:           opts.BCC,
		Subject:       opts.Subject,
		SubjectPrefix: prefix,
		DryRun:        opts.DryRun,
	}, prompter)
}

// auditFields picks the status-log columns: the command's designated fields,
// or the dataset's first three header columns.
func auditFields(command *core.Command, dataset *ingest.Dataset) []string {
	if fields := command.LogFields(); len(fields) > 0 {
		return fields
	}
	if len(dataset.Fields) > 3 {
		return dataset.Fields[:3]
	}
	return dataset.Fields
}
