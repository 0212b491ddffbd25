package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Controller runs the dispatch state machine: for each group, preview the
// first record's message, ask the operator for confirmation, then send one
// rendered message per row and record every outcome. Groups are processed
// strictly sequentially; the transport connection is a single shared,
// stateful resource for the whole run.
type Controller struct {
	transport Transport // nil on dry runs, never called then
	prompter  Prompter
	sink      OutcomeSink
	history   History // optional
	renderer  *Renderer
	logger    *zap.Logger
	out       io.Writer
}

// NewController creates a dispatch controller. out receives the
// operator-facing console output; history may be nil.
func NewController(
	transport Transport,
	prompter Prompter,
	sink OutcomeSink,
	history History,
	renderer *Renderer,
	logger *zap.Logger,
	out io.Writer,
) *Controller {
	return &Controller{
		transport: transport,
		prompter:  prompter,
		sink:      sink,
		history:   history,
		renderer:  renderer,
		logger:    logger,
		out:       out,
	}
}

// Run processes every group in order. A returned error is fatal; outcomes
// already written stay valid since each one is recorded before the next
// record is attempted.
func (c *Controller) Run(ctx context.Context, cfg *RunConfig, groups []*EmailGroup, template string) error {
	for _, group := range groups {
		if len(group.Rows) == 0 {
			continue
		}
		if err := c.processGroup(ctx, cfg, group, template); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) processGroup(ctx context.Context, cfg *RunConfig, group *EmailGroup, template string) error {
	rows := group.Rows

	if group.InfoHeader != "" {
		fmt.Fprintf(c.out, "\n==== %s %s\n", group.InfoHeader,
			strings.Repeat("=", 76-5-len(group.InfoHeader)))
		fmt.Fprint(c.out, group.InfoMsg)
	}

	// Parse every row's address up front: a malformed address aborts the
	// run before anything in this group is sent.
	rowAddrs := make([]Address, len(rows))
	for i, row := range rows {
		addr, err := SplitAddress(row.Get(FieldEmail))
		if err != nil {
			return err
		}
		rowAddrs[i] = addr
	}

	previewBody, err := c.renderer.Render(template, rows[0])
	if err != nil {
		return err
	}
	preview := c.headersFor(cfg, rowAddrs[0])
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("-", 79))
	preview.WritePreview(c.out, previewBody)
	fmt.Fprintf(c.out, "%s\n\n", strings.Repeat("-", 79))

	rcptList := make([]string, len(rowAddrs))
	for i, a := range rowAddrs {
		rcptList[i] = "<" + a.Email + ">"
	}
	answer, err := c.prompter.Ask(
		fmt.Sprintf("Send an email like above to %d recipients (%s)",
			len(rcptList), strings.Join(rcptList, ", ")),
		"", []string{"n", "y"})
	if err != nil {
		return err
	}

	if answer != "y" {
		fmt.Fprintln(c.out, "Did not send!")
		for i, row := range rows {
			if err := c.record(ctx, cfg, group, OutcomeSkipped, row, rowAddrs[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i, row := range rows {
		outcome, err := c.sendRow(ctx, cfg, row, rowAddrs[i], template)
		if err != nil {
			return err
		}
		if err := c.record(ctx, cfg, group, outcome, row, rowAddrs[i]); err != nil {
			return err
		}
	}
	return nil
}

// sendRow renders and delivers one record's message. A transport error is a
// recorded FAILED outcome, not a run error.
func (c *Controller) sendRow(ctx context.Context, cfg *RunConfig, row Record, addr Address, template string) (Outcome, error) {
	body, err := c.renderer.Render(template, row)
	if err != nil {
		return "", err
	}
	headers := c.headersFor(cfg, addr)
	msg := ComposeMessage(headers, body)

	if cfg.DryRun {
		fmt.Fprintf(c.out, "Would send email to <%s>...\n", addr.Email)
		if err := c.sink.Archive(msg); err != nil {
			return "", err
		}
		return OutcomeOK, nil
	}

	recipients := make([]string, 0, 1+len(cfg.CC)+len(cfg.BCC))
	recipients = append(recipients, addr.Email)
	for _, a := range cfg.CC {
		recipients = append(recipients, a.Email)
	}
	for _, a := range cfg.BCC {
		recipients = append(recipients, a.Email)
	}

	fmt.Fprintf(c.out, "Sending email to <%s>...\n", addr.Email)
	if err := c.transport.Send(ctx, cfg.Sender.Email, recipients, msg); err != nil {
		fmt.Fprintf(c.out, "Mail delivery failed: %v\n", err)
		c.logger.Warn("delivery failed",
			zap.String("recipient", addr.Email), zap.Error(err))
		return OutcomeFailed, nil
	}
	if err := c.sink.Archive(msg); err != nil {
		return "", err
	}
	return OutcomeOK, nil
}

func (c *Controller) headersFor(cfg *RunConfig, to Address) MessageHeaders {
	return MessageHeaders{
		From:    cfg.Sender,
		To:      []Address{to},
		CC:      cfg.CC,
		BCC:     cfg.BCC,
		Subject: cfg.Subject,
	}
}

// record writes the outcome to the status log before the next record is
// attempted, then mirrors it to the history store best-effort.
func (c *Controller) record(ctx context.Context, cfg *RunConfig, group *EmailGroup, outcome Outcome, row Record, addr Address) error {
	if err := c.sink.Status(outcome, row, cfg.LogFields); err != nil {
		return err
	}
	if c.history == nil {
		return nil
	}
	entry := &HistoryEntry{
		Recipient: addr.Email,
		Status:    string(outcome),
		Subject:   cfg.Subject,
		GroupInfo: group.InfoHeader,
		DryRun:    cfg.DryRun,
		SentAt:    time.Now(),
	}
	if err := c.history.Record(ctx, entry); err != nil {
		c.logger.Warn("history write failed", zap.Error(err))
	}
	return nil
}
