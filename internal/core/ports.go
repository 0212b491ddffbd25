package core

import (
	"context"
)

// Transport is the mail delivery port. One connection is acquired at the
// start of a run and reused for every recipient; implementations must
// tolerate repeated Send calls on the same connection.
type Transport interface {
	// Send delivers one composed message to the given envelope recipients.
	// A non-nil error marks that recipient's record FAILED; the run
	// continues with the next record.
	Send(ctx context.Context, from string, recipients []string, msg []byte) error

	// Close releases the connection. Safe to call once at the end of a run.
	Close() error
}

// Prompter is the operator interaction port. Ask blocks until the operator
// gives a valid answer: any value when choices is nil, one of choices
// otherwise, or the default on an empty answer when def is non-empty.
type Prompter interface {
	Ask(question, def string, choices []string) (string, error)
}

// OutcomeSink receives the audit trail of a run: one status line per record
// plus the full text of every archived message.
type OutcomeSink interface {
	Status(outcome Outcome, rec Record, fields []string) error
	Archive(msg []byte) error
}

// History is the optional send-history store. Writes are best-effort; the
// dispatch controller logs failures and moves on.
type History interface {
	Record(ctx context.Context, entry *HistoryEntry) error
	Close() error
}
