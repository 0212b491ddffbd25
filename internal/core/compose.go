package core

import (
	"fmt"
	"io"
	"strings"
)

// MessageHeaders is the header set of one outbound message.
type MessageHeaders struct {
	From    Address
	To      []Address
	CC      []Address
	BCC     []Address
	Subject string
}

// ComposeMessage renders the full wire text of a message: headers, blank
// line, UTF-8 plain-text body. Lines use CRLF so the same bytes serve the
// transport and the archive file.
func ComposeMessage(h MessageHeaders, body string) []byte {
	var b strings.Builder
	writeHeader(&b, "From", h.From.String())
	writeHeader(&b, "To", FormatAddressHeader(h.To))
	if len(h.CC) > 0 {
		writeHeader(&b, "Cc", FormatAddressHeader(h.CC))
	}
	if len(h.BCC) > 0 {
		writeHeader(&b, "Bcc", FormatAddressHeader(h.BCC))
	}
	writeHeader(&b, "Subject", EncodeHeaderWord(h.Subject))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// WritePreview prints the operator-facing view of a message: the
// interesting headers and the body, without the MIME plumbing.
func (h MessageHeaders) WritePreview(w io.Writer, body string) {
	fmt.Fprintf(w, "From: %s\n", h.From.String())
	fmt.Fprintf(w, "To: %s\n", FormatAddressHeader(h.To))
	if len(h.CC) > 0 {
		fmt.Fprintf(w, "Cc: %s\n", FormatAddressHeader(h.CC))
	}
	if len(h.BCC) > 0 {
		fmt.Fprintf(w, "Bcc: %s\n", FormatAddressHeader(h.BCC))
	}
	fmt.Fprintf(w, "Subject: %s\n", h.Subject)
	fmt.Fprintf(w, "\n%s\n", body)
}
