// Package ingest loads the tabular dataset: a timestamp row, a header row
// and the billing/contact records that follow.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/mikey/csv-mailer/internal/core"
)

// Dataset is one ingested file.
type Dataset struct {
	// Timestamp is the dataset's own timestamp, taken from the first cell
	// of the first row.
	Timestamp string
	// Fields are the lower-cased, non-empty header names in column order.
	Fields []string
	// Records zip the header names to each subsequent row's values.
	Records []core.Record
}

// Load reads a dataset file. The encoding name may be empty or "utf-8"
// (with BOM stripping), or one of "latin1", "latin9", "windows-1252" for
// legacy exports.
func Load(path, encodingName string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IngestError{Path: path, Err: err}
	}
	data, err := decode(raw, encodingName)
	if err != nil {
		return nil, &core.IngestError{Path: path, Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	tsRow, err := reader.Read()
	if err != nil {
		return nil, &core.IngestError{Path: path, Err: fmt.Errorf("missing timestamp row: %w", err)}
	}
	headerRow, err := reader.Read()
	if err != nil {
		return nil, &core.IngestError{Path: path, Err: fmt.Errorf("missing header row: %w", err)}
	}

	header := make([]string, len(headerRow))
	var fields []string
	for i, name := range headerRow {
		header[i] = strings.ToLower(strings.TrimSpace(name))
		if header[i] != "" {
			fields = append(fields, header[i])
		}
	}

	var records []core.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &core.IngestError{Path: path, Err: err}
		}
		rec := make(core.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	ts := ""
	if len(tsRow) > 0 {
		ts = tsRow[0]
	}
	return &Dataset{Timestamp: ts, Fields: fields, Records: records}, nil
}

func decode(data []byte, encodingName string) ([]byte, error) {
	var enc encoding.Encoding
	switch strings.ToLower(encodingName) {
	case "", "utf-8", "utf8":
		return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), nil
	case "latin1", "iso-8859-1":
		enc = charmap.ISO8859_1
	case "latin9", "iso-8859-15":
		enc = charmap.ISO8859_15
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encodingName)
	}
	return enc.NewDecoder().Bytes(data)
}

// detectDelimiter probes the first line for the dialect's separator.
// Semicolon-separated exports are the common case for this data; plain
// comma and tab are the alternatives.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, comma := 0, ','
	for _, cand := range []byte{';', ',', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > best {
			best, comma = n, rune(cand)
		}
	}
	return comma
}
