package core

import (
	"errors"
	"fmt"
)

// ConfigError is a fatal configuration problem: an unknown filter column, an
// address that cannot be parsed, or a required setting with no value and no
// operator answer. It always aborts the run before anything is sent.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IngestError is a fatal dataset problem: the file is missing, unreadable or
// structurally broken.
type IngestError struct {
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("cannot ingest %s: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// TemplateError reports a message template that references a field absent
// from the record set, or that cannot be parsed at all.
type TemplateError struct {
	Msg string
}

func (e *TemplateError) Error() string {
	return e.Msg
}

// Templatef builds a TemplateError from a format string.
func Templatef(format string, args ...any) error {
	return &TemplateError{Msg: fmt.Sprintf(format, args...)}
}
