// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is wrapped by every [FormatError]. It aborts the current file.
	ErrFormat = errors.New("invalid resource file format")

	// ErrUnsupportedFormat reports a file extension no reader or writer handles.
	ErrUnsupportedFormat = errors.New("unsupported resource format")

	// ErrUnsupportedValueType reports a binary or otherwise non-text payload
	// that a text-only format cannot carry.
	ErrUnsupportedValueType = errors.New("unsupported resource value type")

	// ErrEmptyKey reports an item with an empty name. Recoverable: the item is dropped.
	ErrEmptyKey = errors.New("empty resource name")

	// ErrDuplicateKey reports an item whose name was already seen. Recoverable:
	// the later item replaces the earlier one.
	ErrDuplicateKey = errors.New("duplicate resource name")
)

// FormatError describes malformed input at a given line.
type FormatError struct {
	Line int
	Msg  string
}

// Error returns the message with its line number.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
	}

	return e.Msg
}

// Unwrap makes errors.Is(err, ErrFormat) true for every FormatError.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// NewFormatError returns a *FormatError for line with a formatted message.
func NewFormatError(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
