package types

import (
	"fmt"

	"github.com/simonhull/audiochunks/internal/binary"
)

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError = binary.OutOfBoundsError

// UnsupportedFormatError is returned when the file is neither AIFF nor DSF.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// FormatError is returned when a chunk index cannot be built.
//
// Reason is one of "invalid chunk header", "invalid chunk offset",
// "invalid chunk length" or "truncated chunk header". Err carries the
// underlying read failure for truncated input.
type FormatError struct {
	Err    error
	Path   string
	Reason string
	Offset int64
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: invalid chunk at offset %d: %s", e.Path, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying read error, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// CorruptedFileError is returned when file structure is invalid.
//
// Magic mismatches carry no Err. Any other decode failure is reported
// once, with Reason "failed to parse header" and the original cause in Err.
type CorruptedFileError struct {
	Err    error
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	msg := fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *CorruptedFileError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - Declared file size not matching the actual length
//   - A missing COMM chunk
//   - An unreadable ID3 tag block
//
// Warnings are collected in File.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "technical", "metadata"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// UnsupportedWriteError indicates write is not supported for this format.
type UnsupportedWriteError struct {
	Reason string
	Format Format
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Format)
}
