// Package binary provides type-safe binary reading primitives with bounds checking
package binary

import (
	"fmt"
	"io"
)

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset < 0 || e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size || off+int64(len(b)) > sr.size {
		return &OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d: %w",
			sr.path, what, off, n, len(b), io.ErrUnexpectedEOF)
	}

	return nil
}

// Stream is a seekable cursor over a SafeReader.
//
// Every ReadBlock advances the cursor, so a read that targets a specific
// offset must SeekTo first. A Stream is owned by a single parse and is not
// safe for concurrent use.
type Stream struct {
	*SafeReader
	pos int64
}

// NewStream creates a Stream positioned at offset 0.
func NewStream(sr *SafeReader) *Stream {
	return &Stream{SafeReader: sr}
}

// SeekTo moves the cursor to an absolute offset.
// Seeking to exactly Length() is allowed; any read from there fails.
func (s *Stream) SeekTo(off int64) error {
	if off < 0 || off > s.size {
		return &OutOfBoundsError{
			Path:   s.path,
			What:   "seek",
			Offset: off,
			Size:   s.size,
		}
	}
	s.pos = off
	return nil
}

// Position returns the current cursor offset.
func (s *Stream) Position() int64 {
	return s.pos
}

// Length returns the total byte count of the underlying source.
func (s *Stream) Length() int64 {
	return s.size
}

// ReadBlock reads exactly n bytes at the cursor and advances it.
// On failure the cursor is left where it was.
func (s *Stream) ReadBlock(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if err := s.SafeReader.ReadAt(buf, s.pos, what); err != nil {
		return nil, err
	}
	s.pos += int64(n)
	return buf, nil
}

// ReadNext reads the next unsigned value of type T at the cursor with the given byte order.
func ReadNext[T uint8 | uint16 | uint32 | uint64](s *Stream, endian Endianness, what string) (T, error) {
	b, err := s.ReadBlock(sizeOf[T](), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(ToUnsigned(b, endian)), nil
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Stream
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(s *Stream) *ChainReader {
	return &ChainReader{Stream: s}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, endian Endianness, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadNext[T](cr.Stream, endian, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads n raw bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	b, err := cr.Stream.ReadBlock(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return b
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
