package types

import "fmt"

// ChunkHeaderSize is the size of a chunk header: 4-byte id + 4-byte length.
const ChunkHeaderSize = 8

// FourCC is a 4-byte chunk identifier such as "COMM" or "ID3 ".
type FourCC [4]byte

// ParseFourCC converts a 4-character string into a FourCC.
func ParseFourCC(s string) (FourCC, error) {
	var id FourCC
	if len(s) != len(id) {
		return id, fmt.Errorf("chunk id %q must be exactly 4 bytes, got %d", s, len(s))
	}
	copy(id[:], s)
	return id, nil
}

// String returns the identifier as text.
func (id FourCC) String() string {
	return string(id[:])
}

// Chunk describes one chunk of a chunk-based container.
//
// Length is the payload length rounded up to an even number, i.e. the
// on-disk stride minus the 8-byte header. The first chunk of an index is
// the container prologue: its Pattern is the container magic and its
// Length is the declared size of everything after the first 8 bytes.
type Chunk struct {
	Offset  int64
	Length  int64
	Pattern FourCC
}

// PayloadOffset returns the file offset where the chunk payload begins.
func (c Chunk) PayloadOffset() int64 {
	return c.Offset + ChunkHeaderSize
}

// End returns the offset of the byte following the padded payload.
func (c Chunk) End() int64 {
	return c.Offset + ChunkHeaderSize + c.Length
}

// String returns a compact description, e.g. "COMM@12+18".
func (c Chunk) String() string {
	return fmt.Sprintf("%s@%d+%d", c.Pattern, c.Offset, c.Length)
}
