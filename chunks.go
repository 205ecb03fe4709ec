package audiochunks

import (
	"github.com/simonhull/audiochunks/internal/chunk"
	"github.com/simonhull/audiochunks/internal/types"
)

// FourCC is a 4-byte chunk identifier.
type FourCC = types.FourCC

// Chunk describes one chunk of an AIFF file.
type Chunk = types.Chunk

// DSFHeader holds the decoded "DSD " and "fmt " chunk fields of a DSF file.
type DSFHeader = types.DSFHeader

// TagBlock is the half-open byte range of an embedded tag block.
type TagBlock = types.TagBlock

// Chunk identifiers recognised in AIFF files.
var (
	ChunkFORM      = chunk.FORM
	ChunkCOMM      = chunk.COMM
	ChunkINST      = chunk.INST
	ChunkMARK      = chunk.MARK
	ChunkSKIP      = chunk.SKIP
	ChunkSSND      = chunk.SSND
	ChunkNAME      = chunk.NAME
	ChunkFVER      = chunk.FVER
	ChunkMIDI      = chunk.MIDI
	ChunkAESD      = chunk.AESD
	ChunkAPPL      = chunk.APPL
	ChunkCOMT      = chunk.COMT
	ChunkAUTH      = chunk.AUTH
	ChunkCopyright = chunk.Copyright
	ChunkANNO      = chunk.ANNO
	ChunkID3       = chunk.ID3
	ChunkFLLR      = chunk.FLLR
)

// ParseFourCC converts a 4-character string into a FourCC.
func ParseFourCC(s string) (FourCC, error) {
	return types.ParseFourCC(s)
}

// KnownChunkIDs returns every recognised AIFF chunk identifier in byte order.
func KnownChunkIDs() []FourCC {
	return chunk.Known()
}

// IsValidChunkID reports whether id is a recognised AIFF chunk identifier.
func IsValidChunkID(id FourCC) bool {
	return chunk.IsValid(id)
}
