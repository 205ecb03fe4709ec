package chunk

import "github.com/simonhull/audiochunks/internal/types"

// Find returns the offset of the first descriptor, in list order, whose
// Offset is at least start and whose Pattern equals pattern. It returns -1
// when no descriptor qualifies.
//
// Example:
//
//	off := chunk.Find(idx.Chunks(), chunk.ID3, 0)
//	if off < 0 {
//		// no tag chunk
//	}
func Find(chunks []types.Chunk, pattern types.FourCC, start int64) int64 {
	return search(chunks, pattern, start, nil)
}

// FindBefore is like Find but, when a before chunk exists at or after
// start, only descriptors ahead of it in the list are considered. When no
// such before chunk exists the result equals Find.
//
// Example:
//
//	// COMM must precede the sound data
//	off := chunk.FindBefore(idx.Chunks(), chunk.COMM, 0, chunk.SSND)
func FindBefore(chunks []types.Chunk, pattern types.FourCC, start int64, before types.FourCC) int64 {
	return search(chunks, pattern, start, &before)
}

// search implements both queries.
func search(chunks []types.Chunk, pattern types.FourCC, start int64, before *types.FourCC) int64 {
	limit := len(chunks)
	if before != nil {
		if i := indexOf(chunks, *before, start, len(chunks)); i >= 0 {
			limit = i
		}
	}

	if i := indexOf(chunks, pattern, start, limit); i >= 0 {
		return chunks[i].Offset
	}
	return -1
}

// indexOf returns the list position of the first match in chunks[:limit], or -1.
func indexOf(chunks []types.Chunk, pattern types.FourCC, start int64, limit int) int {
	for i, c := range chunks[:limit] {
		if c.Offset >= start && c.Pattern == pattern {
			return i
		}
	}
	return -1
}
