package chunk

import (
	"errors"
	"iter"
	"slices"

	"github.com/simonhull/audiochunks/internal/binary"
	"github.com/simonhull/audiochunks/internal/types"
)

// prologueSize covers "FORM", the container length and the form type.
const prologueSize = 12

// Index is the ordered list of chunk descriptors of one container.
//
// Descriptor 0 is the container prologue; the rest follow in file byte
// order. An Index never changes after Build returns it.
type Index struct {
	chunks []types.Chunk
}

// Build walks the container behind s and returns its chunk index.
//
// Layout walked:
//
//	0  "FORM"          magic, becomes descriptor 0
//	4  u32 BE L        declared container length
//	8  form type       skipped
//	12 first chunk     id(4) + u32 BE length + payload, padded to even
//
// Chunks are read while the cursor is below L+8. Any identifier outside
// the recognised set, or a descriptor with a negative offset or
// non-positive length, fails the whole build with *types.FormatError. A
// read past the end of s is reported the same way, with the read error
// as cause. The stream cursor is back at 0 when Build returns.
func Build(s *binary.Stream) (*Index, error) {
	defer func() { _ = s.SeekTo(0) }()

	b := &builder{s: s}

	magic := b.pattern(0)
	length := b.length(0)
	if b.err != nil {
		return nil, b.err
	}
	if err := b.add(0, length, magic); err != nil {
		return nil, err
	}

	end := length + types.ChunkHeaderSize
	for c := int64(prologueSize); c < end; {
		id := b.pattern(c)
		if b.err != nil {
			return nil, b.err
		}
		if !IsValid(id) {
			return nil, b.fail(c, "invalid chunk header", nil)
		}

		n := b.length(c)
		if b.err != nil {
			return nil, b.err
		}
		if n%2 == 1 {
			n++
		}

		if err := b.add(c, n, id); err != nil {
			return nil, err
		}
		c += n + types.ChunkHeaderSize
	}

	return &Index{chunks: b.chunks}, nil
}

// builder keeps the state of one Build walk.
type builder struct {
	s      *binary.Stream
	err    error
	chunks []types.Chunk
}

// pattern reads the 4-byte identifier at off.
func (b *builder) pattern(off int64) types.FourCC {
	var id types.FourCC
	if b.err != nil {
		return id
	}
	if err := b.s.SeekTo(off); err != nil {
		b.err = b.fail(off, "truncated chunk header", err)
		return id
	}
	raw, err := b.s.ReadBlock(4, "chunk id")
	if err != nil {
		b.err = b.fail(off, "truncated chunk header", err)
		return id
	}
	copy(id[:], raw)
	return id
}

// length reads the big-endian u32 length that follows the identifier at off.
func (b *builder) length(off int64) int64 {
	if b.err != nil {
		return 0
	}
	if err := b.s.SeekTo(off + 4); err != nil {
		b.err = b.fail(off, "truncated chunk header", err)
		return 0
	}
	n, err := binary.ReadNext[uint32](b.s, binary.BigEndian, "chunk length")
	if err != nil {
		b.err = b.fail(off, "truncated chunk header", err)
		return 0
	}
	return int64(n)
}

// add validates a descriptor and appends it.
func (b *builder) add(off, length int64, id types.FourCC) error {
	c, err := newChunk(off, length, id)
	if err != nil {
		var fe *types.FormatError
		if errors.As(err, &fe) {
			fe.Path = b.s.Path()
		}
		return err
	}
	b.chunks = append(b.chunks, c)
	return nil
}

func (b *builder) fail(off int64, reason string, cause error) error {
	return &types.FormatError{
		Path:   b.s.Path(),
		Offset: off,
		Reason: reason,
		Err:    cause,
	}
}

// newChunk is the only constructor of descriptors held by an Index.
func newChunk(off, length int64, id types.FourCC) (types.Chunk, error) {
	switch {
	case off < 0:
		return types.Chunk{}, &types.FormatError{Offset: off, Reason: "invalid chunk offset"}
	case length <= 0:
		return types.Chunk{}, &types.FormatError{Offset: off, Reason: "invalid chunk length"}
	case !IsValid(id):
		return types.Chunk{}, &types.FormatError{Offset: off, Reason: "invalid chunk header"}
	}
	return types.Chunk{Offset: off, Length: length, Pattern: id}, nil
}

// Chunks returns a copy of all descriptors, prologue first.
func (idx *Index) Chunks() []types.Chunk {
	return slices.Clone(idx.chunks)
}

// Len returns the number of descriptors including the prologue.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// At returns descriptor i. It panics if i is out of range.
func (idx *Index) At(i int) types.Chunk {
	return idx.chunks[i]
}

// All returns an iterator over the descriptors in file order.
func (idx *Index) All() iter.Seq2[int, types.Chunk] {
	return slices.All(idx.chunks)
}

// Container returns descriptor 0, the container prologue.
func (idx *Index) Container() types.Chunk {
	return idx.chunks[0]
}

// Find returns the offset of the first chunk with the given id at or
// after start, or -1.
func (idx *Index) Find(pattern types.FourCC, start int64) int64 {
	return Find(idx.chunks, pattern, start)
}

// FindBefore is Find restricted to chunks preceding the first before chunk.
func (idx *Index) FindBefore(pattern types.FourCC, start int64, before types.FourCC) int64 {
	return FindBefore(idx.chunks, pattern, start, before)
}
