package types

import "fmt"

// DSFHeader holds the fields of a DSF "DSD " chunk and its "fmt " chunk.
//
// All values are taken verbatim from the file; nothing is normalised.
type DSFHeader struct {
	ChunkSize     uint64 // size of the "DSD " chunk
	FileSize      uint64 // declared total file size
	TagPosition   uint64 // absolute offset of the metadata chunk, 0 if none
	FmtSize       uint64
	FormatVersion uint32
	FormatID      uint32
	ChannelType   uint32
	ChannelCount  uint32
	SampleRate    uint32
	BitsPerSample uint32
	SampleCount   uint64 // per channel
}

// ChannelLayout names the speaker layout encoded in ChannelType.
func (h DSFHeader) ChannelLayout() string {
	switch h.ChannelType {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 3:
		return "3 channels"
	case 4:
		return "quad"
	case 5:
		return "4 channels"
	case 6:
		return "5 channels"
	case 7:
		return "5.1"
	default:
		return fmt.Sprintf("unknown (%d)", h.ChannelType)
	}
}

// TagBlock is the half-open byte range [Start, End) of an embedded tag block.
type TagBlock struct {
	Start int64
	End   int64
}

// Size returns the number of bytes in the block.
func (b TagBlock) Size() int64 {
	return b.End - b.Start
}

// String returns "[start, end)".
func (b TagBlock) String() string {
	return fmt.Sprintf("[%d, %d)", b.Start, b.End)
}
