// Package dsf decodes the fixed header of DSD stream files.
//
// A DSF file starts with a "DSD " chunk and a "fmt " chunk, little-endian
// throughout:
//
//	0   "DSD "
//	4   u64 chunk size (28)
//	12  u64 total file size
//	20  u64 absolute offset of the metadata chunk, 0 if none
//	28  "fmt "
//	32  u64 fmt chunk size
//	40  u32 format version
//	44  u32 format id
//	48  u32 channel type
//	52  u32 channel count
//	56  u32 sampling frequency
//	60  u32 bits per sample
//	64  u64 sample count per channel
//
// The metadata chunk, when present, holds an ID3v2 tag.
package dsf

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/simonhull/audiochunks/internal/binary"
	"github.com/simonhull/audiochunks/internal/types"
)

var (
	dsdMagic = "DSD "
	fmtMagic = "fmt "
)

// errZeroSampleRate is the cause reported when the fmt chunk declares a
// sampling frequency of 0.
var errZeroSampleRate = errors.New("sampling frequency is zero")

// errDurationOverflow is the cause reported when sampleCount/sampleRate
// does not fit in a time.Duration.
var errDurationOverflow = errors.New("duration out of range")

// maxSeconds is the largest whole-second count a time.Duration holds.
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Result is the outcome of ParseHeader.
type Result struct {
	TagBlock *types.TagBlock
	Warnings []types.Warning
	Header   types.DSFHeader
	Audio    types.AudioInfo
}

// ParseHeader decodes the DSF header behind s.
//
// A wrong "DSD " or "fmt " magic returns *types.CorruptedFileError with
// Reason "bad magic" or "bad fmt". Every other failure returns
// *types.CorruptedFileError with Reason "failed to parse header" and the
// cause in Err. That includes reads past the end of s, a zero sampling
// frequency and a duration too long for time.Duration.
//
// A declared file size that differs from s.Length() is reported as a
// warning. Duration is whole seconds (sample count divided by sampling
// frequency, truncated); Bitrate is rate*channels*bits/1000 rounded half
// to even.
func ParseHeader(s *binary.Stream) (*Result, error) {
	res, err := parseHeader(s)
	if err == nil {
		return res, nil
	}

	var corrupted *types.CorruptedFileError
	if errors.As(err, &corrupted) {
		return nil, err
	}
	return nil, &types.CorruptedFileError{
		Path:   s.Path(),
		Offset: s.Position(),
		Reason: "failed to parse header",
		Err:    err,
	}
}

func parseHeader(s *binary.Stream) (*Result, error) {
	if err := s.SeekTo(0); err != nil {
		return nil, err
	}

	magic, err := s.ReadBlock(4, "DSD magic")
	if err != nil {
		return nil, err
	}
	if string(magic) != dsdMagic {
		return nil, &types.CorruptedFileError{Path: s.Path(), Offset: 0, Reason: "bad magic"}
	}

	res := &Result{}
	h := &res.Header

	cr := binary.NewChainReader(s)
	h.ChunkSize = binary.ReadChained[uint64](cr, binary.LittleEndian, "DSD chunk size")
	h.FileSize = binary.ReadChained[uint64](cr, binary.LittleEndian, "file size")
	h.TagPosition = binary.ReadChained[uint64](cr, binary.LittleEndian, "metadata pointer")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	if h.FileSize != uint64(s.Length()) {
		res.Warnings = append(res.Warnings, types.Warning{
			Stage:   "header",
			Message: fmt.Sprintf("declared file size %d differs from actual size %d", h.FileSize, s.Length()),
			Offset:  12,
		})
	}

	fmtOffset := s.Position()
	id := cr.Bytes(4, "fmt magic")
	if err := cr.Error(); err != nil {
		return nil, err
	}
	if string(id) != fmtMagic {
		return nil, &types.CorruptedFileError{Path: s.Path(), Offset: fmtOffset, Reason: "bad fmt"}
	}

	h.FmtSize = binary.ReadChained[uint64](cr, binary.LittleEndian, "fmt chunk size")
	h.FormatVersion = binary.ReadChained[uint32](cr, binary.LittleEndian, "format version")
	h.FormatID = binary.ReadChained[uint32](cr, binary.LittleEndian, "format id")
	h.ChannelType = binary.ReadChained[uint32](cr, binary.LittleEndian, "channel type")
	h.ChannelCount = binary.ReadChained[uint32](cr, binary.LittleEndian, "channel count")
	h.SampleRate = binary.ReadChained[uint32](cr, binary.LittleEndian, "sampling frequency")
	h.BitsPerSample = binary.ReadChained[uint32](cr, binary.LittleEndian, "bits per sample")
	h.SampleCount = binary.ReadChained[uint64](cr, binary.LittleEndian, "sample count")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	if h.TagPosition > 0 && h.TagPosition < h.FileSize {
		block, err := readTagBlock(s, h.TagPosition)
		if err != nil {
			return nil, err
		}
		res.TagBlock = block
	}

	if h.SampleRate == 0 {
		return nil, errZeroSampleRate
	}
	secs := h.SampleCount / uint64(h.SampleRate)
	if secs > maxSeconds {
		return nil, fmt.Errorf("%w: %d seconds", errDurationOverflow, secs)
	}

	res.Audio = types.AudioInfo{
		Duration:   time.Duration(secs) * time.Second,
		Bitrate:    types.BitrateKbps(uint64(h.SampleRate), uint64(h.ChannelCount), uint64(h.BitsPerSample)),
		SampleRate: int(h.SampleRate),
		BitDepth:   int(h.BitsPerSample),
		Channels:   int(h.ChannelCount),
	}

	return res, nil
}

// readTagBlock computes the bounds of the metadata chunk at pos from the
// big-endian size stored 4 bytes into it.
func readTagBlock(s *binary.Stream, pos uint64) (*types.TagBlock, error) {
	start := int64(pos)
	if start < 0 {
		return nil, fmt.Errorf("metadata pointer %d out of range", pos)
	}
	if err := s.SeekTo(start + 4); err != nil {
		return nil, err
	}
	size, err := binary.ReadNext[uint32](s, binary.BigEndian, "metadata size")
	if err != nil {
		return nil, err
	}
	return &types.TagBlock{Start: start, End: start + int64(size) + 8}, nil
}
