package aiff

import (
	"fmt"
	"math"
	"time"

	"github.com/simonhull/audiochunks/internal/binary"
	"github.com/simonhull/audiochunks/internal/types"
)

// commSize is the size of an AIFF COMM payload. AIFC appends a
// compression type and a pascal-string name.
const commSize = 18

// maxSampleRate bounds the COMM sample rate so it always fits an int.
const maxSampleRate = math.MaxInt32

// comm holds the decoded fields of a COMM chunk.
type comm struct {
	compression  string
	sampleRate   float64
	sampleFrames uint32
	channels     uint16
	sampleSize   uint16
}

// parseComm decodes the COMM chunk c.
//
// Layout (big-endian):
//
//	0  u16 channels
//	2  u32 sample frames
//	6  u16 sample size in bits
//	8  80-bit IEEE 754 extended sample rate
//	18 AIFC only: 4-byte compression type
func parseComm(sr *binary.SafeReader, c types.Chunk, aifc bool) (comm, error) {
	var out comm

	if c.Length < commSize {
		return out, fmt.Errorf("COMM chunk too short: %d bytes", c.Length)
	}

	buf := make([]byte, commSize)
	if err := sr.ReadAt(buf, c.PayloadOffset(), "COMM chunk"); err != nil {
		return out, err
	}

	out.channels = uint16(binary.ToUnsigned(buf[0:2], binary.BigEndian))
	out.sampleFrames = uint32(binary.ToUnsigned(buf[2:6], binary.BigEndian))
	out.sampleSize = uint16(binary.ToUnsigned(buf[6:8], binary.BigEndian))
	out.sampleRate = extendedToFloat(buf[8:18])
	if r := out.sampleRate; math.IsNaN(r) || r <= 0 || r > maxSampleRate {
		return out, fmt.Errorf("COMM sample rate %v out of range", r)
	}

	if aifc && c.Length >= commSize+4 {
		id := make([]byte, 4)
		if err := sr.ReadAt(id, c.PayloadOffset()+commSize, "AIFC compression type"); err != nil {
			return out, err
		}
		out.compression = string(id)
	}

	return out, nil
}

// extendedToFloat converts an 80-bit IEEE 754 extended precision number.
//
// Layout: 1 sign bit, 15 exponent bits (bias 16383), 64 mantissa bits with
// an explicit integer bit.
func extendedToFloat(b []byte) float64 {
	se := uint16(binary.ToUnsigned(b[0:2], binary.BigEndian))
	mant := binary.ToUnsigned(b[2:10], binary.BigEndian)

	exp := int(se & 0x7FFF)
	if exp == 0 && mant == 0 {
		return 0
	}
	if exp == 0x7FFF {
		return math.Inf(1)
	}

	v := math.Ldexp(float64(mant), exp-16383-63)
	if se&0x8000 != 0 {
		v = -v
	}
	return v
}

// audioInfo derives playback properties from the COMM fields.
// parseComm guarantees a positive, finite sample rate.
func (c comm) audioInfo(formType string) types.AudioInfo {
	info := types.AudioInfo{
		Container:  formType,
		SampleRate: int(math.Round(c.sampleRate)),
		BitDepth:   int(c.sampleSize),
		Channels:   int(c.channels),
	}
	info.Codec, info.CodecDescription, info.Lossless = codec(c.compression)

	seconds := float64(c.sampleFrames) / c.sampleRate
	info.Duration = time.Duration(seconds * float64(time.Second))
	info.Bitrate = types.BitrateKbps(uint64(info.SampleRate), uint64(c.channels), uint64(c.sampleSize))

	return info
}

// codec maps an AIFC compression type to a codec name.
// An empty type is plain AIFF, which is always big-endian PCM.
func codec(compression string) (name, description string, lossless bool) {
	switch compression {
	case "", "NONE", "twos":
		return "PCM", "Linear PCM, big-endian", true
	case "sowt":
		return "PCM", "Linear PCM, little-endian", true
	case "fl32", "FL32":
		return "PCM", "32-bit float PCM", true
	case "fl64", "FL64":
		return "PCM", "64-bit float PCM", true
	case "ulaw", "ULAW":
		return "G.711", "mu-law", false
	case "alaw", "ALAW":
		return "G.711", "A-law", false
	case "ima4":
		return "IMA4", "IMA 4:1 ADPCM", false
	default:
		return compression, "AIFC " + compression, false
	}
}
