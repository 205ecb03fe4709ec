package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/audiochunks/internal/registry"
	"github.com/simonhull/audiochunks/internal/types"
)

// testChunk is one chunk to serialise with buildForm.
type testChunk struct {
	id      string
	payload []byte
}

// buildForm serialises a FORM container with a correct declared length.
func buildForm(formType string, chunks ...testChunk) []byte {
	var body bytes.Buffer
	body.WriteString(formType)
	for _, c := range chunks {
		body.WriteString(c.id)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(c.payload)))
		body.Write(c.payload)
		if len(c.payload)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("FORM")
	_ = binary.Write(&buf, binary.BigEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// extended encodes v as an 80-bit IEEE 754 extended float.
func extended(v float64) []byte {
	out := make([]byte, 10)
	if v == 0 {
		return out
	}
	frac, exp := math.Frexp(v)
	binary.BigEndian.PutUint16(out[0:2], uint16(exp-1+16383))
	binary.BigEndian.PutUint64(out[2:10], uint64(math.Ldexp(frac, 64)))
	return out
}

// commPayload builds a COMM payload; compression is appended for AIFC.
func commPayload(channels uint16, frames uint32, bits uint16, rate float64, compression string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, channels)
	_ = binary.Write(&buf, binary.BigEndian, frames)
	_ = binary.Write(&buf, binary.BigEndian, bits)
	buf.Write(extended(rate))
	if compression != "" {
		buf.WriteString(compression)
		buf.WriteByte(0) // empty pascal-string name
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func parse(t *testing.T, data []byte) (*types.File, error) {
	t.Helper()
	return (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "test.aiff")
}

func TestExtendedToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want float64
	}{
		{"44100", []byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}, 44100},
		{"48000", []byte{0x40, 0x0E, 0xBB, 0x80, 0, 0, 0, 0, 0, 0}, 48000},
		{"zero", make([]byte, 10), 0},
		{"negative one", []byte{0xBF, 0xFF, 0x80, 0, 0, 0, 0, 0, 0, 0}, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extendedToFloat(tc.in); got != tc.want {
				t.Errorf("extendedToFloat() = %v, want %v", got, tc.want)
			}
		})
	}

	for _, rate := range []float64{8000, 22050, 96000, 192000, 2822400} {
		if got := extendedToFloat(extended(rate)); got != rate {
			t.Errorf("extendedToFloat(extended(%v)) = %v", rate, got)
		}
	}
}

func TestParser_Registered(t *testing.T) {
	if registry.Get(types.FormatAIFF) == nil {
		t.Fatal("no parser registered for FormatAIFF")
	}
}

func TestParse_AIFF(t *testing.T) {
	data := buildForm("AIFF",
		testChunk{"COMM", commPayload(2, 441000, 16, 44100, "")},
		testChunk{"NAME", []byte("Blue in Green")},
		testChunk{"SSND", make([]byte, 24)},
	)

	file, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if file.FormType != "AIFF" {
		t.Errorf("FormType = %q, want AIFF", file.FormType)
	}
	if len(file.Chunks) != 4 {
		t.Errorf("len(Chunks) = %d, want 4", len(file.Chunks))
	}

	a := file.Audio
	if a.SampleRate != 44100 || a.Channels != 2 || a.BitDepth != 16 {
		t.Errorf("Audio = %+v", a)
	}
	if a.Duration != 10*time.Second {
		t.Errorf("Duration = %v, want 10s", a.Duration)
	}
	if a.Bitrate != 1411 {
		t.Errorf("Bitrate = %d, want 1411", a.Bitrate)
	}
	if a.Codec != "PCM" || !a.Lossless || a.Container != "AIFF" {
		t.Errorf("Audio codec = %q lossless=%v container=%q", a.Codec, a.Lossless, a.Container)
	}

	if file.Tags.Title != "Blue in Green" {
		t.Errorf("Title = %q, want %q", file.Tags.Title, "Blue in Green")
	}
	if got := file.Tags.GetFirst("NAME"); got != "Blue in Green" {
		t.Errorf("GetFirst(NAME) = %q", got)
	}
	if len(file.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", file.Warnings)
	}
}

func TestParse_AIFC(t *testing.T) {
	data := buildForm("AIFC",
		testChunk{"FVER", []byte{0xA2, 0x80, 0x51, 0x40}},
		testChunk{"COMM", commPayload(1, 48000, 16, 48000, "sowt")},
		testChunk{"SSND", make([]byte, 8)},
	)

	file, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if file.FormType != "AIFC" {
		t.Errorf("FormType = %q, want AIFC", file.FormType)
	}
	if file.Audio.CodecDescription != "Linear PCM, little-endian" {
		t.Errorf("CodecDescription = %q", file.Audio.CodecDescription)
	}
	if file.Audio.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", file.Audio.Duration)
	}
}

func TestParse_CommAfterSoundData(t *testing.T) {
	data := buildForm("AIFF",
		testChunk{"SSND", make([]byte, 8)},
		testChunk{"COMM", commPayload(2, 100, 16, 44100, "")},
	)

	file, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if file.Audio.SampleRate != 0 {
		t.Errorf("SampleRate = %d, want 0 (COMM after SSND is ignored)", file.Audio.SampleRate)
	}
	if len(file.Warnings) != 1 || file.Warnings[0].Stage != "technical" {
		t.Errorf("Warnings = %v, want one technical warning", file.Warnings)
	}
}

func TestParse_ShortComm(t *testing.T) {
	data := buildForm("AIFF",
		testChunk{"COMM", make([]byte, 10)},
	)

	file, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(file.Warnings) != 1 || file.Warnings[0].Offset != 12 {
		t.Errorf("Warnings = %v, want one warning at offset 12", file.Warnings)
	}
}

func TestParse_CommSampleRateOutOfRange(t *testing.T) {
	rateBytes := func(rate []byte) []byte {
		p := commPayload(2, 100, 16, 44100, "")
		copy(p[8:18], rate)
		return p
	}

	tests := []struct {
		name string
		comm []byte
	}{
		{"infinite", rateBytes([]byte{0x7F, 0xFF, 0x80, 0, 0, 0, 0, 0, 0, 0})},
		{"negative", rateBytes([]byte{0xBF, 0xFF, 0x80, 0, 0, 0, 0, 0, 0, 0})},
		{"zero", commPayload(2, 100, 16, 0, "")},
		{"too large for int32", commPayload(2, 100, 16, 1e12, "")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := buildForm("AIFF",
				testChunk{"COMM", tc.comm},
				testChunk{"SSND", make([]byte, 8)},
			)

			file, err := parse(t, data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(file.Warnings) != 1 || file.Warnings[0].Stage != "technical" || file.Warnings[0].Offset != 12 {
				t.Errorf("Warnings = %v, want one technical warning at offset 12", file.Warnings)
			}
			if a := file.Audio; a.SampleRate != 0 || a.Duration != 0 || a.Bitrate != 0 {
				t.Errorf("Audio = %+v, want no rate, duration or bitrate", a)
			}
			if file.Audio.Container != "AIFF" {
				t.Errorf("Container = %q, want AIFF", file.Audio.Container)
			}
		})
	}
}

func TestParse_ID3Chunk(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle("So What")
	tag.SetArtist("Miles Davis")
	var raw bytes.Buffer
	if _, err := tag.WriteTo(&raw); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	data := buildForm("AIFF",
		testChunk{"COMM", commPayload(2, 44100, 16, 44100, "")},
		testChunk{"SSND", make([]byte, 8)},
		testChunk{"NAME", []byte("ignored title")},
		testChunk{"(c) ", []byte("1959 Columbia")},
		testChunk{"ID3 ", raw.Bytes()},
	)

	file, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if file.Tags.Title != "So What" {
		t.Errorf("Title = %q, want ID3 title %q", file.Tags.Title, "So What")
	}
	if file.Tags.Artist != "Miles Davis" {
		t.Errorf("Artist = %q, want %q", file.Tags.Artist, "Miles Davis")
	}
	if file.Tags.Copyright != "1959 Columbia" {
		t.Errorf("Copyright = %q, want text chunk value", file.Tags.Copyright)
	}
	if got := file.Tags.GetFirst("(c)"); got != "1959 Columbia" {
		t.Errorf("GetFirst(\"(c)\") = %q, want %q", got, "1959 Columbia")
	}
	if got := file.Tags.Get("(c) "); got != nil {
		t.Errorf("Get(\"(c) \") = %v, want nil", got)
	}
	if got := file.Tags.GetFirst("NAME"); got != "ignored title" {
		t.Errorf("GetFirst(NAME) = %q, want the text chunk value", got)
	}
}

func TestParse_InvalidChunk(t *testing.T) {
	data := buildForm("AIFF",
		testChunk{"COMM", commPayload(2, 100, 16, 44100, "")},
		testChunk{"JUNK", make([]byte, 4)},
	)

	_, err := parse(t, data)

	var fe *types.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Parse() error = %v, want *types.FormatError", err)
	}
}
