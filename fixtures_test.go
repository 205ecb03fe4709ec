package audiochunks_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// aiffBytes builds a small AIFF file: COMM (stereo, 16-bit, 44.1kHz, 2s),
// NAME, SSND and an ID3 chunk.
func aiffBytes(tb testing.TB) []byte {
	tb.Helper()

	var comm bytes.Buffer
	_ = binary.Write(&comm, binary.BigEndian, uint16(2))
	_ = binary.Write(&comm, binary.BigEndian, uint32(88200))
	_ = binary.Write(&comm, binary.BigEndian, uint16(16))
	frac, exp := math.Frexp(44100)
	_ = binary.Write(&comm, binary.BigEndian, uint16(exp-1+16383))
	_ = binary.Write(&comm, binary.BigEndian, uint64(math.Ldexp(frac, 64)))

	chunks := []struct {
		id      string
		payload []byte
	}{
		{"COMM", comm.Bytes()},
		{"NAME", []byte("Freddie Freeloader")},
		{"SSND", make([]byte, 16)},
		{"ID3 ", id3Bytes(tb, "Freddie Freeloader", "Miles Davis")},
	}

	var body bytes.Buffer
	body.WriteString("AIFF")
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

// dsfBytes builds a DSD64 stereo DSF file of 11 seconds with an ID3 tag.
// A non-zero declaredSize overrides the file size field.
func dsfBytes(tb testing.TB, declaredSize uint64) []byte {
	tb.Helper()

	le := binary.LittleEndian
	var buf bytes.Buffer

	buf.WriteString("DSD ")
	_ = binary.Write(&buf, le, uint64(28))
	_ = binary.Write(&buf, le, uint64(0))
	_ = binary.Write(&buf, le, uint64(108))

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, le, uint64(52))
	for _, v := range []uint32{1, 0, 2, 2, 2822400, 1} {
		_ = binary.Write(&buf, le, v)
	}
	_ = binary.Write(&buf, le, uint64(31046400))
	_ = binary.Write(&buf, le, uint32(4096))
	_ = binary.Write(&buf, le, uint32(0))

	buf.WriteString("data")
	_ = binary.Write(&buf, le, uint64(28))
	buf.Write(make([]byte, 16))

	buf.Write(id3Bytes(tb, "So What", "Miles Davis"))

	data := buf.Bytes()
	if declaredSize == 0 {
		declaredSize = uint64(len(data))
	}
	le.PutUint64(data[12:20], declaredSize)
	return data
}

func id3Bytes(tb testing.TB, title, artist string) []byte {
	tb.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	tag.SetArtist(artist)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		tb.Fatalf("WriteTo() error = %v", err)
	}
	return buf.Bytes()
}

// writeFile stores data under dir and returns the path.
func writeFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}
