package chunk

import (
	"bytes"
	"encoding/binary"

	bin "github.com/simonhull/audiochunks/internal/binary"
)

// testChunk is one chunk to serialise with buildForm.
type testChunk struct {
	id      string
	payload []byte
}

// buildForm serialises a FORM container with a correct declared length.
// Odd payloads get a trailing pad byte but keep their odd length field.
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

func newStream(data []byte) *bin.Stream {
	return bin.NewStream(bin.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.aiff"))
}
