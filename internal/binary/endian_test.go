package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestToUnsigned(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		endian Endianness
		want   uint64
	}{
		{"empty", nil, BigEndian, 0},
		{"single byte BE", []byte{0x7F}, BigEndian, 0x7F},
		{"single byte LE", []byte{0x7F}, LittleEndian, 0x7F},
		{"chunk length BE", []byte{0x00, 0x00, 0x00, 0x12}, BigEndian, 18},
		{"chunk length LE", []byte{0x12, 0x00, 0x00, 0x00}, LittleEndian, 18},
		{"three bytes BE", []byte{0x01, 0x02, 0x03}, BigEndian, 0x010203},
		{"three bytes LE", []byte{0x01, 0x02, 0x03}, LittleEndian, 0x030201},
		{"uint64 LE", []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, LittleEndian, 0x0807060504030201},
		{"max uint32 BE", []byte{0xFF, 0xFF, 0xFF, 0xFF}, BigEndian, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToUnsigned(tt.in, tt.endian); got != tt.want {
				t.Errorf("ToUnsigned(%x, %s) = %#x, want %#x", tt.in, tt.endian, got, tt.want)
			}
		})
	}
}

func TestReadEndian_LittleEndianWidths(t *testing.T) {
	buf := &bytes.Buffer{}

	// uint16: 513
	binary.Write(buf, binary.LittleEndian, uint16(513))

	// uint32: 2822400 (a DSD64 sample rate)
	binary.Write(buf, binary.LittleEndian, uint32(2822400))

	// uint64: 31046400 (a DSF sample count)
	binary.Write(buf, binary.LittleEndian, uint64(31046400))

	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.dsf")

	tests := []struct {
		readFunc func() (uint64, error)
		name     string
		want     uint64
	}{
		{
			name: "uint16 little-endian",
			want: 513,
			readFunc: func() (uint64, error) {
				val, err := ReadEndian[uint16](sr, 0, "uint16", LittleEndian)
				return uint64(val), err
			},
		},
		{
			name: "uint32 little-endian",
			want: 2822400,
			readFunc: func() (uint64, error) {
				val, err := ReadEndian[uint32](sr, 2, "uint32", LittleEndian)
				return uint64(val), err
			},
		},
		{
			name: "uint64 little-endian",
			want: 31046400,
			readFunc: func() (uint64, error) {
				val, err := ReadEndian[uint64](sr, 6, "uint64", LittleEndian)
				return val, err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.readFunc()
			if err != nil {
				t.Fatalf("ReadEndian failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadEndian() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadBE(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint16(258))
	binary.Write(buf, binary.BigEndian, uint32(16909060))

	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.aif")

	v16, err := ReadBE[uint16](sr, 0, "uint16")
	if err != nil {
		t.Fatalf("ReadBE uint16 failed: %v", err)
	}
	if v16 != 258 {
		t.Errorf("ReadBE[uint16] = %d, want 258", v16)
	}

	v32, err := ReadBE[uint32](sr, 2, "uint32")
	if err != nil {
		t.Fatalf("ReadBE uint32 failed: %v", err)
	}
	if v32 != 16909060 {
		t.Errorf("ReadBE[uint32] = %d, want 16909060", v32)
	}
}

func TestReadEndian(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")

	t.Run("uint32 big-endian", func(t *testing.T) {
		val, err := ReadEndian[uint32](sr, 0, "test", BigEndian)
		if err != nil {
			t.Fatalf("ReadEndian failed: %v", err)
		}
		if val != 0x01020304 {
			t.Errorf("ReadEndian(BigEndian) = %#x, want 0x01020304", val)
		}
	})

	t.Run("uint32 little-endian", func(t *testing.T) {
		val, err := ReadEndian[uint32](sr, 0, "test", LittleEndian)
		if err != nil {
			t.Fatalf("ReadEndian failed: %v", err)
		}
		if val != 0x04030201 {
			t.Errorf("ReadEndian(LittleEndian) = %#x, want 0x04030201", val)
		}
	})

	t.Run("past end", func(t *testing.T) {
		if _, err := ReadEndian[uint64](sr, 0, "test", BigEndian); err == nil {
			t.Error("expected error reading 8 bytes from a 4 byte source")
		}
	})
}

// The DSF tag-size field is the one big-endian value in an otherwise
// little-endian header.
func TestEndianness_MixedHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint64(92))
	binary.Write(buf, binary.BigEndian, uint32(1000))

	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")

	size, err := ReadEndian[uint64](sr, 0, "fileSize", LittleEndian)
	if err != nil {
		t.Fatalf("ReadEndian failed: %v", err)
	}
	if size != 92 {
		t.Errorf("fileSize = %d, want 92", size)
	}

	tagSize, err := ReadBE[uint32](sr, 8, "tag size")
	if err != nil {
		t.Fatalf("ReadBE failed: %v", err)
	}
	if tagSize != 1000 {
		t.Errorf("tag size = %d, want 1000", tagSize)
	}
}

func BenchmarkReadBE_Uint32(b *testing.B) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ReadBE[uint32](sr, 0, "uint32")
	}
}
