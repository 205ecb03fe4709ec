package binary

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: AIFF chunk lengths and COMM fields, the DSF tag-size field.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: every numeric field of the DSF header.
	LittleEndian
)

// String returns "BE" or "LE".
func (e Endianness) String() string {
	if e == LittleEndian {
		return "LE"
	}
	return "BE"
}

// ToUnsigned decodes b as an unsigned integer in the given byte order.
//
// b may be 1 to 8 bytes long; longer input only keeps the low 64 bits
// of the value. An empty slice decodes as 0.
//
// Example:
//
//	length := binary.ToUnsigned(header[4:8], binary.BigEndian)
func ToUnsigned(b []byte, endian Endianness) uint64 {
	var v uint64
	if endian == LittleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return v
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
//
// Example:
//
//	textLength, err := binary.ReadBE[uint32](sr, c.Offset+4, "NAME length")
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
//
// ReadBE is the big-endian shorthand.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var zero T

	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	return T(ToUnsigned(buf, endian)), nil
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
