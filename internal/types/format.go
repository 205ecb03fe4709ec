package types

import (
	"io"

	"github.com/simonhull/audiochunks/internal/binary"
)

// Format represents the detected audio format
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota // Unknown
	// FormatAIFF represents AIFF and AIFF-C audio files.
	FormatAIFF // AIFF
	// FormatDSF represents DSD stream files.
	FormatDSF // DSF
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatAIFF:
		return "AIFF"
	case FormatDSF:
		return "DSF"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatAIFF:
		return []string{".aiff", ".aif", ".aifc"}
	case FormatDSF:
		return []string{".dsf"}
	default:
		return nil
	}
}

// MIMETypes returns the MIME types this format is known under.
func (f Format) MIMETypes() []string {
	switch f {
	case FormatAIFF:
		return []string{"audio/aiff", "audio/x-aiff"}
	case FormatDSF:
		return []string{"audio/dsf", "audio/x-dsf", "sound/dsf", "application/x-dsf"}
	default:
		return nil
	}
}

// Container magic bytes.
var (
	aiffMagic = []byte("FORM")
	dsfMagic  = []byte("DSD ")
)

// DetectFormat determines the audio file format from its first four bytes.
//
// Supported formats: AIFF ("FORM"), DSF ("DSD ").
//
// Detection does not validate anything past the magic; the format parser
// rejects malformed structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	switch string(magic) {
	case string(aiffMagic):
		return FormatAIFF, nil
	case string(dsfMagic):
		return FormatDSF, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
