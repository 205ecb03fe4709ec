package audiochunks

import (
	"io"

	"github.com/simonhull/audiochunks/internal/types"
)

// Format identifies the container layout of a file.
type Format = types.Format

// Supported formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatAIFF    = types.FormatAIFF
	FormatDSF     = types.FormatDSF
)

// DetectFormat determines the format from the first four bytes of r.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
