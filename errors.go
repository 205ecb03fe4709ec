package audiochunks

import (
	"github.com/simonhull/audiochunks/internal/types"
)

// OutOfBoundsError is returned when a read falls outside the file.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is returned for files that are neither AIFF nor DSF.
type UnsupportedFormatError = types.UnsupportedFormatError

// FormatError is returned when the chunk structure of an AIFF file is invalid.
type FormatError = types.FormatError

// CorruptedFileError is returned when a DSF header cannot be decoded.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedWriteError is returned by File.Save.
type UnsupportedWriteError = types.UnsupportedWriteError

// Warning is a non-fatal issue found while parsing.
type Warning = types.Warning
