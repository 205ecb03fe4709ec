package audiochunks

import (
	"github.com/simonhull/audiochunks/internal/types"
)

// Tags holds metadata from an ID3 tag block and AIFF text chunks.
type Tags = types.Tags
