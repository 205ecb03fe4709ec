package audiochunks

import (
	"github.com/simonhull/audiochunks/internal/types"
)

// AudioInfo holds technical audio properties.
type AudioInfo = types.AudioInfo
