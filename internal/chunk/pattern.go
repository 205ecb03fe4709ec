// Package chunk indexes and searches the chunks of a FORM container.
//
// Build walks the container once and returns an immutable Index. Find and
// FindBefore are pure queries over the resulting descriptor list.
package chunk

import (
	"slices"

	"github.com/simonhull/audiochunks/internal/types"
)

// Well-known chunk identifiers.
var (
	FORM      = types.FourCC{'F', 'O', 'R', 'M'}
	COMM      = types.FourCC{'C', 'O', 'M', 'M'}
	INST      = types.FourCC{'I', 'N', 'S', 'T'}
	MARK      = types.FourCC{'M', 'A', 'R', 'K'}
	SKIP      = types.FourCC{'S', 'K', 'I', 'P'}
	SSND      = types.FourCC{'S', 'S', 'N', 'D'}
	NAME      = types.FourCC{'N', 'A', 'M', 'E'}
	FVER      = types.FourCC{'F', 'V', 'E', 'R'}
	MIDI      = types.FourCC{'M', 'I', 'D', 'I'}
	AESD      = types.FourCC{'A', 'E', 'S', 'D'}
	APPL      = types.FourCC{'A', 'P', 'P', 'L'}
	COMT      = types.FourCC{'C', 'O', 'M', 'T'}
	AUTH      = types.FourCC{'A', 'U', 'T', 'H'}
	Copyright = types.FourCC{'(', 'c', ')', ' '}
	ANNO      = types.FourCC{'A', 'N', 'N', 'O'}
	ID3       = types.FourCC{'I', 'D', '3', ' '}
	FLLR      = types.FourCC{'F', 'L', 'L', 'R'}
)

// known is the set of identifiers accepted by IsValid.
var known = map[types.FourCC]struct{}{
	FORM:      {},
	COMM:      {},
	INST:      {},
	MARK:      {},
	SKIP:      {},
	SSND:      {},
	NAME:      {},
	FVER:      {},
	MIDI:      {},
	AESD:      {},
	APPL:      {},
	COMT:      {},
	AUTH:      {},
	Copyright: {},
	ANNO:      {},
	ID3:       {},
	FLLR:      {},
}

// IsValid reports whether p is one of the recognised chunk identifiers.
// Comparison is byte-exact; "comm" and "ID3\x00" are not valid.
func IsValid(p types.FourCC) bool {
	_, ok := known[p]
	return ok
}

// Known returns the recognised identifiers in byte order.
func Known() []types.FourCC {
	ids := make([]types.FourCC, 0, len(known))
	for id := range known {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b types.FourCC) int {
		return slices.Compare(a[:], b[:])
	})
	return ids
}
