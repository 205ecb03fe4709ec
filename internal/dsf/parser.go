package dsf

import (
	"fmt"
	"io"

	"github.com/simonhull/audiochunks/internal/binary"
	"github.com/simonhull/audiochunks/internal/id3"
	"github.com/simonhull/audiochunks/internal/registry"
	"github.com/simonhull/audiochunks/internal/types"
)

func init() {
	registry.Register(types.FormatDSF, &parser{})
}

// parser implements registry.FormatParser for DSF files.
type parser struct{}

// Parse decodes the DSF header and the ID3v2 tag it points at.
//
// The header is authoritative: a tag that cannot be decoded only adds a
// warning.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	s := binary.NewStream(binary.NewSafeReader(r, size, path))

	res, err := ParseHeader(s)
	if err != nil {
		return nil, err
	}

	file := &types.File{
		Header:   &res.Header,
		TagBlock: res.TagBlock,
		Audio:    res.Audio,
		Warnings: res.Warnings,
	}
	file.Audio.Codec = "DSD"
	file.Audio.CodecDescription = "Dsd Audio"
	file.Audio.Container = "DSF"
	file.Audio.Lossless = true

	if res.TagBlock != nil {
		p.decodeTags(file, r, size)
	}

	return file, nil
}

// decodeTags reads the ID3v2 tag from the start of the tag block to the end
// of the file. The ID3 header carries its own size, so the block end is not
// used as a limit.
func (p *parser) decodeTags(file *types.File, r io.ReaderAt, size int64) {
	start := file.TagBlock.Start
	tags, err := id3.Decode(r, start, size-start)
	if err != nil {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "metadata",
			Message: fmt.Sprintf("unreadable ID3v2 tag: %v", err),
			Offset:  start,
		})
		return
	}
	file.Tags = tags
}
