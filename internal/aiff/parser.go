// Package aiff reads the chunk layout of AIFF and AIFF-C files.
package aiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/audiochunks/internal/binary"
	"github.com/simonhull/audiochunks/internal/chunk"
	"github.com/simonhull/audiochunks/internal/id3"
	"github.com/simonhull/audiochunks/internal/registry"
	"github.com/simonhull/audiochunks/internal/types"
)

func init() {
	registry.Register(types.FormatAIFF, &parser{})
}

// parser implements registry.FormatParser for AIFF/AIFC files.
type parser struct{}

// textChunks maps AIFF text chunks to the Tags field they fill. The raw
// value is also kept under the chunk id without its padding spaces, so
// the copyright chunk "(c) " is stored as "(c)".
var textChunks = []struct {
	id  types.FourCC
	set func(*types.Tags, string)
}{
	{chunk.NAME, func(t *types.Tags, v string) { t.Title = v }},
	{chunk.AUTH, func(t *types.Tags, v string) { t.Artist = v }},
	{chunk.Copyright, func(t *types.Tags, v string) { t.Copyright = v }},
	{chunk.ANNO, func(t *types.Tags, v string) { t.Comment = v }},
}

// Parse indexes the file's chunks and reads COMM, the ID3 chunk and the
// text chunks.
//
// Only a broken chunk structure is fatal. A missing COMM chunk or an
// unreadable tag is reported as a warning.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binary.NewSafeReader(r, size, path)
	s := binary.NewStream(sr)

	idx, err := chunk.Build(s)
	if err != nil {
		return nil, err
	}

	file := &types.File{Chunks: idx.Chunks()}

	formType := make([]byte, 4)
	if err := sr.ReadAt(formType, 8, "form type"); err != nil {
		return nil, fmt.Errorf("read form type: %w", err)
	}
	file.FormType = string(formType)
	aifc := file.FormType == "AIFC"

	// Technical info
	if off := idx.FindBefore(chunk.COMM, 0, chunk.SSND); off < 0 {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "technical",
			Message: "no COMM chunk before sound data",
		})
	} else {
		c, _ := chunkAt(idx, off)
		fields, err := parseComm(sr, c, aifc)
		if err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "technical",
				Message: err.Error(),
				Offset:  off,
			})
		} else {
			file.Audio = fields.audioInfo(file.FormType)
		}
	}
	if file.Audio.Container == "" {
		file.Audio.Container = file.FormType
	}

	// Metadata: ID3 first, text chunks fill what it left empty.
	if off := idx.Find(chunk.ID3, 0); off >= 0 {
		c, _ := chunkAt(idx, off)
		tags, err := id3.Decode(r, c.PayloadOffset(), c.Length)
		if err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "metadata",
				Message: fmt.Sprintf("unreadable ID3 chunk: %v", err),
				Offset:  off,
			})
		} else {
			file.Tags = tags
		}
	}

	var text types.Tags
	for _, tc := range textChunks {
		off := idx.Find(tc.id, 0)
		if off < 0 {
			continue
		}
		c, _ := chunkAt(idx, off)
		v, err := readText(sr, c)
		if err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "metadata",
				Message: err.Error(),
				Offset:  off,
			})
			continue
		}
		tc.set(&text, v)
		text.Set(strings.TrimRight(tc.id.String(), " "), v)
	}
	file.Tags.Merge(&text)

	return file, nil
}

// chunkAt returns the descriptor starting at off.
func chunkAt(idx *chunk.Index, off int64) (types.Chunk, bool) {
	for _, c := range idx.All() {
		if c.Offset == off {
			return c, true
		}
	}
	return types.Chunk{}, false
}

// readText reads a text chunk payload, using the unpadded length from the
// chunk header and dropping trailing NULs and spaces.
func readText(sr *binary.SafeReader, c types.Chunk) (string, error) {
	n, err := binary.ReadBE[uint32](sr, c.Offset+4, c.Pattern.String()+" length")
	if err != nil {
		return "", err
	}

	buf := make([]byte, n)
	if err := sr.ReadAt(buf, c.PayloadOffset(), c.Pattern.String()+" text"); err != nil {
		return "", err
	}

	buf = bytes.TrimRight(buf, "\x00")
	return strings.TrimSpace(string(buf)), nil
}
