// Package id3 decodes ID3v2 tag blocks embedded in DSF and AIFF files.
package id3

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/audiochunks/internal/types"
)

// Decode parses the ID3v2 tag stored in r at [off, off+size).
//
// Text, comment and user-defined text frames are kept in the raw map of
// the returned Tags under their frame id ("TXXX:" + description for
// user-defined frames). A range that does not start with an ID3 header
// yields empty Tags and no error.
func Decode(r io.ReaderAt, off, size int64) (types.Tags, error) {
	var tags types.Tags

	tag, err := id3v2.ParseReader(io.NewSectionReader(r, off, size), id3v2.Options{Parse: true})
	if err != nil {
		return tags, fmt.Errorf("id3v2 tag at offset %d: %w", off, err)
	}

	tags.Title = tag.Title()
	tags.Artist = tag.Artist()
	tags.Album = tag.Album()
	tags.Genre = tag.Genre()
	tags.Year = parseYear(tag.Year())
	tags.AlbumArtist = tag.GetTextFrame("TPE2").Text
	tags.Copyright = tag.GetTextFrame("TCOP").Text
	tags.TrackNumber, tags.TrackTotal = parsePosition(tag.GetTextFrame("TRCK").Text)
	tags.DiscNumber, tags.DiscTotal = parsePosition(tag.GetTextFrame("TPOS").Text)

	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok && cf.Text != "" {
			tags.Comment = cf.Text
			break
		}
	}

	for id, frames := range tag.AllFrames() {
		for _, f := range frames {
			switch frame := f.(type) {
			case id3v2.TextFrame:
				tags.Add(id, frame.Text)
			case id3v2.CommentFrame:
				tags.Add(id, frame.Text)
			case id3v2.UserDefinedTextFrame:
				tags.Add("TXXX:"+frame.Description, frame.Value)
			}
		}
	}

	return tags, nil
}

// parseYear extracts the year from "2024" or a timestamp like "2024-03-01".
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}

// parsePosition parses "3" or "3/12" into number and total.
func parsePosition(s string) (number, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}

	num, tot, found := strings.Cut(s, "/")
	number, _ = strconv.Atoi(strings.TrimSpace(num))
	if found {
		total, _ = strconv.Atoi(strings.TrimSpace(tot))
	}
	return number, total
}
