package types

import (
	"iter"
	"maps"
	"slices"
)

// Tags summarises the metadata found in an embedded tag block.
//
// Only the handful of fields every player shows are mapped. Everything the
// tag block carried is also kept verbatim under its frame id (e.g. "TIT2",
// "TXXX:CATALOG") and reachable through Get and All.
type Tags struct {
	raw         map[string][]string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Comment     string
	Genre       string
	Copyright   string
	Year        int
	TrackNumber int
	TrackTotal  int
	DiscNumber  int
	DiscTotal   int
}

// IsEmpty reports whether no field and no raw tag is set.
func (t *Tags) IsEmpty() bool {
	return t.Title == "" && t.Artist == "" && t.Album == "" && t.AlbumArtist == "" &&
		t.Comment == "" && t.Genre == "" && t.Copyright == "" && t.Year == 0 &&
		t.TrackNumber == 0 && t.TrackTotal == 0 && t.DiscNumber == 0 && t.DiscTotal == 0 &&
		len(t.raw) == 0
}

// All returns an iterator over all raw tags.
//
// Example:
//
//	for key, values := range file.Tags.All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
//
// The returned iterator is read-only. Do not modify the returned slices.
func (t *Tags) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, key := range slices.Sorted(maps.Keys(t.raw)) {
			if !yield(key, t.raw[key]) {
				return
			}
		}
	}
}

// Get retrieves all values for a raw tag key.
//
// Returns nil if the key doesn't exist.
func (t *Tags) Get(key string) []string {
	if t.raw == nil {
		return nil
	}
	values := t.raw[key]
	if values == nil {
		return nil
	}
	return slices.Clone(values)
}

// GetFirst retrieves the first value for a raw tag key, or "".
func (t *Tags) GetFirst(key string) string {
	values := t.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set sets a raw tag value. If values is empty, the tag is removed.
func (t *Tags) Set(key string, values ...string) {
	if t.raw == nil {
		t.raw = make(map[string][]string)
	}

	if len(values) == 0 {
		delete(t.raw, key)
		return
	}

	t.raw[key] = slices.Clone(values)
}

// Add appends values to a raw tag.
func (t *Tags) Add(key string, values ...string) {
	if len(values) == 0 {
		return
	}
	if t.raw == nil {
		t.raw = make(map[string][]string)
	}
	t.raw[key] = append(t.raw[key], values...)
}

// Merge fills empty fields of t from other.
//
// Fields already set in t win. Raw keys missing from t are copied.
func (t *Tags) Merge(other *Tags) {
	if other == nil {
		return
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fillInt := func(dst *int, src int) {
		if *dst == 0 {
			*dst = src
		}
	}

	fill(&t.Title, other.Title)
	fill(&t.Artist, other.Artist)
	fill(&t.Album, other.Album)
	fill(&t.AlbumArtist, other.AlbumArtist)
	fill(&t.Comment, other.Comment)
	fill(&t.Genre, other.Genre)
	fill(&t.Copyright, other.Copyright)
	fillInt(&t.Year, other.Year)
	fillInt(&t.TrackNumber, other.TrackNumber)
	fillInt(&t.TrackTotal, other.TrackTotal)
	fillInt(&t.DiscNumber, other.DiscNumber)
	fillInt(&t.DiscTotal, other.DiscTotal)

	for key, values := range other.raw {
		if _, ok := t.raw[key]; ok {
			continue
		}
		t.Set(key, values...)
	}
}
