// Package types provides core data structures for audio container metadata.
//
// This package defines the chunk descriptors, DSF header fields, tag block
// bounds, Tags, AudioInfo and the error taxonomy shared by every format
// parser.
package types

// File is the result of parsing one audio file.
//
// Exactly one of Chunks (AIFF) or Header (DSF) is set. Everything in a File
// is owned by the caller and is not modified after the parse returns.
type File struct {
	Path     string
	FormType string // "AIFF" or "AIFC"; empty for DSF
	Chunks   []Chunk
	Header   *DSFHeader
	TagBlock *TagBlock
	Warnings []Warning
	Tags     Tags
	Audio    AudioInfo
	Format   Format
	Size     int64
}
