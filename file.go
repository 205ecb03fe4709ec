package audiochunks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	_ "github.com/simonhull/audiochunks/internal/aiff" // Register AIFF parser
	"github.com/simonhull/audiochunks/internal/chunk"
	_ "github.com/simonhull/audiochunks/internal/dsf" // Register DSF parser
	"github.com/simonhull/audiochunks/internal/registry"
	"github.com/simonhull/audiochunks/internal/types"
)

// File represents an opened audio file with its parsed structure.
//
// For AIFF files Chunks holds the chunk index, prologue first. For DSF
// files Header holds the decoded header and TagBlock the bounds of the
// embedded ID3v2 tag, if any.
//
// Always call Close() when done to release file resources:
//
//	file, err := audiochunks.Open("track.dsf")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	// Path to the audio file
	Path string

	// Detected format (AIFF or DSF)
	Format Format

	// File size in bytes
	Size int64

	// Form type of an AIFF file ("AIFF" or "AIFC")
	FormType string

	// Chunk index of an AIFF file
	Chunks []Chunk

	// Decoded header of a DSF file
	Header *DSFHeader

	// Bounds of the embedded tag block of a DSF file
	TagBlock *TagBlock

	// Parsed metadata
	Tags Tags

	// Audio technical properties
	Audio AudioInfo

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	reader io.ReaderAt
}

// Open opens an audio file and reads its structure and metadata.
//
// Supported formats: AIFF, AIFF-C, DSF
//
// Only a broken container structure is an error. An unreadable tag or a
// missing COMM chunk produces a File with warnings instead. Check
// File.Warnings for details.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := audiochunks.Open("track.aiff",
//	    audiochunks.WithStrictParsing(),
//	    audiochunks.WithLogger(slog.Default()),
//	)
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return open(path, options)
}

func open(path string, options *openOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := openReader(f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}

	// Keep the handle for payload reads
	file.reader = f

	return file, nil
}

// OpenReader parses an audio file from an io.ReaderAt.
//
// The caller keeps ownership of r; File.Close does not close it.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	file, err := openReader(r, size, path, options)
	if err != nil {
		return nil, err
	}
	file.reader = io.NewSectionReader(r, 0, size)
	return file, nil
}

func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	parsed, err := parser.Parse(r, size, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	file := fromParsed(parsed)
	file.Path = path
	file.Format = format
	file.Size = size

	log := options.logger.With(slog.String("path", path))
	for _, w := range file.Warnings {
		log.Warn(w.Message,
			slog.String("stage", w.Stage),
			slog.Int64("offset", w.Offset),
		)
	}
	log.Debug("parsed file",
		slog.String("format", format.String()),
		slog.Int("chunks", len(file.Chunks)),
		slog.Duration("duration", file.Audio.Duration),
		slog.Int("warnings", len(file.Warnings)),
	)

	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", file.Warnings[0].Message)
	}

	if options.ignoreWarnings {
		file.Warnings = nil
	}

	return file, nil
}

// fromParsed copies a parser result into a public File.
func fromParsed(p *types.File) *File {
	return &File{
		FormType: p.FormType,
		Chunks:   p.Chunks,
		Header:   p.Header,
		TagBlock: p.TagBlock,
		Tags:     p.Tags,
		Audio:    p.Audio,
		Warnings: p.Warnings,
	}
}

// Close releases resources held by the file.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if closer, ok := f.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Find returns the offset of the first chunk with the given id at or after
// start, or -1. It always returns -1 for DSF files.
//
// Example:
//
//	if off := file.Find(audiochunks.ChunkID3, 0); off >= 0 {
//		fmt.Printf("ID3 chunk at %d\n", off)
//	}
func (f *File) Find(pattern FourCC, start int64) int64 {
	return chunk.Find(f.Chunks, pattern, start)
}

// FindBefore is Find limited to chunks that precede the first chunk with
// id before (at or after start). Without such a chunk it behaves like Find.
//
// Example:
//
//	// COMM is only meaningful ahead of the sound data
//	off := file.FindBefore(audiochunks.ChunkCOMM, 0, audiochunks.ChunkSSND)
func (f *File) FindBefore(pattern FourCC, start int64, before FourCC) int64 {
	return chunk.FindBefore(f.Chunks, pattern, start, before)
}

// Payload returns a reader over the payload of c, including any pad byte.
//
// The reader is valid until Close is called.
func (f *File) Payload(c Chunk) *io.SectionReader {
	return io.NewSectionReader(f.reader, c.PayloadOffset(), c.Length)
}

// Save always fails: AIFF and DSF files are opened read-only.
func (f *File) Save() error {
	return &UnsupportedWriteError{
		Format: f.Format,
		Reason: "metadata writing is not implemented",
	}
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is opened. Parsing itself reads
// only a few headers and is not interrupted.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := audiochunks.OpenContext(ctx, "track.dsf")
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The progress
// callback from WithProgress runs once per successfully opened file.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := audiochunks.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := open(path, options)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			if options.progress != nil {
				options.progress()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
