// Package audiochunks locates structure and metadata inside AIFF and DSF
// audio files.
//
// For AIFF and AIFF-C files it builds an index of the chunks that follow
// the FORM prologue and answers "where is chunk X" queries, optionally
// restricted to chunks that come before another one. For DSF files it
// decodes the fixed "DSD " and "fmt " header, finds the embedded ID3v2 tag
// block and derives duration and bitrate.
//
// # Quick Start
//
//	file, err := audiochunks.Open("track.dsf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	fmt.Printf("%s - %s\n", file.Tags.Artist, file.Tags.Title)
//	fmt.Printf("Duration: %s\n", file.Audio.Duration)
//
// # Chunk Queries
//
// Chunk offsets always point at the 8-byte chunk header:
//
//	// COMM must come before the sound data
//	off := file.FindBefore(audiochunks.ChunkCOMM, 0, audiochunks.ChunkSSND)
//	if off < 0 {
//		// not present
//	}
//
// Only the identifiers FORM, COMM, INST, MARK, SKIP, SSND, NAME, FVER,
// MIDI, AESD, APPL, COMT, AUTH, "(c) ", ANNO, "ID3 " and FLLR are accepted.
// Any other identifier makes the whole file fail with *FormatError.
//
// # Error Handling
//
// Fatal errors prevent parsing entirely:
//
//   - *UnsupportedFormatError: the file starts with neither "FORM" nor "DSD "
//   - *FormatError: the AIFF chunk structure is invalid or truncated
//   - *CorruptedFileError: the DSF header is invalid or truncated
//
// Warnings describe non-fatal issues, such as a DSF file whose declared
// size differs from its real size, and are collected in File.Warnings.
// WithStrictParsing turns them into errors; WithLogger reports them
// through log/slog.
//
// # Concurrency
//
// A single parse is synchronous. OpenMany parses several files in
// parallel, one goroutine per file up to runtime.NumCPU():
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
package audiochunks
