// Command chunk-dump prints the chunk layout, header fields and tags of
// AIFF and DSF files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiochunks"
)

var (
	verbose    bool
	withDigest bool
	strict     bool
	noProgress bool
	start      int64
	before     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chunk-dump",
		Short:        "Inspect the chunk layout of AIFF and DSF files",
		Version:      audiochunks.GetVersion(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log parse details to stderr")

	chunksCmd := &cobra.Command{
		Use:   "chunks <FILE>",
		Short: "List the chunks of an AIFF file or the header of a DSF file",
		Args:  cobra.ExactArgs(1),
		RunE:  runChunks,
	}
	chunksCmd.Flags().BoolVar(&withDigest, "digest", false, "Print the sha256 digest of each chunk payload")

	findCmd := &cobra.Command{
		Use:   "find <FILE> <ID>",
		Short: "Print the offset of the first chunk with the given id, or -1",
		Args:  cobra.ExactArgs(2),
		RunE:  runFind,
	}
	findCmd.Flags().Int64Var(&start, "start", 0, "Only consider chunks at or after this offset")
	findCmd.Flags().StringVar(&before, "before", "", "Only consider chunks ahead of the first chunk with this id")

	infoCmd := &cobra.Command{
		Use:   "info <FILE>...",
		Short: "Print format, audio properties, tags and warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().BoolVar(&strict, "strict", false, "Treat parse warnings as errors")
	infoCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default)")

	rootCmd.AddCommand(chunksCmd, findCmd, infoCmd)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// parseChunkID accepts ids shorter than 4 bytes and pads them with spaces,
// so "ID3" means "ID3 ". Identifiers an AIFF index can never hold are
// rejected with the list of recognised ones.
func parseChunkID(s string) (audiochunks.FourCC, error) {
	if len(s) > 0 && len(s) < 4 {
		s += strings.Repeat(" ", 4-len(s))
	}
	id, err := audiochunks.ParseFourCC(s)
	if err != nil {
		return id, err
	}
	if !audiochunks.IsValidChunkID(id) {
		ids := audiochunks.KnownChunkIDs()
		known := make([]string, 0, len(ids))
		for _, k := range ids {
			known = append(known, fmt.Sprintf("%q", k.String()))
		}
		return id, fmt.Errorf("unknown chunk id %q (known: %s)", s, strings.Join(known, ", "))
	}
	return id, nil
}

func runChunks(cmd *cobra.Command, args []string) error {
	file, err := audiochunks.Open(args[0], audiochunks.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer file.Close()

	out := cmd.OutOrStdout()
	if file.Format == audiochunks.FormatDSF {
		printHeader(out, file)
		return nil
	}

	fmt.Fprintf(out, "%s (%s), %d chunks\n", file.Path, file.FormType, len(file.Chunks))
	for i, c := range file.Chunks {
		line := fmt.Sprintf("%3d: %-4s offset: %-10d length: %d", i, c.Pattern, c.Offset, c.Length)
		if withDigest && i > 0 {
			dgst, err := digest.FromReader(file.Payload(c))
			if err != nil {
				return fmt.Errorf("digest %s chunk at %d: %w", c.Pattern, c.Offset, err)
			}
			line += "  " + dgst.String()
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func printHeader(out io.Writer, file *audiochunks.File) {
	h := file.Header
	fmt.Fprintf(out, "%s (DSF)\n", file.Path)
	fmt.Fprintf(out, "  chunk size:      %d\n", h.ChunkSize)
	fmt.Fprintf(out, "  file size:       %d (actual %d)\n", h.FileSize, file.Size)
	fmt.Fprintf(out, "  metadata offset: %d\n", h.TagPosition)
	fmt.Fprintf(out, "  fmt size:        %d\n", h.FmtSize)
	fmt.Fprintf(out, "  format version:  %d\n", h.FormatVersion)
	fmt.Fprintf(out, "  format id:       %d\n", h.FormatID)
	fmt.Fprintf(out, "  channel type:    %d (%s)\n", h.ChannelType, h.ChannelLayout())
	fmt.Fprintf(out, "  channels:        %d\n", h.ChannelCount)
	fmt.Fprintf(out, "  sample rate:     %d\n", h.SampleRate)
	fmt.Fprintf(out, "  bits per sample: %d\n", h.BitsPerSample)
	fmt.Fprintf(out, "  sample count:    %d\n", h.SampleCount)
	if file.TagBlock != nil {
		fmt.Fprintf(out, "  tag block:       %s\n", file.TagBlock)
	} else {
		fmt.Fprintln(out, "  tag block:       none")
	}
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern, err := parseChunkID(args[1])
	if err != nil {
		return err
	}

	file, err := audiochunks.Open(args[0], audiochunks.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer file.Close()

	var off int64
	if before == "" {
		off = file.Find(pattern, start)
	} else {
		b, err := parseChunkID(before)
		if err != nil {
			return err
		}
		off = file.FindBefore(pattern, start, b)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(off, 10))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	opts := []audiochunks.Option{audiochunks.WithLogger(newLogger())}
	if strict {
		opts = append(opts, audiochunks.WithStrictParsing())
	}

	var bar *progressbar.ProgressBar
	if !noProgress {
		bar = progressbar.Default(int64(len(args)), "Opening files")
		opts = append(opts, audiochunks.WithProgress(func() { _ = bar.Add(1) }))
	}

	files, err := audiochunks.OpenMany(context.Background(), args, opts...)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	for _, f := range files {
		printInfo(out, f)
	}
	return nil
}

func printInfo(out io.Writer, f *audiochunks.File) {
	fmt.Fprintf(out, "%s\n", f.Path)
	fmt.Fprintf(out, "  format:   %s\n", f.Format)
	fmt.Fprintf(out, "  audio:    %s\n", f.Audio)
	fmt.Fprintf(out, "  duration: %s\n", f.Audio.Duration)

	if f.Tags.Title != "" {
		fmt.Fprintf(out, "  title:    %s\n", f.Tags.Title)
	}
	if f.Tags.Artist != "" {
		fmt.Fprintf(out, "  artist:   %s\n", f.Tags.Artist)
	}
	if f.Tags.Album != "" {
		fmt.Fprintf(out, "  album:    %s\n", f.Tags.Album)
	}
	for key, values := range f.Tags.All() {
		fmt.Fprintf(out, "  [%s] %s\n", key, strings.Join(values, "; "))
	}

	for _, w := range f.Warnings {
		fmt.Fprintf(out, "  warning:  %s\n", w)
	}
}
