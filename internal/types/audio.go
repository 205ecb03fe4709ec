package types

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// AudioInfo represents technical audio properties.
//
// AudioInfo is derived once from the decoded header (DSF) or COMM chunk
// (AIFF) and never recomputed.
type AudioInfo struct {
	Codec            string
	CodecDescription string
	Container        string
	Duration         time.Duration
	SampleRate       int
	BitDepth         int
	Channels         int
	Bitrate          int // kilobits per second
	Lossless         bool
}

// DurationSeconds returns the duration in seconds.
func (a AudioInfo) DurationSeconds() float64 {
	return a.Duration.Seconds()
}

// String returns a human-readable representation of the audio info.
// Example output: "DSD 2822.4kHz 1-bit stereo 5645kbps".
func (a AudioInfo) String() string {
	parts := []string{a.Codec}

	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if a.BitDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", a.BitDepth))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if a.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%dkbps", a.Bitrate))
	}

	return join(parts, " ")
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// join concatenates strings with a separator, skipping empty strings.
func join(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

// IsHighRes returns true if the audio is high-resolution.
//
// High-resolution is defined as:
//   - Sample rate > 48kHz, OR
//   - Bit depth > 16
//
// Every DSD stream qualifies through its sample rate.
func (a AudioInfo) IsHighRes() bool {
	return a.SampleRate > 48000 || a.BitDepth > 16
}

// BitrateKbps computes round(sampleRate * channels * bitsPerSample / 1000).
//
// Halves round to even, so 1411.2 gives 1411 and 5644.5 gives 5644.
func BitrateKbps(sampleRate, channels, bitsPerSample uint64) int {
	return int(math.RoundToEven(float64(sampleRate*channels*bitsPerSample) / 1000.0))
}
