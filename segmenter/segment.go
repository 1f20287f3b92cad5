// Package segmenter splits payloads into transport sized chunks.
// Sizes are counted in characters (runes), which is how the chat platform
// counts its message cap.
package segmenter

import (
	"strings"
	"unicode/utf8"
)

const (
	// HardCap is the platform limit for a single message.
	HardCap = 2000
	// DefaultLimit stays one character under HardCap.
	DefaultLimit = HardCap - 1
)

// Segment splits text on line boundaries so that no segment exceeds limit.
// Lines keep their terminator, and a line longer than limit is cut into
// slices of exactly limit characters. Joining the output gives back text.
func Segment(text string, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var segments []string
	var buf strings.Builder
	bufLen := 0
	flush := func() {
		if bufLen == 0 {
			return
		}
		segments = append(segments, buf.String())
		buf.Reset()
		bufLen = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		n := utf8.RuneCountInString(line)
		if bufLen+n > limit {
			flush()
		}
		if n <= limit {
			buf.WriteString(line)
			bufLen += n
			continue
		}
		rest := line
		for utf8.RuneCountInString(rest) > limit {
			cut := runeOffset(rest, limit)
			segments = append(segments, rest[:cut])
			rest = rest[cut:]
		}
		buf.WriteString(rest)
		bufLen = utf8.RuneCountInString(rest)
	}
	flush()
	return segments
}

// runeOffset returns the byte offset after the first n runes of s.
// An invalid byte counts as one rune and is kept as is.
func runeOffset(s string, n int) int {
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
