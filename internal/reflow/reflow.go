// Package reflow wraps verse text into fixed-width display lines.
//
// Text is handled as raw 8-bit bytes (ISO-8859-1), one byte per column.
package reflow

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultWidth    = 40
	DefaultMaxLines = 1024
)

// Buffer is a bounded sequence of display lines. Lines past MaxLines are
// dropped silently.
type Buffer struct {
	width    int
	maxLines int
	lines    []string
	starts   []verseStart
}

type verseStart struct {
	verse int
	line  int
}

// New returns an empty buffer. Non-positive arguments select the defaults.
func New(width, maxLines int) *Buffer {
	if width <= 0 {
		width = DefaultWidth
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Buffer{width: width, maxLines: maxLines}
}

func (b *Buffer) Width() int { return b.width }
func (b *Buffer) Len() int   { return len(b.lines) }
func (b *Buffer) Full() bool { return len(b.lines) >= b.maxLines }

// Lines returns the buffered lines. The slice must not be modified.
func (b *Buffer) Lines() []string { return b.lines }

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.lines = b.lines[:0]
	b.starts = b.starts[:0]
}

// VerseLine returns the first line of the verse numbered n. ok is false when
// no line of that verse was buffered.
func (b *Buffer) VerseLine(n int) (line int, ok bool) {
	for _, s := range b.starts {
		if s.verse == n {
			return s.line, true
		}
	}
	return 0, false
}

// Add appends s truncated to the buffer width.
func (b *Buffer) Add(s string) {
	if b.Full() {
		return
	}
	if len(s) > b.width {
		s = s[:b.width]
	}
	b.lines = append(b.lines, s)
}

// Sum64 fingerprints the buffer contents.
func (b *Buffer) Sum64() uint64 {
	d := xxhash.New()
	for _, l := range b.lines {
		_, _ = d.WriteString(l)
		_, _ = d.Write([]byte{'\n'})
	}
	return d.Sum64()
}

// AddVerse wraps text under the prefix "<number> " and appends the result.
// Continuation lines are indented by the prefix width. Text ends at the first
// NUL byte.
func (b *Buffer) AddVerse(number int, text []byte) {
	for i, c := range text {
		if c == 0 {
			text = text[:i]
			break
		}
	}

	prefix := strconv.Itoa(number) + " "
	indent := min(len(prefix), b.width)

	if skipSpaces(text, 0) < len(text) && !b.Full() {
		b.starts = append(b.starts, verseStart{verse: number, line: len(b.lines)})
	}

	pos := skipSpaces(text, 0)
	line := make([]byte, 0, b.width)
	first := true
	for pos < len(text) {
		line = line[:0]
		if first {
			line = append(line, prefix[:min(len(prefix), b.width)]...)
		} else {
			for range indent {
				line = append(line, ' ')
			}
		}

		remaining := b.width - len(line)
		end, lastSpace := pos, -1
		for j := 0; end < len(text) && j < remaining; j, end = j+1, end+1 {
			if text[end] == ' ' {
				lastSpace = end
			}
		}
		if end < len(text) && lastSpace > pos {
			end = lastSpace
		}
		if end == pos {
			// No room after the prefix; drop a byte so the loop advances.
			end++
		}

		for j := pos; j < end && len(line) < b.width; j++ {
			line = append(line, text[j])
		}
		b.Add(string(line))

		pos = skipSpaces(text, end)
		first = false
	}
}

func skipSpaces(text []byte, pos int) int {
	for pos < len(text) && text[pos] == ' ' {
		pos++
	}
	return pos
}
