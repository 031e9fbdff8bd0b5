package textutil

import (
	"strings"
	"unicode/utf8"
)

// RuneOffsets translates byte offsets within a string into character offsets.
type RuneOffsets struct {
	table []int // nil when the source is pure ASCII
}

// NewRuneOffsets indexes text so byte offsets can be mapped to rune offsets.
func NewRuneOffsets(text string) RuneOffsets {
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return RuneOffsets{}
	}
	table := make([]int, len(text)+1)
	count := 0
	for i := 0; i < len(text); {
		_, width := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < width; j++ {
			table[i+j] = count
		}
		count++
		i += width
	}
	table[len(text)] = count
	return RuneOffsets{table: table}
}

// At returns the rune offset corresponding to byteOffset.
func (r RuneOffsets) At(byteOffset int) int {
	if r.table == nil {
		return byteOffset
	}
	if byteOffset < 0 {
		return 0
	}
	if byteOffset >= len(r.table) {
		return r.table[len(r.table)-1]
	}
	return r.table[byteOffset]
}

// SliceRunes returns runes[start:end] after clamping both bounds.
func SliceRunes(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Truncate shortens value to limit characters and appends marker when the
// value was longer than limit. Values within the limit are returned unchanged.
func Truncate(value string, limit int, marker string) string {
	if limit < 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	var b strings.Builder
	b.Grow(limit + len(marker))
	n := 0
	for _, r := range value {
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	b.WriteString(marker)
	return b.String()
}
