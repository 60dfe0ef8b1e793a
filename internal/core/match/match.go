// Package match implements trigger-phrase matching of text segments
// against catalog tasks
package match

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"dockit/internal/core/catalog"
)

// MaxSpanChars bounds the distance between the first and last matched
// phrase word when matching word-by-word
const MaxSpanChars = 25

var wordRe = regexp.MustCompile(`[a-zåäö0-9]+`)

// Phrase reports whether pattern matches segment.
// Matching is case-insensitive and succeeds on an exact substring hit, or
// when every pattern word occurs in the segment in order within MaxSpanChars
func Phrase(segment, pattern string) bool {
	segLower := strings.ToLower(segment)
	patLower := strings.ToLower(strings.TrimSpace(pattern))
	if patLower == "" {
		return false
	}

	if strings.Contains(segLower, patLower) {
		return true
	}

	words := wordRe.FindAllString(patLower, -1)
	if len(words) == 0 {
		return false
	}

	idx := 0
	firstPos := -1
	lastPos := -1

	for _, w := range words {
		pos := findWord(segLower[idx:], w)
		if pos == -1 {
			return false
		}
		pos += idx
		if firstPos == -1 {
			firstPos = pos
		}
		lastPos = pos
		idx = pos + len(w)
	}

	return lastPos-firstPos <= MaxSpanChars
}

// findWord locates w in s on word boundaries. Boundaries are checked
// against the same rune class as wordRe, so Swedish letters count as
// word runes where an ASCII \b assertion would not
func findWord(s, w string) int {
	from := 0
	for {
		rel := strings.Index(s[from:], w)
		if rel == -1 {
			return -1
		}
		pos := from + rel
		if boundaryBefore(s, pos) && boundaryAfter(s, pos+len(w)) {
			return pos
		}
		from = pos + 1
	}
}

func boundaryBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return !isWordRune(r)
}

func boundaryAfter(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == 'å' || r == 'ä' || r == 'ö':
		return true
	}
	return false
}

// Hit is one task matched in a segment
type Hit struct {
	Task    catalog.Task
	Pattern string
	Segment string
}

// Segment matches one segment against every catalog task.
// The first matching phrase per task wins; a segment may hit several tasks
func Segment(seg string, tasks []catalog.Task) []Hit {
	var hits []Hit
	for _, task := range tasks {
		for _, pattern := range task.Patterns {
			if Phrase(seg, pattern) {
				hits = append(hits, Hit{Task: task, Pattern: pattern, Segment: seg})
				break
			}
		}
	}
	return hits
}
