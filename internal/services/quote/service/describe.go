package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// verb rewrites applied to the start of a segment
var leadingRewrites = []struct {
	prefix      string
	replacement string
}{
	{"byta ", "Byte av "},
	{"installera ", "Installation av "},
	{"montera ", "Montering av "},
	{"sätta upp ", "Montering av "},
}

// rewrites applied to conjunctions inside the segment
var innerRewrites = []struct {
	find        string
	replacement string
}{
	{" och installera ", " och installation av"},
	{" och sätta upp ", " och montering av"},
}

// FormatDescription turns a matched segment into a quote-ready line
// description. The customer's own wording is preferred; the task label
// is the fallback, and a generic placeholder covers both being empty
func FormatDescription(label, textSegment string) string {
	if s := transform(textSegment); s != "" {
		return s
	}
	if s := transform(label); s != "" {
		return s
	}
	return "Arbetsmoment"
}

func transform(phrase string) string {
	p := strings.TrimSpace(phrase)
	if p == "" {
		return ""
	}

	lower := strings.ToLower(p)
	for _, rw := range leadingRewrites {
		if strings.HasPrefix(lower, rw.prefix) {
			tail := strings.TrimLeft(p[len(rw.prefix):], " ")
			p = rw.replacement + tail
			break
		}
	}

	for _, rw := range innerRewrites {
		p = replaceInner(p, rw.find, rw.replacement)
	}

	return upperFirst(p)
}

// replaceInner swaps the first case-insensitive occurrence of find,
// keeping everything before and after it
func replaceInner(source, find, replacement string) string {
	idx := strings.Index(strings.ToLower(source), find)
	if idx == -1 {
		return source
	}
	tail := strings.TrimLeft(source[idx+len(find):], " ")
	return source[:idx] + replacement + " " + tail
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
