// Package segment splits free text into task-sized clauses.
// Sentence terminators and commas break clauses, except commas inside
// decimal numbers. The conjunction "och" splits a clause only when both
// sides carry an action verb, so noun pairs stay together
package segment

import (
	"regexp"
	"strings"
)

var (
	wsRun = regexp.MustCompile(`\s+`)

	// commas followed by a digit belong to decimal numbers like "3,60"
	clauseBreak = regexp.MustCompile(`[.!?]+|,(?:\D|$)`)
)

// actionVerbs are the verbs that mark a clause as a standalone work task
var actionVerbs = []string{
	"byta",
	"installera",
	"sätta upp",
	"montera",
	"dra",
	"koppla in",
	"koppla ur",
	"ta bort",
	"riva",
	"felsöka",
	"justera",
	"programmera",
	"flytta",
	"lägga",
	"mäta",
	"putsa",
}

// Split returns the ordered, trimmed, non-empty clauses of text.
// It never fails; empty input yields an empty slice
func Split(text string) []string {
	var segments []string

	if text == "" {
		return segments
	}

	clean := strings.TrimSpace(wsRun.ReplaceAllString(text, " "))
	if clean == "" {
		return segments
	}

	for _, part := range splitClauses(clean) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, seg := range splitOnOch(part) {
			seg = strings.TrimSpace(seg)
			if seg != "" {
				segments = append(segments, seg)
			}
		}
	}

	return segments
}

// splitClauses cuts on sentence terminators and non-decimal commas.
// The comma alternative consumes the following rune, so cut points are
// computed from match positions rather than using regexp Split
func splitClauses(s string) []string {
	var parts []string
	last := 0
	for _, loc := range clauseBreak.FindAllStringIndex(s, -1) {
		parts = append(parts, s[last:loc[0]])
		// keep the non-digit rune the comma alternative consumed
		if s[loc[0]] == ',' && loc[1] > loc[0]+1 {
			last = loc[0] + 1
		} else {
			last = loc[1]
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// splitOnOch splits a clause on " och " where both sides contain an action
// verb; otherwise the conjunction binds a noun pair and the clause stays whole
func splitOnOch(clause string) []string {
	if !strings.Contains(strings.ToLower(clause), " och ") {
		return []string{clause}
	}

	parts := strings.Split(clause, " och ")
	if len(parts) == 1 {
		return []string{clause}
	}

	var out []string
	current := strings.TrimSpace(parts[0])

	for _, next := range parts[1:] {
		next = strings.TrimSpace(next)
		if next == "" {
			continue
		}
		if hasVerb(current) && hasVerb(next) {
			out = append(out, current)
			current = next
		} else {
			current = current + " och " + next
		}
	}

	out = append(out, current)
	return out
}

func hasVerb(clause string) bool {
	lower := strings.TrimSpace(strings.ToLower(clause))
	if lower == "" {
		return false
	}
	for _, v := range actionVerbs {
		if lower == v ||
			strings.HasPrefix(lower, v+" ") ||
			strings.Contains(lower, " "+v+" ") {
			return true
		}
	}
	return false
}
