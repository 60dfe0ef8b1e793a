package interpret

import (
	"strings"

	"dockit/internal/core/normalize"
)

// dedupe removes matches sharing a (task id, segment text) pair.
// The highest troubleshooting score survives, first seen wins ties and
// keeps its position in the output order
func dedupe(matches []TaskMatch) []TaskMatch {
	type key struct {
		taskID  string
		segment string
	}

	index := map[key]int{}
	var out []TaskMatch

	for _, m := range matches {
		k := key{taskID: m.TaskID, segment: m.TextSegment}
		if at, seen := index[k]; seen {
			if troubleScore(m) > troubleScore(out[at]) {
				out[at] = m
			}
			continue
		}
		index[k] = len(out)
		out = append(out, m)
	}

	return out
}

// troubleScore rewards matches whose task id, category, or mapping file
// signal a troubleshooting classification
func troubleScore(m TaskMatch) int {
	s := 0
	if strings.Contains(strings.ToLower(m.TaskID), "felsokning") {
		s++
	}
	if strings.Contains(strings.ToLower(m.Category), "felsokning") {
		s += 2
	}
	if strings.Contains(strings.ToLower(m.MappingFile), "felsokning") {
		s += 2
	}
	return s
}

// sameStretchPhrases mark a segment whose quantity refers back to an
// earlier stated distance
var sameStretchPhrases = []string{
	"samma sträcka",
	"samma längd",
	"samma väg",
}

// propagateSameStretch is a forward-only single pass: it tracks the last
// quantity above one per category and copies it onto matches whose quantity
// is exactly one and whose segment carries a same-stretch phrase. Total time
// scales with the new quantity
func propagateSameStretch(matches []TaskMatch, norm *normalize.Normalizer) []TaskMatch {
	lastByCategory := map[string]float64{}

	out := make([]TaskMatch, 0, len(matches))
	for _, m := range matches {
		if m.Category != "" && m.Quantity > 1 {
			lastByCategory[m.Category] = m.Quantity
		}

		if m.Category != "" && m.Quantity == 1 && hasSameStretch(norm.Normalize(m.TextSegment)) {
			if prev, ok := lastByCategory[m.Category]; ok && prev > 1 {
				m.Quantity = prev
				if m.PerUnitMinutes != nil {
					total := *m.PerUnitMinutes * prev
					m.TotalMinutes = &total
				}
			}
		}

		out = append(out, m)
	}
	return out
}

func hasSameStretch(normSeg string) bool {
	for _, phrase := range sameStretchPhrases {
		if strings.Contains(normSeg, phrase) {
			return true
		}
	}
	return false
}
