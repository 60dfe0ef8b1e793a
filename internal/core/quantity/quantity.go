// Package quantity infers a numeric quantity for a matched task from the
// textual context of its segment.
//
// Precedence, strict:
//  1. an explicit "<number> meter|m" expression, preferring the occurrence
//     at or before the end of the matched phrase
//  2. a digit run in a look-back window before the phrase's last word
//  3. a Swedish number word in that window
//  4. an approximate-count phrase
//  5. the default 1.0
//
// Only strictly positive parses are accepted at each rung; failures fall
// through to the next rule, nothing ever raises
package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

// LookbackChars is the context window scanned before the matched phrase
const LookbackChars = 30

var numberWords = map[string]float64{
	"noll":    0,
	"en":      1,
	"ett":     1,
	"ena":     1, // sloppy free text
	"ettan":   1,
	"två":     2,
	"tva":     2, // fallback without å
	"tre":     3,
	"fyra":    4,
	"fem":     5,
	"sex":     6,
	"sju":     7,
	"åtta":    8,
	"atta":    8, // fallback
	"nio":     9,
	"tio":     10,
	"elva":    11,
	"tolv":    12,
	"tretton": 13,
	"fjorton": 14,
	"femton":  15,
	"sexton":  16,
	"sjutton": 17,
	"arton":   18,
	"nitton":  19,
	"tjugo":   20,
}

// approxWords map vague counts to fixed representative integers
var approxWords = map[string]float64{
	"några":   3,
	"nagra":   3,
	"ett par": 2,
	"par":     2,
}

var (
	meterRe    = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:meter|m)(?:[^a-zåäö0-9]|$)`)
	digitsRe   = regexp.MustCompile(`(\d+)\D*$`)
	wordRe     = regexp.MustCompile(`[a-zåäö0-9]+`)
	letterRe   = regexp.MustCompile(`[a-zåäöA-ZÅÄÖ]+`)
	approxPair = regexp.MustCompile(`ett\s+par`)
)

// FromContext extracts a quantity for pattern inside segment.
// It never fails; when nothing positive is found the default 1.0 is returned
func FromContext(segment, pattern string) float64 {
	const def = 1.0

	textLower := strings.ToLower(segment)
	patLower := strings.ToLower(strings.TrimSpace(pattern))

	// the last word of the pattern anchors the look-back window
	patWords := wordRe.FindAllString(patLower, -1)
	lastWord := ""
	if len(patWords) > 0 {
		lastWord = patWords[len(patWords)-1]
	}
	idxLastWord := -1
	if lastWord != "" {
		idxLastWord = strings.Index(textLower, lastWord)
	}

	// 1) "<number> meter|m", closest at or before the end of the pattern,
	// else the last one in the segment
	if v, ok := meterQuantity(textLower, idxLastWord); ok {
		return v
	}

	if idxLastWord == -1 {
		return def
	}

	windowStart := idxLastWord - LookbackChars
	if windowStart < 0 {
		windowStart = 0
	}
	context := strings.TrimSpace(textLower[windowStart:idxLastWord])

	// 2) trailing digit run
	if m := digitsRe.FindStringSubmatch(context); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			return float64(v)
		}
	}

	// 3) last context word as a Swedish number word
	words := letterRe.FindAllString(context, -1)
	if len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if v, ok := numberWords[last]; ok && v > 0 {
			return v
		}
	}

	// 4) approximate counts
	if approxPair.MatchString(context) {
		return approxWords["ett par"]
	}
	if len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if v, ok := approxWords[last]; ok && v > 0 {
			return v
		}
	}

	return def
}

// meterQuantity applies rule 1
func meterQuantity(textLower string, idxLastWord int) (float64, bool) {
	matches := meterRe.FindAllStringSubmatchIndex(textLower, -1)
	if len(matches) == 0 {
		return 0, false
	}

	chosen := -1
	if idxLastWord != -1 {
		for i, m := range matches {
			if m[0] <= idxLastWord {
				chosen = i
			}
		}
	}
	if chosen == -1 {
		chosen = len(matches) - 1
	}

	m := matches[chosen]
	numStr := strings.ReplaceAll(textLower[m[2]:m[3]], ",", ".")
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
