package match

import (
	"strings"
	"testing"

	"dockit/internal/core/catalog"
)

func TestPhrase_Table(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		pattern string
		want    bool
	}{
		{
			name:    "exact substring",
			segment: "byta tre vägguttag i vardagsrummet",
			pattern: "vägguttag",
			want:    true,
		},
		{
			name:    "case insensitive substring",
			segment: "Byta Vägguttag",
			pattern: "byta vägguttag",
			want:    true,
		},
		{
			name:    "words in order with gap",
			segment: "byta tre slitna vägguttag",
			pattern: "byta vägguttag",
			want:    true,
		},
		{
			name:    "words out of order rejected",
			segment: "vägguttag ska vi byta",
			pattern: "byta vägguttag",
			want:    false,
		},
		{
			name:    "span too wide rejected",
			segment: "byta " + strings.Repeat("x ", 20) + "vägguttag",
			pattern: "byta vägguttag",
			want:    false,
		},
		{
			name:    "word boundary respected in word scan",
			segment: "byta lampan i hallen",
			pattern: "byta hall",
			want:    false,
		},
		{
			name:    "swedish initial letter word scan",
			segment: "åtta nya uttag i rummet",
			pattern: "åtta uttag",
			want:    true,
		},
		{
			name:    "empty pattern never matches",
			segment: "byta uttag",
			pattern: "   ",
			want:    false,
		},
		{
			name:    "digits are word runes",
			segment: "dra 12 meter rör",
			pattern: "12 meter",
			want:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Phrase(tc.segment, tc.pattern); got != tc.want {
				t.Fatalf("Phrase(%q, %q) = %v, want %v", tc.segment, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestSegment_FirstPatternPerTaskWins(t *testing.T) {
	tasks := []catalog.Task{
		{ID: "UTTAG", Patterns: []string{"byta vägguttag", "vägguttag"}},
		{ID: "DIMMER", Patterns: []string{"dimmer"}},
	}

	hits := Segment("byta vägguttag och dimmer i hallen", tasks)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Task.ID != "UTTAG" || hits[0].Pattern != "byta vägguttag" {
		t.Fatalf("first hit = %q via %q", hits[0].Task.ID, hits[0].Pattern)
	}
	if hits[1].Task.ID != "DIMMER" {
		t.Fatalf("second hit = %q", hits[1].Task.ID)
	}
}

func TestSegment_NoHits(t *testing.T) {
	tasks := []catalog.Task{{ID: "UTTAG", Patterns: []string{"vägguttag"}}}
	if hits := Segment("måla om staketet", tasks); len(hits) != 0 {
		t.Fatalf("got %d hits, want 0", len(hits))
	}
}
