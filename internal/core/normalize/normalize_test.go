package normalize

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "byta tre vagguttag",
			out:  "byta tre vagguttag",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'r', 0x6f, 'r', 0x80, ' ', 'k', 'a', 'b', 'e', 'l'}),
			out:  "ror kabel",
		},
		{
			name: "case fold",
			in:   "ByTa VäggUttag",
			out:  "byta vägguttag",
		},
		{
			name: "swedish letters survive",
			in:   "dra rör samma sträcka",
			out:  "dra rör samma sträcka",
		},
		{
			name: "decomposed diacritics recompose",
			in:   "vägguttag", // ä as a + combining diaeresis
			out:  "vägguttag",
		},
		{
			name: "remove zero-widths",
			in:   "di​mm‍er", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "dimmer",
		},
		{
			name: "width fold fullwidth",
			in:   "ＤＩＭＭＥＲ kök",
			out:  "dimmer kök",
		},
		{
			name: "collapse whitespace",
			in:   "a\t\tb\nc   d",
			out:  "a b c d",
		},
		{
			name: "trim edges",
			in:   "  byta uttag  ",
			out:  "byta uttag",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New()
	in := "  Byta TVÅ vägguttag,\n dra 12 meter rör  "
	once := n.Normalize(in)
	twice := n.Normalize(once)
	if once != twice {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}
