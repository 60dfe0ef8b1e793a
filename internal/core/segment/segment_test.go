package segment

import (
	"reflect"
	"testing"
)

func TestSplit_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "empty input",
			in:   "",
			out:  nil,
		},
		{
			name: "whitespace only",
			in:   "   \t\n  ",
			out:  nil,
		},
		{
			name: "single clause",
			in:   "byta ett vägguttag",
			out:  []string{"byta ett vägguttag"},
		},
		{
			name: "sentence terminators",
			in:   "byta uttag. installera dimmer! felsöka elfel?",
			out:  []string{"byta uttag", "installera dimmer", "felsöka elfel"},
		},
		{
			name: "comma splits clauses",
			in:   "byta tre vägguttag i vardagsrummet, installera en diskmaskin",
			out:  []string{"byta tre vägguttag i vardagsrummet", "installera en diskmaskin"},
		},
		{
			name: "decimal comma preserved",
			in:   "dra 3,60 meter rör i hallen",
			out:  []string{"dra 3,60 meter rör i hallen"},
		},
		{
			name: "och with verbs on both sides splits",
			in:   "byta en strömbrytare och installera en dimmer",
			out:  []string{"byta en strömbrytare", "installera en dimmer"},
		},
		{
			name: "och binding nouns stays whole",
			in:   "byta ett uttag och en strömbrytare",
			out:  []string{"byta ett uttag och en strömbrytare"},
		},
		{
			name: "sätta upp counts as verb",
			in:   "sätta upp en taklampa i hallen och installera en laddbox på uppfarten",
			out:  []string{"sätta upp en taklampa i hallen", "installera en laddbox på uppfarten"},
		},
		{
			name: "whitespace collapsed before splitting",
			in:   "byta   uttag,\n\tinstallera  dimmer",
			out:  []string{"byta uttag", "installera dimmer"},
		},
		{
			name: "trailing comma",
			in:   "byta uttag,",
			out:  []string{"byta uttag"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.in)
			if !reflect.DeepEqual(got, tc.out) {
				t.Fatalf("Split(%q) = %#v, want %#v", tc.in, got, tc.out)
			}
		})
	}
}

func TestSplit_FullJobSummary(t *testing.T) {
	in := "Byta tre vägguttag i vardagsrummet, byta en strömbrytare och installera en dimmer, " +
		"dra infällda rör till ett nytt uttag i sovrummet, installera en diskmaskin i köket, " +
		"sätta upp en taklampa i hallen och installera en laddbox på uppfarten."
	want := []string{
		"Byta tre vägguttag i vardagsrummet",
		"byta en strömbrytare",
		"installera en dimmer",
		"dra infällda rör till ett nytt uttag i sovrummet",
		"installera en diskmaskin i köket",
		"sätta upp en taklampa i hallen",
		"installera en laddbox på uppfarten",
	}
	got := Split(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %#v, want %#v", got, want)
	}
}
