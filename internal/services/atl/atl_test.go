package atl

import (
	"testing"

	"dockit/internal/platform/testkit"
)

func TestLoad_Embedded(t *testing.T) {
	ix, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ix.Moments() == 0 {
		t.Fatal("embedded table is empty")
	}

	h, ok := ix.Hours("Infällda rör (VP 16-20 mm)", 0)
	if !ok {
		t.Fatal("known moment not found")
	}
	testkit.CloseTo(t, h, 0.13, 1e-9)

	h, ok = ix.Hours("Infällda rör (VP 16-20 mm)", -2)
	if !ok || h != 0.20 {
		t.Fatalf("variant -2 = %v %v, want 0.20 true", h, ok)
	}
}

func TestHours_Misses(t *testing.T) {
	ix, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := ix.Hours("Påhittat moment", 0); ok {
		t.Fatal("unknown moment should miss")
	}
	if _, ok := ix.Hours("Infällda rör (VP 16-20 mm)", -9); ok {
		t.Fatal("unknown variant should miss")
	}
	if _, ok := ix.Hours("", 0); ok {
		t.Fatal("empty moment should miss")
	}
	// empty cell in the table
	if _, ok := ix.Hours("Kabelkanal på vägg", -2); ok {
		t.Fatal("empty cell should miss")
	}
}

func TestLoadFile_BOMAndBadCells(t *testing.T) {
	dir := t.TempDir()
	content := "\xef\xbb\xbfMoment/Typ/Sort;Enhet;0;-1\n" +
		"Provmoment;st;1,5;inte ett tal\n" +
		";st;9;9\n"
	path := testkit.WriteFile(t, dir, "atl.csv", content)

	ix, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	h, ok := ix.Hours("Provmoment", 0)
	if !ok || h != 1.5 {
		t.Fatalf("hours = %v %v, want 1.5 true", h, ok)
	}
	if _, ok := ix.Hours("Provmoment", -1); ok {
		t.Fatal("unparsable cell should miss")
	}
	if ix.Moments() != 1 {
		t.Fatalf("moments = %d, want 1 (blank name skipped)", ix.Moments())
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/atl.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	testkit.MustContain(t, err.Error(), "atl.csv")
}
