package catalog

import (
	"testing"

	"dockit/internal/platform/testkit"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	byID := map[string]Task{}
	for _, task := range c.Tasks() {
		byID[task.ID] = task
	}

	uttag, ok := byID["BYTA-VAGGUTTAG"]
	if !ok {
		t.Fatal("BYTA-VAGGUTTAG missing from embedded set")
	}
	if m, ok := uttag.ManualMinutes(); !ok || m != 30 {
		t.Fatalf("manual minutes = %v %v, want 30 true", m, ok)
	}
	if uttag.SourceFile != "el_basmoment.yaml" {
		t.Fatalf("source file = %q", uttag.SourceFile)
	}

	// dict-shaped file assigns the task id from the map key
	if _, ok := byID["FELSOKNING-ELFEL"]; !ok {
		t.Fatal("FELSOKNING-ELFEL missing from embedded set")
	}

	// atl_refs supply the effective moment and variant
	ror := byID["DRA-VP-ROR-INFALLT"]
	moment, variant, ok := ror.ATL()
	if !ok || moment != "Infällda rör (VP 16-20 mm)" || variant != 0 {
		t.Fatalf("ATL() = %q %d %v", moment, variant, ok)
	}
}

func TestParseFile_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		count int
	}{
		{
			name: "tasks list",
			yaml: "tasks:\n  - task_id: A\n    patterns: [x]\n  - task_id: B\n    patterns: [y]\n",
			count: 2,
		},
		{
			name: "tasks map",
			yaml: "tasks:\n  A:\n    patterns: [x]\n  B:\n    patterns: [y]\n",
			count: 2,
		},
		{
			name: "bare list",
			yaml: "- task_id: A\n  patterns: [x]\n",
			count: 1,
		},
		{
			name:  "unknown shape skipped",
			yaml:  "something: else\n",
			count: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := parseFile("t.yaml", []byte(tc.yaml))
			if err != nil {
				t.Fatalf("parseFile: %v", err)
			}
			if len(tasks) != tc.count {
				t.Fatalf("got %d tasks, want %d", len(tasks), tc.count)
			}
			for _, task := range tasks {
				if task.ID == "" {
					t.Fatal("task id not filled in")
				}
				if task.SourceFile != "t.yaml" {
					t.Fatalf("source file = %q", task.SourceFile)
				}
			}
		})
	}
}

func TestParseFile_MalformedNumericDegrades(t *testing.T) {
	raw := "tasks:\n" +
		"  - task_id: BROKEN\n" +
		"    patterns: [x]\n" +
		"    manual_time_minutes_per_unit: \"not a number\"\n" +
		"    atl_variant: \"nope\"\n"

	tasks, err := parseFile("broken.yaml", []byte(raw))
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if _, ok := tasks[0].ManualMinutes(); ok {
		t.Fatal("malformed manual time should be absent")
	}
	if _, _, ok := tasks[0].ATL(); ok {
		t.Fatal("malformed variant should not resolve an ATL ref")
	}
}

func TestParseFile_DecimalComma(t *testing.T) {
	raw := "tasks:\n  - task_id: T\n    patterns: [x]\n    manual_time_minutes_per_unit: \"37,5\"\n"
	tasks, err := parseFile("t.yaml", []byte(raw))
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	m, ok := tasks[0].ManualMinutes()
	if !ok || m != 37.5 {
		t.Fatalf("manual minutes = %v %v, want 37.5 true", m, ok)
	}
}

func TestLoadDir_MergesAfterEmbedded(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteFile(t, dir, "zz_extra.yaml",
		"tasks:\n  - task_id: EXTRA-TASK\n    category: extra\n    patterns: [extrajobb]\n")

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	base, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != base.Len()+1 {
		t.Fatalf("merged len = %d, want %d", c.Len(), base.Len()+1)
	}

	found := false
	for _, task := range c.Tasks() {
		if task.ID == "EXTRA-TASK" {
			found = true
			if task.SourceFile != "zz_extra.yaml" {
				t.Fatalf("source file = %q", task.SourceFile)
			}
		}
	}
	if !found {
		t.Fatal("EXTRA-TASK not merged")
	}
}

func TestCleanTask_Defaults(t *testing.T) {
	got := cleanTask(Task{Patterns: []string{" byta uttag ", "", "uttag"}})
	if got.TimeSource != "manual" {
		t.Fatalf("time source = %q, want manual", got.TimeSource)
	}
	if len(got.Patterns) != 2 || got.Patterns[0] != "byta uttag" {
		t.Fatalf("patterns = %v", got.Patterns)
	}
}
