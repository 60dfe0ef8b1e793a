// Package catalog loads and holds the task catalog used by the interpreter.
// Tasks come from YAML mapping files; an embedded default set ships with the
// binary and a directory of override files can be merged in at startup.
// The catalog is immutable after load and safe for concurrent reads
package catalog

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	perr "dockit/internal/platform/errors"
)

//go:embed mappings/*.yaml
var embedded embed.FS

// MaterialReq is one material requirement on a task
type MaterialReq struct {
	Ref             string  `yaml:"ref" json:"ref"`
	Description     string  `yaml:"description" json:"description"`
	QuantityPerUnit float64 `yaml:"quantity_per_unit" json:"quantity_per_unit"`
}

// ATLRef names a standardized labor moment plus variant column
type ATLRef struct {
	Moment  string   `yaml:"moment" json:"moment"`
	Variant *FlexInt `yaml:"variant" json:"variant"`
}

// Task is one immutable catalog entry
type Task struct {
	ID                   string        `yaml:"task_id" json:"task_id"`
	Label                string        `yaml:"label" json:"label"`
	Category             string        `yaml:"category" json:"category"`
	Patterns             []string      `yaml:"patterns" json:"patterns"`
	TimeSource           string        `yaml:"time_source" json:"time_source"`
	ManualMinutesPerUnit *FlexFloat    `yaml:"manual_time_minutes_per_unit" json:"manual_time_minutes_per_unit"`
	ATLMoment            string        `yaml:"atl_moment" json:"atl_moment,omitempty"`
	ATLVariant           *FlexInt      `yaml:"atl_variant" json:"atl_variant,omitempty"`
	ATLRefs              []ATLRef      `yaml:"atl_refs" json:"atl_refs,omitempty"`
	Materials            []MaterialReq `yaml:"materials" json:"materials"`

	// SourceFile is the mapping file the task came from, set by the loader
	SourceFile string `yaml:"-" json:"mapping_file"`
}

// ATL returns the effective standardized-time reference for the task.
// When atl_moment is absent the first atl_refs entry supplies it
func (t Task) ATL() (moment string, variant int, ok bool) {
	moment = strings.TrimSpace(t.ATLMoment)
	var v *FlexInt
	if moment != "" {
		v = t.ATLVariant
	} else if len(t.ATLRefs) > 0 {
		moment = strings.TrimSpace(t.ATLRefs[0].Moment)
		v = t.ATLRefs[0].Variant
	}
	if moment == "" || v == nil || !v.Valid {
		return "", 0, false
	}
	return moment, v.Value, true
}

// ManualMinutes returns the manual per-unit minutes when present and positive
func (t Task) ManualMinutes() (float64, bool) {
	if t.ManualMinutesPerUnit == nil || !t.ManualMinutesPerUnit.Valid {
		return 0, false
	}
	if t.ManualMinutesPerUnit.Value <= 0 {
		return 0, false
	}
	return t.ManualMinutesPerUnit.Value, true
}

// Catalog holds the merged task set, read-only after construction
type Catalog struct {
	tasks []Task
	files []string
}

// New builds a catalog directly from tasks, used by fixtures and tests
func New(tasks []Task) *Catalog {
	seen := map[string]bool{}
	var files []string
	for _, t := range tasks {
		if t.SourceFile != "" && !seen[t.SourceFile] {
			seen[t.SourceFile] = true
			files = append(files, t.SourceFile)
		}
	}
	sort.Strings(files)
	return &Catalog{tasks: tasks, files: files}
}

// Tasks returns the full task list in load order
func (c *Catalog) Tasks() []Task { return c.tasks }

// Files returns the sorted mapping file names that contributed tasks
func (c *Catalog) Files() []string { return c.files }

// Len returns the number of tasks
func (c *Catalog) Len() int { return len(c.tasks) }

// Load parses the embedded default mapping set.
// An empty result is fatal, the interpreter cannot run without tasks
func Load() (*Catalog, error) {
	tasks, files, err := loadFS(embedded, "mappings")
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, perr.Catalogf("embedded mapping set contains no tasks")
	}
	return &Catalog{tasks: tasks, files: files}, nil
}

// LoadDir merges the embedded defaults with every *.yaml file under dir,
// in lexical order. Files from dir append after the embedded set
func LoadDir(dir string) (*Catalog, error) {
	tasks, files, err := loadFS(embedded, "mappings")
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, perr.Catalogf("read mapping dir %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, perr.Catalogf("read mapping file %s: %v", name, err)
		}
		parsed, err := parseFile(name, raw)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, parsed...)
		files = append(files, name)
	}

	if len(tasks) == 0 {
		return nil, perr.Catalogf("no tasks loaded from %s", dir)
	}
	sort.Strings(files)
	return &Catalog{tasks: tasks, files: files}, nil
}

func loadFS(fsys fs.FS, root string) (tasks []Task, files []string, err error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, nil, perr.Catalogf("read embedded mappings: %v", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(fsys, root+"/"+name)
		if err != nil {
			return nil, nil, perr.Catalogf("read embedded mapping %s: %v", name, err)
		}
		parsed, err := parseFile(name, raw)
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, parsed...)
		files = append(files, name)
	}
	return tasks, files, nil
}

// parseFile accepts the three mapping shapes:
// a top-level {tasks: [...]} list, a top-level {tasks: {id: {...}}} map,
// and a bare top-level list
func parseFile(name string, raw []byte) ([]Task, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, perr.Catalogf("parse mapping file %s: %v", name, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	var tasksNode *yaml.Node
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "tasks" {
				tasksNode = root.Content[i+1]
				break
			}
		}
	case yaml.SequenceNode:
		tasksNode = root
	}
	if tasksNode == nil {
		// unknown structure, skip the file
		return nil, nil
	}

	var out []Task
	switch tasksNode.Kind {
	case yaml.SequenceNode:
		for _, item := range tasksNode.Content {
			if item.Kind != yaml.MappingNode {
				continue
			}
			var t Task
			if err := item.Decode(&t); err != nil {
				continue
			}
			t.SourceFile = name
			out = append(out, cleanTask(t))
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(tasksNode.Content); i += 2 {
			key := tasksNode.Content[i].Value
			val := tasksNode.Content[i+1]
			if val.Kind != yaml.MappingNode {
				continue
			}
			var t Task
			if err := val.Decode(&t); err != nil {
				continue
			}
			if t.ID == "" {
				t.ID = key
			}
			t.SourceFile = name
			out = append(out, cleanTask(t))
		}
	}
	return out, nil
}

func cleanTask(t Task) Task {
	if t.TimeSource == "" {
		t.TimeSource = "manual"
	}
	t.TimeSource = strings.ToLower(strings.TrimSpace(t.TimeSource))

	patterns := t.Patterns[:0]
	for _, p := range t.Patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	t.Patterns = patterns
	return t
}
