// Package interpret turns free job text into resolved task matches.
// It runs the full pipeline: segmentation, trigger-phrase matching,
// quantity extraction, labor-time resolution, deduplication, and
// same-stretch quantity propagation.
//
// Interpret never returns an error for any text input and is idempotent
// for a fixed catalog and collaborator state. Collaborator failures are
// contained at the call site and treated as missing data
package interpret

import (
	"context"
	"strings"

	"dockit/internal/core/catalog"
	"dockit/internal/core/match"
	"dockit/internal/core/normalize"
	"dockit/internal/core/quantity"
	"dockit/internal/core/segment"
	"dockit/internal/core/version"
	"dockit/internal/platform/logger"
)

// TimeIndex resolves hours per unit for a standardized labor moment.
// ok is false when the moment or variant has no usable value
type TimeIndex interface {
	Hours(moment string, variant int) (hours float64, ok bool)
}

// UnresolvedSink receives segments that matched no task.
// Record is fire and forget, it must never propagate into the pipeline
type UnresolvedSink interface {
	Record(segmentText string)
}

// TaskMatch is one resolved task occurrence in the input text
type TaskMatch struct {
	TaskID         string                `json:"task_id"`
	Label          string                `json:"label"`
	Category       string                `json:"category"`
	MappingFile    string                `json:"mapping_file"`
	MatchedPattern string                `json:"matched_pattern"`
	TextSegment    string                `json:"text_segment"`
	Quantity       float64               `json:"quantity"`
	TimeSource     string                `json:"time_source"`
	PerUnitMinutes *float64              `json:"time_minutes_per_unit"`
	TotalMinutes   *float64              `json:"time_minutes_total"`
	Materials      []catalog.MaterialReq `json:"materials"`
	ATLMoment      string                `json:"atl_moment,omitempty"`
	ATLVariant     *int                  `json:"atl_variant,omitempty"`
}

// Totals summarizes the matched task set
type Totals struct {
	Count        int     `json:"tasks_count"`
	TotalMinutes float64 `json:"total_time_minutes"`
	TotalHours   float64 `json:"total_time_hours"`
}

// Meta carries interpretation provenance
type Meta struct {
	Version      string   `json:"version"`
	MappingFiles []string `json:"mapping_files"`
}

// Result is the full interpretation of one text
type Result struct {
	FreeText string      `json:"free_text"`
	Tasks    []TaskMatch `json:"tasks"`
	Totals   Totals      `json:"totals"`
	Meta     Meta        `json:"meta"`
}

// Interpreter runs the pipeline against a fixed catalog and collaborators.
// It is stateless across calls and safe for concurrent use
type Interpreter struct {
	cat   *catalog.Catalog
	times TimeIndex
	sink  UnresolvedSink
	norm  *normalize.Normalizer
}

// New constructs an Interpreter. times and sink may be nil, in which case
// standardized lookups miss and unresolved segments are dropped
func New(cat *catalog.Catalog, times TimeIndex, sink UnresolvedSink) *Interpreter {
	return &Interpreter{
		cat:   cat,
		times: times,
		sink:  sink,
		norm:  normalize.New(),
	}
}

// Interpret runs the pipeline over freeText
func (in *Interpreter) Interpret(ctx context.Context, freeText string) Result {
	log := logger.C(ctx)

	text := strings.TrimSpace(freeText)
	tasks := in.cat.Tasks()

	var matched []TaskMatch

	for _, seg := range segment.Split(text) {
		// match and extract against the normalized view, report the raw one
		normSeg := in.norm.Normalize(seg)

		hits := match.Segment(normSeg, tasks)
		if len(hits) == 0 {
			in.recordUnresolved(seg)
			continue
		}
		for _, hit := range hits {
			matched = append(matched, in.buildMatch(hit.Task, hit.Pattern, seg, normSeg))
		}
	}

	matched = dedupe(matched)
	matched = propagateSameStretch(matched, in.norm)

	var totalMinutes float64
	for _, m := range matched {
		if m.TotalMinutes != nil {
			totalMinutes += *m.TotalMinutes
		}
	}
	totalHours := 0.0
	if totalMinutes > 0 {
		totalHours = totalMinutes / 60.0
	}

	log.Debug().
		Int("segments_matched", len(matched)).
		Float64("total_minutes", totalMinutes).
		Msg("interpretation done")

	return Result{
		FreeText: text,
		Tasks:    matched,
		Totals: Totals{
			Count:        len(matched),
			TotalMinutes: totalMinutes,
			TotalHours:   totalHours,
		},
		Meta: Meta{
			Version:      version.Info().Version,
			MappingFiles: in.cat.Files(),
		},
	}
}

// buildMatch resolves quantity and labor time for one hit
func (in *Interpreter) buildMatch(task catalog.Task, pattern, rawSeg, normSeg string) TaskMatch {
	qty := quantity.FromContext(normSeg, pattern)

	perUnit, source := in.resolveTime(task)

	m := TaskMatch{
		TaskID:         task.ID,
		Label:          task.Label,
		Category:       task.Category,
		MappingFile:    task.SourceFile,
		MatchedPattern: pattern,
		TextSegment:    rawSeg,
		Quantity:       qty,
		TimeSource:     source,
		Materials:      task.Materials,
	}

	if moment, variant, ok := task.ATL(); ok {
		m.ATLMoment = moment
		v := variant
		m.ATLVariant = &v
	}

	if perUnit != nil {
		total := *perUnit * qty
		m.PerUnitMinutes = perUnit
		m.TotalMinutes = &total
	}

	return m
}

// resolveTime picks the per-unit minutes and the source that supplied them.
// A standardized lookup wins only when it returns a positive value; otherwise
// the manual estimate applies, and with neither the match is material-only
func (in *Interpreter) resolveTime(task catalog.Task) (*float64, string) {
	source := task.TimeSource
	if source == "" {
		source = "manual"
	}

	if moment, variant, ok := task.ATL(); ok && (source == "atl" || source == "auto") {
		if hours, found := in.lookupHours(moment, variant); found && hours > 0 {
			minutes := hours * 60.0
			return &minutes, "atl"
		}
	}

	if minutes, ok := task.ManualMinutes(); ok {
		return &minutes, "manual"
	}
	return nil, "manual"
}

// lookupHours shields the pipeline from a misbehaving time index
func (in *Interpreter) lookupHours(moment string, variant int) (hours float64, ok bool) {
	if in.times == nil {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			hours, ok = 0, false
		}
	}()
	return in.times.Hours(moment, variant)
}

// recordUnresolved forwards an unmatched segment to the curation sink,
// swallowing anything it throws back
func (in *Interpreter) recordUnresolved(seg string) {
	if in.sink == nil {
		return
	}
	defer func() { _ = recover() }()
	in.sink.Record(seg)
}
