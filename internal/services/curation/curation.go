// Package curation collects the pipeline's "missing data" events as
// append-only JSONL files for later catalog curation.
//
// Recording is best effort: a sink never returns an error and never
// panics into the pipeline. A mutex serializes appends so concurrent
// drafts can share one sink
package curation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dockit/internal/platform/logger"
)

const (
	segmentsFile = "missing_task_segments.jsonl"
	pricesFile   = "missing_prices.jsonl"
	mappingsFile = "missing_material_mappings.jsonl"
)

// Sink appends curation events under a data directory.
// An empty dir disables file output; events are still logged
type Sink struct {
	dir string
	mu  sync.Mutex
	log *logger.Logger
}

// NewSink constructs a sink writing under dir
func NewSink(dir string) *Sink {
	return &Sink{dir: dir, log: logger.Named("curation")}
}

// Record stores a text segment that matched no catalog task
func (s *Sink) Record(segmentText string) {
	if segmentText == "" {
		return
	}
	s.log.Debug().Str("segment", segmentText).Msg("unmatched segment")
	s.append(segmentsFile, map[string]any{
		"ts":      time.Now().UTC().Format(time.RFC3339),
		"type":    "missing_task_segment",
		"segment": segmentText,
	})
}

// MissingPrice stores a price lookup that resolved to nothing
func (s *Sink) MissingPrice(customerKey, articleRef, articleNumber string) {
	s.log.Debug().
		Str("customer", customerKey).
		Str("ref", articleRef).
		Str("article_number", articleNumber).
		Msg("missing price")
	s.append(pricesFile, map[string]any{
		"ts":             time.Now().UTC().Format(time.RFC3339),
		"type":           "missing_price",
		"customer_id":    customerKey,
		"article_ref":    articleRef,
		"article_number": articleNumber,
	})
}

// MissingMaterialMapping stores a material ref with no article-number mapping
func (s *Sink) MissingMaterialMapping(materialRef string) {
	s.log.Debug().Str("ref", materialRef).Msg("missing material mapping")
	s.append(mappingsFile, map[string]any{
		"ts":           time.Now().UTC().Format(time.RFC3339),
		"type":         "missing_material_mapping",
		"material_ref": materialRef,
	})
}

// append writes one JSON line, swallowing every failure
func (s *Sink) append(name string, payload map[string]any) {
	defer func() { _ = recover() }()

	if s.dir == "" {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Warn().Err(err).Msg("curation dir unavailable")
		return
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("curation log unavailable")
		return
	}
	defer f.Close()

	_, _ = f.Write(append(raw, '\n'))
}
