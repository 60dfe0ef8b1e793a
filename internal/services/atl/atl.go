// Package atl loads the standardized labor-time table and exposes it as
// the interpreter's time index.
//
// The table is a semicolon-separated CSV. The column "Moment/Typ/Sort"
// names the labor moment; variant columns are headed "0", "-1", "-2" and
// so on; values are hours per unit with a Swedish decimal comma. The
// index is built once and is read-only, safe for concurrent lookups
package atl

import (
	"bytes"
	"encoding/csv"
	_ "embed"
	"os"
	"strconv"
	"strings"

	perr "dockit/internal/platform/errors"
)

//go:embed atl_default.csv
var embedded []byte

const momentColumn = "Moment/Typ/Sort"

// Index maps moment name to variant column to hours per unit
type Index struct {
	rows map[string]map[string]float64
}

// Load parses the embedded default table
func Load() (*Index, error) {
	return parse(embedded)
}

// LoadFile parses the table at path instead of the embedded default
func LoadFile(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Catalogf("read atl table %s: %v", path, err)
	}
	return parse(raw)
}

// Hours returns the hours per unit for moment and variant.
// Unknown moments, absent variant columns, and cells that failed to parse
// all report ok=false
func (ix *Index) Hours(moment string, variant int) (float64, bool) {
	name := strings.TrimSpace(moment)
	if name == "" {
		return 0, false
	}
	row, ok := ix.rows[name]
	if !ok {
		return 0, false
	}
	v, ok := row[strconv.Itoa(variant)]
	return v, ok
}

// Moments returns the number of distinct labor moments in the table
func (ix *Index) Moments() int { return len(ix.rows) }

func parse(raw []byte) (*Index, error) {
	// tolerate a UTF-8 BOM from spreadsheet exports
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, perr.Catalogf("parse atl table: %v", err)
	}
	if len(records) == 0 {
		return nil, perr.Catalogf("atl table is empty")
	}

	header := records[0]
	momentIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == momentColumn {
			momentIdx = i
			break
		}
	}
	if momentIdx == -1 {
		return nil, perr.Catalogf("atl table has no %q column", momentColumn)
	}

	rows := make(map[string]map[string]float64, len(records)-1)
	for _, rec := range records[1:] {
		if momentIdx >= len(rec) {
			continue
		}
		name := strings.TrimSpace(rec[momentIdx])
		if name == "" {
			continue
		}

		variants := map[string]float64{}
		for i, col := range header {
			key := strings.TrimSpace(col)
			if !isVariantColumn(key) || i >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
			if err != nil {
				continue
			}
			variants[key] = v
		}
		rows[name] = variants
	}

	return &Index{rows: rows}, nil
}

// isVariantColumn accepts headers like "0", "-1", "-2"
func isVariantColumn(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
