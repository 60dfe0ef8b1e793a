package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexFloat is a YAML scalar parsed leniently. Numbers and numeric strings
// (decimal comma accepted) become a value; anything else stays invalid so a
// malformed field degrades instead of failing the whole mapping file
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (f *FlexFloat) UnmarshalYAML(node *yaml.Node) error {
	f.Valid = false
	if node.Kind != yaml.ScalarNode {
		return nil
	}
	s := strings.TrimSpace(strings.ReplaceAll(node.Value, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FlexInt is the integer counterpart of FlexFloat
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (f *FlexInt) UnmarshalYAML(node *yaml.Node) error {
	f.Valid = false
	if node.Kind != yaml.ScalarNode {
		return nil
	}
	s := strings.TrimSpace(node.Value)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Float is a convenience constructor used by fixtures
func Float(v float64) *FlexFloat { return &FlexFloat{Value: v, Valid: true} }

// Int is a convenience constructor used by fixtures
func Int(v int) *FlexInt { return &FlexInt{Value: v, Valid: true} }
