package workout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of an exported plan document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension; anything that is
// not .json is treated as YAML
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// EncodePlan serializes a plan for export
func EncodePlan(plan WeeklyPlan, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		raw, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding plan as json: %w", err)
		}
		return append(raw, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return nil, fmt.Errorf("encoding plan as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding plan as yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown plan format %q", format)
}

// DecodePlan parses an imported plan document and validates its shape
func DecodePlan(raw []byte, format Format) (WeeklyPlan, error) {
	var plan WeeklyPlan
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &plan); err != nil {
			return WeeklyPlan{}, fmt.Errorf("decoding plan json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &plan); err != nil {
			return WeeklyPlan{}, fmt.Errorf("decoding plan yaml: %w", err)
		}
	default:
		return WeeklyPlan{}, fmt.Errorf("unknown plan format %q", format)
	}
	if err := plan.Validate(); err != nil {
		return WeeklyPlan{}, fmt.Errorf("invalid plan: %w", err)
	}
	return plan, nil
}
