package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samvad-hq/piwik-bridge/pkg/piwik"
	"gopkg.in/yaml.v3"
)

// reportsFile represents the structure of the reports definition file.
type reportsFile struct {
	Reports []ReportConfig `yaml:"reports"`
}

// ReportConfig declares one scheduled API report.
type ReportConfig struct {
	ID      string         `yaml:"id"`
	Method  string         `yaml:"method"`
	Params  map[string]any `yaml:"params"`
	Enabled *bool          `yaml:"enabled"`
}

// EnabledValue returns the enabled flag defaulting to true.
func (rc ReportConfig) EnabledValue() bool {
	if rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// Bag converts the declared params into a fresh parameter bag. A new bag
// is built on every call because the request builder consumes its input.
func (rc ReportConfig) Bag() piwik.Params {
	bag := make(piwik.Params, len(rc.Params))
	for k, v := range rc.Params {
		bag[k] = toValue(v)
	}
	return bag
}

// toValue maps the loosely-typed YAML value onto the scalar-or-list variant.
func toValue(v any) piwik.Value {
	switch t := v.(type) {
	case []any:
		items := make([]string, len(t))
		for i, e := range t {
			items[i] = scalarString(e)
		}
		return piwik.List(items...)
	case bool:
		return piwik.Bool(t)
	default:
		return piwik.String(scalarString(v))
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// LoadReports reads the scheduled report definitions from a YAML file.
func LoadReports(path string) ([]ReportConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("reports file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reports file: %w", err)
	}

	var file reportsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode reports file: %w", err)
	}
	if len(file.Reports) == 0 {
		return nil, errors.New("reports file contains no report entries")
	}

	seen := make(map[string]bool, len(file.Reports))
	out := make([]ReportConfig, 0, len(file.Reports))
	for i, rc := range file.Reports {
		rc.ID = strings.TrimSpace(rc.ID)
		rc.Method = strings.TrimSpace(rc.Method)
		if rc.ID == "" {
			return nil, fmt.Errorf("reports[%d]: id is required", i)
		}
		if rc.Method == "" {
			return nil, fmt.Errorf("reports[%d]: method is required for %q", i, rc.ID)
		}
		if seen[rc.ID] {
			return nil, fmt.Errorf("duplicate report id %q", rc.ID)
		}
		seen[rc.ID] = true
		out = append(out, rc)
	}

	return out, nil
}
