package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a rule table from disk. Files ending in .yaml or .yml
// are parsed as YAML; everything else as JSON. Every rule is validated,
// so a bad selector anywhere rejects the whole table rather than
// silently matching nothing later.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var set []Rule
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &set)
	default:
		err = json.Unmarshal(data, &set)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing rule file %q: %w", path, err)
	}

	for i := range set {
		if err := set[i].Validate(); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Merge places primary rules ahead of fallback rules, so site-specific
// entries from a loaded file win over the builtin table.
func Merge(primary, fallback []Rule) []Rule {
	out := make([]Rule, 0, len(primary)+len(fallback))
	out = append(out, primary...)
	return append(out, fallback...)
}
