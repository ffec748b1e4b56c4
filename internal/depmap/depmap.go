// Package depmap reads the raw dependency map supplied by the extraction
// side: one entry per module, listing its public and private dependencies
// and its category breadcrumb. The map is always supplied wholesale; there
// is no incremental merge.
package depmap

import (
	"encoding/json"
	"fmt"
	"os"
)

// Deps describes one module's declared dependencies.
type Deps struct {
	PublicDeps   []string `json:"publicDeps"`
	PrivateDeps  []string `json:"privateDeps"`
	CategoryPath string   `json:"categoryPath"`
}

// Parse decodes a dependency map.
func Parse(data []byte) (map[string]Deps, error) {
	var m map[string]Deps
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("depmap parse: %w", err)
	}
	if m == nil {
		m = map[string]Deps{}
	}
	return m, nil
}

// Load reads and decodes a dependency map file.
func Load(path string) (map[string]Deps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
