// Package catalog loads predefined habits from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitstack/internal/models"
)

//go:embed default.yaml
var defaultCatalog []byte

// File is the on-disk catalog format
type File struct {
	Habits []models.PredefinedHabit `yaml:"habits"`
}

// Default returns the built-in catalog seeded by `habitstack init`.
func Default() ([]models.PredefinedHabit, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path.
func LoadFile(path string) ([]models.PredefinedHabit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog, rejecting unknown fields, blank entries and
// repeated ids or names.
func Parse(data []byte) ([]models.PredefinedHabit, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.PredefinedHabit{}, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	ids := make(map[string]bool, len(f.Habits))
	names := make(map[string]bool, len(f.Habits))
	habits := make([]models.PredefinedHabit, 0, len(f.Habits))
	for i, h := range f.Habits {
		h.ID = strings.TrimSpace(h.ID)
		h.Name = strings.TrimSpace(h.Name)
		if h.ID == "" || h.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: id and name are required", i+1)
		}
		if ids[h.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i+1, h.ID)
		}
		if names[strings.ToLower(h.Name)] {
			return nil, fmt.Errorf("catalog entry %d: duplicate name %q", i+1, h.Name)
		}
		ids[h.ID] = true
		names[strings.ToLower(h.Name)] = true
		habits = append(habits, h)
	}
	return habits, nil
}
