package services

import (
	"fmt"

	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
	"github.com/goccy/go-yaml"
)

// CatalogEntry is one cantus firmus in a YAML catalog
type CatalogEntry struct {
	Slug   string   `yaml:"slug" json:"slug"`
	Title  string   `yaml:"title" json:"title"`
	Source string   `yaml:"source,omitempty" json:"source,omitempty"`
	Key    string   `yaml:"key" json:"key"`
	Mode   string   `yaml:"mode" json:"mode"`
	Notes  []string `yaml:"notes" json:"notes"`
}

type catalogFile struct {
	CantusFirmi []CatalogEntry `yaml:"cantus_firmi"`
}

// LoadCatalog parses and checks a YAML catalog
func LoadCatalog(data []byte) ([]CatalogEntry, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.CantusFirmi))
	for _, e := range f.CantusFirmi {
		if seen[e.Slug] {
			return nil, fmt.Errorf("catalog: duplicate slug %q", e.Slug)
		}
		seen[e.Slug] = true
		if err := CheckCantus(e.Slug, e.Key, e.Mode, e.Notes); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}
	return f.CantusFirmi, nil
}

// CheckCantus verifies that a cantus firmus can be validated against
func CheckCantus(slug, key, mode string, notes []string) error {
	if slug == "" {
		return fmt.Errorf("cantus firmus has no slug")
	}
	if len(notes) == 0 {
		return fmt.Errorf("%s: no notes", slug)
	}
	if _, err := pitch.ParseClass(key); err != nil {
		return fmt.Errorf("%s: key: %w", slug, err)
	}
	if _, err := scale.ParseMode(mode); err != nil {
		return fmt.Errorf("%s: %w", slug, err)
	}
	for i, n := range notes {
		if _, err := pitch.Parse(n); err != nil {
			return fmt.Errorf("%s: note %d: %w", slug, i+1, err)
		}
	}
	return nil
}

// Model converts a catalog entry to its stored form
func (e CatalogEntry) Model() models.CantusFirmus {
	return models.CantusFirmus{
		Slug:   e.Slug,
		Title:  e.Title,
		Source: e.Source,
		Key:    e.Key,
		Mode:   e.Mode,
		Notes:  append([]string(nil), e.Notes...),
	}
}

// FindEntry looks up a catalog entry by slug
func FindEntry(entries []CatalogEntry, slug string) (CatalogEntry, bool) {
	for _, e := range entries {
		if e.Slug == slug {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
