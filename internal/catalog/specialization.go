package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpecializationInfo holds a single specialization track template.
type SpecializationInfo struct {
	ID          string
	Name        string
	Description string
	Icon        string // enumerated icon key, resolved by the client
	Color       string // gradient key, resolved by the client
}

// SpecializationTable holds all specializations indexed by ID,
// preserving catalog order for listings.
type SpecializationTable struct {
	byID  map[string]*SpecializationInfo
	order []*SpecializationInfo
}

// Get returns a specialization by ID, or nil if not found.
func (t *SpecializationTable) Get(id string) *SpecializationInfo {
	return t.byID[id]
}

// Count returns total loaded specializations.
func (t *SpecializationTable) Count() int {
	return len(t.order)
}

// All returns specializations in catalog order.
func (t *SpecializationTable) All() []*SpecializationInfo {
	return t.order
}

// Default returns the first catalog entry — the track new players are seeded with.
func (t *SpecializationTable) Default() *SpecializationInfo {
	if len(t.order) == 0 {
		return nil
	}
	return t.order[0]
}

// --- YAML loading ---

type specializationEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

type specializationListFile struct {
	Specializations []specializationEntry `yaml:"specializations"`
}

// LoadSpecializationTable loads specialization definitions from YAML.
func LoadSpecializationTable(path string) (*SpecializationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specializations: %w", err)
	}
	var f specializationListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse specializations: %w", err)
	}
	t := &SpecializationTable{
		byID:  make(map[string]*SpecializationInfo, len(f.Specializations)),
		order: make([]*SpecializationInfo, 0, len(f.Specializations)),
	}
	for i := range f.Specializations {
		e := &f.Specializations[i]
		if e.ID == "" {
			return nil, fmt.Errorf("specialization entry %d: missing id", i)
		}
		if t.byID[e.ID] != nil {
			return nil, fmt.Errorf("duplicate specialization id %q", e.ID)
		}
		info := &SpecializationInfo{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Icon:        e.Icon,
			Color:       e.Color,
		}
		t.byID[e.ID] = info
		t.order = append(t.order, info)
	}
	return t, nil
}
