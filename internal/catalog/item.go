package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Inventory item categories.
const (
	ItemTool          = "tool"
	ItemCertification = "certification"
	ItemKnowledge     = "knowledge"
)

// ItemInfo holds a single inventory item template. Items are granted to
// players by reward hooks; the catalog entry itself is immutable.
type ItemInfo struct {
	ID          string
	Name        string
	Category    string // tool | certification | knowledge
	Description string
	Icon        string
	Rarity      string
}

// ItemTable holds all inventory items indexed by ID.
type ItemTable struct {
	byID  map[string]*ItemInfo
	order []*ItemInfo
}

// Get returns an item by ID, or nil if not found.
func (t *ItemTable) Get(id string) *ItemInfo {
	return t.byID[id]
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.order)
}

// All returns items in catalog order.
func (t *ItemTable) All() []*ItemInfo {
	return t.order
}

// --- YAML loading ---

type itemEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Rarity      string `yaml:"rarity"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

var validItemCategory = map[string]bool{
	ItemTool: true, ItemCertification: true, ItemKnowledge: true,
}

// LoadItemTable loads inventory item definitions from YAML.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := &ItemTable{
		byID:  make(map[string]*ItemInfo, len(f.Items)),
		order: make([]*ItemInfo, 0, len(f.Items)),
	}
	for i := range f.Items {
		e := &f.Items[i]
		if e.ID == "" {
			return nil, fmt.Errorf("item entry %d: missing id", i)
		}
		if t.byID[e.ID] != nil {
			return nil, fmt.Errorf("duplicate item id %q", e.ID)
		}
		if !validItemCategory[e.Category] {
			return nil, fmt.Errorf("item %q: unknown category %q", e.ID, e.Category)
		}
		if !validRarity[e.Rarity] {
			return nil, fmt.Errorf("item %q: unknown rarity %q", e.ID, e.Rarity)
		}
		info := &ItemInfo{
			ID:          e.ID,
			Name:        e.Name,
			Category:    e.Category,
			Description: e.Description,
			Icon:        e.Icon,
			Rarity:      e.Rarity,
		}
		t.byID[e.ID] = info
		t.order = append(t.order, info)
	}
	return t, nil
}
