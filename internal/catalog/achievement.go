package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rarity tags shared by achievements and inventory items.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// FirstClearAchievementID is the only achievement granted automatically:
// awarded on a player's first successful mission completion.
const FirstClearAchievementID = "first-mission"

// AchievementInfo holds a single achievement template.
type AchievementInfo struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Rarity      string
}

// AchievementTable holds all achievements indexed by ID.
type AchievementTable struct {
	byID  map[string]*AchievementInfo
	order []*AchievementInfo
}

// Get returns an achievement by ID, or nil if not found.
func (t *AchievementTable) Get(id string) *AchievementInfo {
	return t.byID[id]
}

// Count returns total loaded achievements.
func (t *AchievementTable) Count() int {
	return len(t.order)
}

// All returns achievements in catalog order.
func (t *AchievementTable) All() []*AchievementInfo {
	return t.order
}

// --- YAML loading ---

type achievementEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Rarity      string `yaml:"rarity"`
}

type achievementListFile struct {
	Achievements []achievementEntry `yaml:"achievements"`
}

var validRarity = map[string]bool{
	RarityCommon: true, RarityRare: true, RarityEpic: true, RarityLegendary: true,
}

// LoadAchievementTable loads achievement definitions from YAML.
func LoadAchievementTable(path string) (*AchievementTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read achievements: %w", err)
	}
	var f achievementListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	t := &AchievementTable{
		byID:  make(map[string]*AchievementInfo, len(f.Achievements)),
		order: make([]*AchievementInfo, 0, len(f.Achievements)),
	}
	for i := range f.Achievements {
		e := &f.Achievements[i]
		if e.ID == "" {
			return nil, fmt.Errorf("achievement entry %d: missing id", i)
		}
		if t.byID[e.ID] != nil {
			return nil, fmt.Errorf("duplicate achievement id %q", e.ID)
		}
		if !validRarity[e.Rarity] {
			return nil, fmt.Errorf("achievement %q: unknown rarity %q", e.ID, e.Rarity)
		}
		info := &AchievementInfo{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Icon:        e.Icon,
			Rarity:      e.Rarity,
		}
		t.byID[e.ID] = info
		t.order = append(t.order, info)
	}
	return t, nil
}
