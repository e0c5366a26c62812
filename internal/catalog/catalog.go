// Package catalog holds the static content tables: specializations,
// missions with their branching scenarios, achievements, and inventory
// items. Tables are loaded once at startup from YAML and never mutated.
package catalog

import (
	"fmt"
	"path/filepath"
)

// Catalog aggregates all content tables.
type Catalog struct {
	Specializations *SpecializationTable
	Missions        *MissionTable
	Achievements    *AchievementTable
	Items           *ItemTable
}

// Load reads all content tables from dataDir and cross-validates them.
func Load(dataDir string) (*Catalog, error) {
	specs, err := LoadSpecializationTable(filepath.Join(dataDir, "specialization_list.yaml"))
	if err != nil {
		return nil, err
	}
	missions, err := LoadMissionTable(filepath.Join(dataDir, "mission_list.yaml"))
	if err != nil {
		return nil, err
	}
	achievements, err := LoadAchievementTable(filepath.Join(dataDir, "achievement_list.yaml"))
	if err != nil {
		return nil, err
	}
	items, err := LoadItemTable(filepath.Join(dataDir, "item_list.yaml"))
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Specializations: specs,
		Missions:        missions,
		Achievements:    achievements,
		Items:           items,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks cross-table references that single-table loaders can't see.
func (c *Catalog) validate() error {
	if c.Specializations.Count() == 0 {
		return fmt.Errorf("catalog: no specializations defined")
	}
	for _, m := range c.Missions.All() {
		if c.Specializations.Get(m.SpecializationID) == nil {
			return fmt.Errorf("catalog: mission %q references unknown specialization %q",
				m.ID, m.SpecializationID)
		}
	}
	if c.Achievements.Get(FirstClearAchievementID) == nil {
		return fmt.Errorf("catalog: missing %q achievement", FirstClearAchievementID)
	}
	return nil
}
