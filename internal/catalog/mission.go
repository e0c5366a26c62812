package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mission category and difficulty tags. Values outside these sets are
// rejected at load time so downstream code never has to re-validate.
const (
	CategoryStory      = "story"
	CategoryChallenge  = "challenge"
	CategorySimulation = "simulation"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

// Choice correctness tags.
const (
	CorrectnessCorrect   = "correct"
	CorrectnessPartially = "partially"
	CorrectnessIncorrect = "incorrect"
)

// ChoiceInfo is one selectable action within a mission scenario.
type ChoiceInfo struct {
	ID          string
	Text        string
	Consequence string
	Explanation string
	Correctness string
	XPGain      int
}

// ScenarioInfo is a mission's branching walkthrough. The choice count
// defines the mission's step count.
type ScenarioInfo struct {
	Setting    string
	Situation  string
	Objectives []string
	Choices    []*ChoiceInfo
}

// Choice returns the scenario choice with the given ID, or nil.
func (s *ScenarioInfo) Choice(id string) *ChoiceInfo {
	for _, c := range s.Choices {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// MaxPoints returns the reward ceiling used for outcome judging:
// 100 points per step (original formula, not the sum of choice values).
func (s *ScenarioInfo) MaxPoints() int {
	return len(s.Choices) * 100
}

// MissionInfo holds a single mission template.
type MissionInfo struct {
	ID               string
	Title            string
	Description      string
	Category         string // story | challenge | simulation
	Difficulty       string // beginner | intermediate | advanced | expert
	SpecializationID string
	XPReward         int
	Requirements     []string // free-text prerequisite titles, not validated
	Scenario         *ScenarioInfo
}

// MissionTable holds all missions indexed by ID, preserving catalog order.
type MissionTable struct {
	byID  map[string]*MissionInfo
	order []*MissionInfo
}

// Get returns a mission by ID, or nil if not found.
func (t *MissionTable) Get(id string) *MissionInfo {
	return t.byID[id]
}

// Count returns total loaded missions.
func (t *MissionTable) Count() int {
	return len(t.order)
}

// All returns missions in catalog order.
func (t *MissionTable) All() []*MissionInfo {
	return t.order
}

// Available returns missions whose ID is not in the completed set,
// in catalog order.
func (t *MissionTable) Available(completed map[string]bool) []*MissionInfo {
	result := make([]*MissionInfo, 0, len(t.order))
	for _, m := range t.order {
		if !completed[m.ID] {
			result = append(result, m)
		}
	}
	return result
}

// --- YAML loading ---

type choiceEntry struct {
	ID          string `yaml:"id"`
	Text        string `yaml:"text"`
	Consequence string `yaml:"consequence"`
	Explanation string `yaml:"explanation"`
	Correctness string `yaml:"correctness"`
	XPGain      int    `yaml:"xp_gain"`
}

type scenarioEntry struct {
	Setting    string        `yaml:"setting"`
	Situation  string        `yaml:"situation"`
	Objectives []string      `yaml:"objectives"`
	Choices    []choiceEntry `yaml:"choices"`
}

type missionEntry struct {
	ID             string        `yaml:"id"`
	Title          string        `yaml:"title"`
	Description    string        `yaml:"description"`
	Category       string        `yaml:"category"`
	Difficulty     string        `yaml:"difficulty"`
	Specialization string        `yaml:"specialization"`
	XPReward       int           `yaml:"xp_reward"`
	Requirements   []string      `yaml:"requirements"`
	Scenario       scenarioEntry `yaml:"scenario"`
}

type missionListFile struct {
	Missions []missionEntry `yaml:"missions"`
}

var validCategory = map[string]bool{
	CategoryStory: true, CategoryChallenge: true, CategorySimulation: true,
}

var validDifficulty = map[string]bool{
	DifficultyBeginner: true, DifficultyIntermediate: true,
	DifficultyAdvanced: true, DifficultyExpert: true,
}

var validCorrectness = map[string]bool{
	CorrectnessCorrect: true, CorrectnessPartially: true, CorrectnessIncorrect: true,
}

// LoadMissionTable loads mission definitions from YAML.
func LoadMissionTable(path string) (*MissionTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read missions: %w", err)
	}
	var f missionListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse missions: %w", err)
	}
	t := &MissionTable{
		byID:  make(map[string]*MissionInfo, len(f.Missions)),
		order: make([]*MissionInfo, 0, len(f.Missions)),
	}
	for i := range f.Missions {
		e := &f.Missions[i]
		info, err := buildMission(e)
		if err != nil {
			return nil, fmt.Errorf("mission entry %d (%s): %w", i, e.ID, err)
		}
		if t.byID[info.ID] != nil {
			return nil, fmt.Errorf("duplicate mission id %q", info.ID)
		}
		t.byID[info.ID] = info
		t.order = append(t.order, info)
	}
	return t, nil
}

func buildMission(e *missionEntry) (*MissionInfo, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if !validCategory[e.Category] {
		return nil, fmt.Errorf("unknown category %q", e.Category)
	}
	if !validDifficulty[e.Difficulty] {
		return nil, fmt.Errorf("unknown difficulty %q", e.Difficulty)
	}
	if len(e.Scenario.Choices) == 0 {
		return nil, fmt.Errorf("scenario has no choices")
	}

	scenario := &ScenarioInfo{
		Setting:    e.Scenario.Setting,
		Situation:  e.Scenario.Situation,
		Objectives: e.Scenario.Objectives,
		Choices:    make([]*ChoiceInfo, 0, len(e.Scenario.Choices)),
	}
	seen := make(map[string]bool, len(e.Scenario.Choices))
	for j := range e.Scenario.Choices {
		c := &e.Scenario.Choices[j]
		if c.ID == "" {
			return nil, fmt.Errorf("choice %d: missing id", j)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate choice id %q", c.ID)
		}
		if !validCorrectness[c.Correctness] {
			return nil, fmt.Errorf("choice %q: unknown correctness %q", c.ID, c.Correctness)
		}
		if c.XPGain < 0 {
			return nil, fmt.Errorf("choice %q: negative xp_gain", c.ID)
		}
		seen[c.ID] = true
		scenario.Choices = append(scenario.Choices, &ChoiceInfo{
			ID:          c.ID,
			Text:        c.Text,
			Consequence: c.Consequence,
			Explanation: c.Explanation,
			Correctness: c.Correctness,
			XPGain:      c.XPGain,
		})
	}

	return &MissionInfo{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		Difficulty:       e.Difficulty,
		SpecializationID: e.Specialization,
		XPReward:         e.XPReward,
		Requirements:     e.Requirements,
		Scenario:         scenario,
	}, nil
}
