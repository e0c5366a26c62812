package game

import "time"

// Stats holds the eight named skill scores. The 0-100 range is a display
// convention, not enforced here.
type Stats struct {
	NetworkSecurity   int `json:"networkSecurity"`
	DigitalForensics  int `json:"digitalForensics"`
	EthicalHacking    int `json:"ethicalHacking"`
	IncidentResponse  int `json:"incidentResponse"`
	Cryptography      int `json:"cryptography"`
	SocialEngineering int `json:"socialEngineering"`
	Compliance        int `json:"compliance"`
	MalwareAnalysis   int `json:"malwareAnalysis"`
}

// DefaultStats are the values every new player record is seeded with.
func DefaultStats() Stats {
	return Stats{
		NetworkSecurity:   15,
		DigitalForensics:  10,
		EthicalHacking:    12,
		IncidentResponse:  8,
		Cryptography:      6,
		SocialEngineering: 14,
		Compliance:        5,
		MalwareAnalysis:   7,
	}
}

// Add applies a delta to a named stat. Unknown names are ignored — reward
// scripts are content, not code, and a typo there must not fail a mission.
func (s *Stats) Add(name string, delta int) {
	switch name {
	case "networkSecurity":
		s.NetworkSecurity += delta
	case "digitalForensics":
		s.DigitalForensics += delta
	case "ethicalHacking":
		s.EthicalHacking += delta
	case "incidentResponse":
		s.IncidentResponse += delta
	case "cryptography":
		s.Cryptography += delta
	case "socialEngineering":
		s.SocialEngineering += delta
	case "compliance":
		s.Compliance += delta
	case "malwareAnalysis":
		s.MalwareAnalysis += delta
	}
}

// Player is the in-memory progression record for one account. The slices
// hold catalog IDs; full catalog entries are resolved at the API edge.
type Player struct {
	ID                string
	Email             string
	Name              string
	Level             int
	XP                int // cumulative, monotonically non-decreasing
	XPToNext          int // derived: Level*200 - XP
	SpecializationID  string
	Stats             Stats
	Inventory         []string
	Achievements      []string
	CompletedMissions []string
	UpdatedAt         time.Time
}

// StarterInventory is granted to every new player record.
var StarterInventory = []string{"wireshark-pro", "nmap-scanner"}

// NewPlayer seeds the progression record for a fresh account: level 1,
// zero experience, default stats, the starter tools, and empty
// achievement and completed lists.
func NewPlayer(id, email, name, specializationID string) Player {
	level, toNext := relevel(0)
	return Player{
		ID:                id,
		Email:             email,
		Name:              name,
		Level:             level,
		XP:                0,
		XPToNext:          toNext,
		SpecializationID:  specializationID,
		Stats:             DefaultStats(),
		Inventory:         append([]string(nil), StarterInventory...),
		Achievements:      []string{},
		CompletedMissions: []string{},
		UpdatedAt:         time.Now(),
	}
}

// CompletedSet returns the completed-mission IDs as a lookup set.
func (p *Player) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(p.CompletedMissions))
	for _, id := range p.CompletedMissions {
		set[id] = true
	}
	return set
}

// HasCompleted reports whether the mission ID is in the completed set.
func (p *Player) HasCompleted(missionID string) bool {
	for _, id := range p.CompletedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

func (p *Player) hasItem(itemID string) bool {
	for _, id := range p.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// clone deep-copies the player so coordinator transforms never alias the
// caller's slices.
func (p Player) clone() Player {
	p.Inventory = append([]string(nil), p.Inventory...)
	p.Achievements = append([]string(nil), p.Achievements...)
	p.CompletedMissions = append([]string(nil), p.CompletedMissions...)
	return p
}
