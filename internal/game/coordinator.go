package game

import (
	"time"

	"github.com/cyberguardian/academy/internal/catalog"
)

// RewardContext is handed to the reward hook after a successful run.
type RewardContext struct {
	MissionID        string
	SpecializationID string
	Difficulty       string
	Points           int
	Success          bool
}

// RewardGrant is what a reward hook returns: catalog item IDs to add to
// the player's inventory and named stat deltas.
type RewardGrant struct {
	Items []string
	Stats map[string]int
}

// RewardHook supplies content-defined extra rewards for completed
// missions. Implemented by the Lua scripting engine; a nil hook grants
// nothing.
type RewardHook interface {
	MissionRewards(ctx RewardContext) RewardGrant
}

// ApplyResult summarizes what a mission application changed, for event
// publishing and the completion response.
type ApplyResult struct {
	Points       int
	Success      bool
	LeveledUp    bool
	NewLevel     int
	Achievements []string // achievement IDs unlocked by this application
	Items        []string // item IDs granted by this application
}

// Coordinator applies finished mission runs to player records. All
// transforms are pure with respect to the input Player — they return a new
// value and never touch storage; persisting the result is the caller's
// explicit next step.
type Coordinator struct {
	Catalog *catalog.Catalog
	Rewards RewardHook
}

// ApplyMissionResult folds one finalized run into the player record:
// monotonic experience add, relevel, idempotent completed-set insert,
// first-clear achievement, and (on success) reward-hook grants.
func (c *Coordinator) ApplyMissionResult(p Player, mission *catalog.MissionInfo, points int, success bool) (Player, ApplyResult, error) {
	if mission == nil {
		return p, ApplyResult{}, invalidOp("apply mission", "nil mission")
	}
	if points < 0 {
		return p, ApplyResult{}, invalidOp("apply mission", "negative points")
	}

	next := p.clone()
	res := ApplyResult{Points: points, Success: success}

	oldLevel := next.Level
	next.XP += points
	next.Level, next.XPToNext = relevel(next.XP)
	res.NewLevel = next.Level
	res.LeveledUp = next.Level > oldLevel

	// Completed set: at most one occurrence of the mission ID, no matter
	// how many times the same run outcome is applied.
	if !next.HasCompleted(mission.ID) {
		next.CompletedMissions = append(next.CompletedMissions, mission.ID)
	}

	// First-clear achievement: granted exactly when the list was empty
	// before this call and the run succeeded.
	if success && len(p.Achievements) == 0 {
		next.Achievements = append(next.Achievements, catalog.FirstClearAchievementID)
		res.Achievements = append(res.Achievements, catalog.FirstClearAchievementID)
	}

	if success && c.Rewards != nil {
		grant := c.Rewards.MissionRewards(RewardContext{
			MissionID:        mission.ID,
			SpecializationID: mission.SpecializationID,
			Difficulty:       mission.Difficulty,
			Points:           points,
			Success:          success,
		})
		for _, itemID := range grant.Items {
			// Unknown or duplicate item IDs are dropped: reward scripts
			// are content and must not corrupt the record.
			if c.Catalog == nil || c.Catalog.Items.Get(itemID) == nil {
				continue
			}
			if next.hasItem(itemID) {
				continue
			}
			next.Inventory = append(next.Inventory, itemID)
			res.Items = append(res.Items, itemID)
		}
		for name, delta := range grant.Stats {
			next.Stats.Add(name, delta)
		}
	}

	next.UpdatedAt = time.Now()
	return next, res, nil
}

// ChangeSpecialization replaces the player's track with no other field
// changes.
func (c *Coordinator) ChangeSpecialization(p Player, specializationID string) (Player, error) {
	if c.Catalog == nil || c.Catalog.Specializations.Get(specializationID) == nil {
		return p, invalidOp("change specialization", "unknown specialization %q", specializationID)
	}
	next := p.clone()
	next.SpecializationID = specializationID
	next.UpdatedAt = time.Now()
	return next, nil
}
