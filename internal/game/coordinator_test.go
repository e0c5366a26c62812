package game

import (
	"testing"

	"github.com/cyberguardian/academy/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("testdata")
	if err != nil {
		t.Fatalf("load test catalog: %v", err)
	}
	return cat
}

// stubRewards is a fixed-grant RewardHook.
type stubRewards struct {
	grant RewardGrant
}

func (s *stubRewards) MissionRewards(RewardContext) RewardGrant { return s.grant }

func newTestPlayer() Player {
	return NewPlayer("acct-1", "p@example.com", "Pat", "network-security")
}

func TestApplyMissionResultExperience(t *testing.T) {
	cat := testCatalog(t)
	coord := &Coordinator{Catalog: cat}
	mission := cat.Missions.Get("intro-mission")

	p := newTestPlayer()
	p.XP = 180
	p.Level, p.XPToNext = 1, 20

	next, res, err := coord.ApplyMissionResult(p, mission, 50, true)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.XP != 230 {
		t.Errorf("xp = %d, want 230", next.XP)
	}
	if next.Level != 2 {
		t.Errorf("level = %d, want 2", next.Level)
	}
	if next.XPToNext != 170 {
		t.Errorf("xpToNext = %d, want 170", next.XPToNext)
	}
	if !res.LeveledUp || res.NewLevel != 2 {
		t.Errorf("result = %+v, want leveled up to 2", res)
	}

	// Input value untouched.
	if p.XP != 180 || p.Level != 1 {
		t.Errorf("input player mutated: xp=%d level=%d", p.XP, p.Level)
	}
}

func TestApplyMissionResultRejectsBadInput(t *testing.T) {
	cat := testCatalog(t)
	coord := &Coordinator{Catalog: cat}
	p := newTestPlayer()

	if _, _, err := coord.ApplyMissionResult(p, nil, 10, true); err == nil {
		t.Error("nil mission accepted")
	}
	mission := cat.Missions.Get("intro-mission")
	if _, _, err := coord.ApplyMissionResult(p, mission, -5, true); err == nil {
		t.Error("negative points accepted")
	}
}

func TestApplyMissionResultCompletedSet(t *testing.T) {
	cat := testCatalog(t)
	coord := &Coordinator{Catalog: cat}
	mission := cat.Missions.Get("intro-mission")
	p := newTestPlayer()

	next, _, err := coord.ApplyMissionResult(p, mission, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if !next.HasCompleted("intro-mission") {
		t.Fatal("mission not recorded as completed")
	}

	// Applying again never duplicates the entry.
	again, _, err := coord.ApplyMissionResult(next, mission, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, id := range again.CompletedMissions {
		if id == "intro-mission" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("completed entries = %d, want 1", count)
	}
}

func TestFirstClearAchievement(t *testing.T) {
	cat := testCatalog(t)
	coord := &Coordinator{Catalog: cat}
	mission := cat.Missions.Get("intro-mission")

	// Granted on a successful clear with an empty list.
	p := newTestPlayer()
	next, res, err := coord.ApplyMissionResult(p, mission, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Achievements) != 1 || next.Achievements[0] != catalog.FirstClearAchievementID {
		t.Errorf("achievements = %v, want [%s]", next.Achievements, catalog.FirstClearAchievementID)
	}
	if len(res.Achievements) != 1 {
		t.Errorf("result achievements = %v, want one entry", res.Achievements)
	}

	// Not granted on failure.
	p2 := newTestPlayer()
	next2, _, err := coord.ApplyMissionResult(p2, mission, 20, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(next2.Achievements) != 0 {
		t.Errorf("achievements after failure = %v, want none", next2.Achievements)
	}

	// Never granted twice.
	next3, res3, err := coord.ApplyMissionResult(next, mission, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(next3.Achievements) != 1 {
		t.Errorf("achievements = %v, want exactly one", next3.Achievements)
	}
	if len(res3.Achievements) != 0 {
		t.Errorf("result achievements = %v, want none on re-apply", res3.Achievements)
	}
}

func TestRewardGrants(t *testing.T) {
	cat := testCatalog(t)
	mission := cat.Missions.Get("intro-mission")

	rewards := &stubRewards{grant: RewardGrant{
		// wireshark-pro is already owned, bogus-item is not in the catalog.
		Items: []string{"gcih-certification", "wireshark-pro", "bogus-item"},
		Stats: map[string]int{"networkSecurity": 3, "notAStat": 99},
	}}
	coord := &Coordinator{Catalog: cat, Rewards: rewards}

	p := newTestPlayer()
	next, res, err := coord.ApplyMissionResult(p, mission, 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 1 || res.Items[0] != "gcih-certification" {
		t.Errorf("granted items = %v, want [gcih-certification]", res.Items)
	}
	if !next.hasItem("gcih-certification") {
		t.Error("granted item missing from inventory")
	}
	if next.Stats.NetworkSecurity != DefaultStats().NetworkSecurity+3 {
		t.Errorf("networkSecurity = %d, want %d", next.Stats.NetworkSecurity, DefaultStats().NetworkSecurity+3)
	}

	// No grants on failure.
	p2 := newTestPlayer()
	next2, res2, err := coord.ApplyMissionResult(p2, mission, 20, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res2.Items) != 0 || len(next2.Inventory) != len(p2.Inventory) {
		t.Errorf("rewards granted on failure: %v", res2.Items)
	}
}

func TestChangeSpecialization(t *testing.T) {
	cat := testCatalog(t)
	coord := &Coordinator{Catalog: cat}
	p := newTestPlayer()
	p.XP = 500
	p.Level, p.XPToNext = relevel(p.XP)

	next, err := coord.ChangeSpecialization(p, "digital-forensics")
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if next.SpecializationID != "digital-forensics" {
		t.Errorf("specialization = %q, want digital-forensics", next.SpecializationID)
	}
	// Nothing else moves.
	if next.XP != p.XP || next.Level != p.Level || len(next.Inventory) != len(p.Inventory) {
		t.Error("specialization change touched unrelated fields")
	}

	if _, err := coord.ChangeSpecialization(p, "astrology"); err == nil {
		t.Error("unknown specialization accepted")
	}
}
