package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/game"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	rewardsDir := filepath.Join(dir, "rewards")
	if err := os.MkdirAll(rewardsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rewardsDir, "rewards.lua"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMissionRewards(t *testing.T) {
	dir := writeScript(t, `
function mission_rewards(ctx)
    if not ctx.success then
        return { items = {}, stats = {} }
    end
    if ctx.mission_id == "intro" then
        return {
            items = { "gcih-certification" },
            stats = { networkSecurity = 3 },
        }
    end
    return { items = {}, stats = {} }
end
`)
	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	grant := eng.MissionRewards(game.RewardContext{
		MissionID: "intro", Difficulty: "beginner", Points: 100, Success: true,
	})
	if len(grant.Items) != 1 || grant.Items[0] != "gcih-certification" {
		t.Errorf("items = %v, want [gcih-certification]", grant.Items)
	}
	if grant.Stats["networkSecurity"] != 3 {
		t.Errorf("stats = %v, want networkSecurity=3", grant.Stats)
	}

	// Failed runs grant nothing.
	grant = eng.MissionRewards(game.RewardContext{MissionID: "intro", Success: false})
	if len(grant.Items) != 0 {
		t.Errorf("items on failure = %v, want none", grant.Items)
	}
}

func TestMissionRewardsMissingFunction(t *testing.T) {
	dir := writeScript(t, `-- no hooks defined`)
	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	grant := eng.MissionRewards(game.RewardContext{MissionID: "intro", Success: true})
	if len(grant.Items) != 0 || len(grant.Stats) != 0 {
		t.Errorf("grant = %+v, want empty", grant)
	}
}

func TestMissionRewardsScriptError(t *testing.T) {
	dir := writeScript(t, `
function mission_rewards(ctx)
    error("boom")
end
`)
	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	// A failing script degrades to an empty grant.
	grant := eng.MissionRewards(game.RewardContext{MissionID: "intro", Success: true})
	if len(grant.Items) != 0 {
		t.Errorf("grant = %+v, want empty on script error", grant)
	}
}

func TestMissingScriptsDir(t *testing.T) {
	eng, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	if err != nil {
		t.Fatalf("new engine with missing dir: %v", err)
	}
	defer eng.Close()

	grant := eng.MissionRewards(game.RewardContext{MissionID: "intro", Success: true})
	if len(grant.Items) != 0 {
		t.Errorf("grant = %+v, want empty", grant)
	}
}
