// Package scripting hosts the Lua reward hooks. Mission rewards beyond
// raw experience (inventory grants, skill-stat bumps) are content, so they
// live in scripts the content team can edit without a rebuild.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/game"
)

// Engine wraps a single gopher-lua VM. The VM is not goroutine-safe, so
// calls are serialized with a mutex; reward hooks are short and rare
// enough that contention is a non-issue.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the rewards
// subdirectory of scriptsDir. A missing directory is not an error — the
// engine simply grants nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "rewards")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load reward scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

// MissionRewards calls the Lua mission_rewards function. Implements
// game.RewardHook. Any script problem degrades to an empty grant — reward
// scripts must never fail a mission completion.
func (e *Engine) MissionRewards(ctx game.RewardContext) game.RewardGrant {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.vm.GetGlobal("mission_rewards")
	if fn == lua.LNil {
		return game.RewardGrant{}
	}

	t := e.vm.NewTable()
	t.RawSetString("mission_id", lua.LString(ctx.MissionID))
	t.RawSetString("specialization", lua.LString(ctx.SpecializationID))
	t.RawSetString("difficulty", lua.LString(ctx.Difficulty))
	t.RawSetString("points", lua.LNumber(ctx.Points))
	t.RawSetString("success", lua.LBool(ctx.Success))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua mission_rewards failed", zap.Error(err))
		return game.RewardGrant{}
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	result, ok := ret.(*lua.LTable)
	if !ok {
		return game.RewardGrant{}
	}

	grant := game.RewardGrant{}
	if items, ok := result.RawGetString("items").(*lua.LTable); ok {
		items.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				grant.Items = append(grant.Items, string(s))
			}
		})
	}
	if stats, ok := result.RawGetString("stats").(*lua.LTable); ok {
		grant.Stats = make(map[string]int)
		stats.ForEach(func(k, v lua.LValue) {
			name, kok := k.(lua.LString)
			delta, vok := v.(lua.LNumber)
			if kok && vok {
				grant.Stats[string(name)] = int(delta)
			}
		})
	}
	return grant
}
