package game

import (
	"github.com/cyberguardian/academy/internal/catalog"
)

// RunState tracks a mission run through its lifecycle. Transitions only
// move forward: InProgress → Results → Finalized.
type RunState int

const (
	RunInProgress RunState = iota // awaiting the next choice
	RunResults                    // all steps consumed, awaiting Finalize
	RunFinalized                  // terminal; the run cannot be resumed
)

func (s RunState) String() string {
	switch s {
	case RunInProgress:
		return "in_progress"
	case RunResults:
		return "results"
	case RunFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// StepResult records one consumed step of a run.
type StepResult struct {
	Step   int
	Choice *catalog.ChoiceInfo
}

// Run walks a player through one mission's choice sequence. A run owns its
// step index and accumulator exclusively and is not safe for concurrent
// use; callers serialize access per player (the session layer does this).
//
// Each scenario choice is consumable exactly once per run, so a run takes
// exactly len(choices) steps and the same high-value choice cannot be
// picked repeatedly.
type Run struct {
	mission  *catalog.MissionInfo
	state    RunState
	step     int
	consumed map[string]bool
	results  []StepResult
	points   int
}

// NewRun starts a run over the given mission. The mission value is treated
// as immutable for the lifetime of the run.
func NewRun(mission *catalog.MissionInfo) (*Run, error) {
	if mission == nil || mission.Scenario == nil || len(mission.Scenario.Choices) == 0 {
		return nil, invalidOp("start run", "mission has no scenario choices")
	}
	return &Run{
		mission:  mission,
		state:    RunInProgress,
		consumed: make(map[string]bool, len(mission.Scenario.Choices)),
		results:  make([]StepResult, 0, len(mission.Scenario.Choices)),
	}, nil
}

// Mission returns the mission this run was started from.
func (r *Run) Mission() *catalog.MissionInfo { return r.mission }

// State returns the current lifecycle state.
func (r *Run) State() RunState { return r.state }

// Step returns the zero-based index of the next step to consume.
func (r *Run) Step() int { return r.step }

// Points returns the reward accumulated so far.
func (r *Run) Points() int { return r.points }

// Results returns the consumed steps in order. The returned slice is the
// run's own; callers must not mutate it.
func (r *Run) Results() []StepResult { return r.results }

// RemainingChoices returns the not-yet-consumed choices in scenario order —
// the option set presented for the current step.
func (r *Run) RemainingChoices() []*catalog.ChoiceInfo {
	remaining := make([]*catalog.ChoiceInfo, 0, len(r.mission.Scenario.Choices)-r.step)
	for _, c := range r.mission.Scenario.Choices {
		if !r.consumed[c.ID] {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

// SelectChoice consumes one scenario choice: adds its experience value to
// the accumulator, records a step result, and advances the step index.
// When the last step is consumed the run transitions to Results.
//
// Validation happens before any mutation, so a rejected call leaves the
// run exactly as it was.
func (r *Run) SelectChoice(choiceID string) (*catalog.ChoiceInfo, error) {
	if r.state != RunInProgress {
		return nil, invalidOp("select choice", "run is in state %s", r.state)
	}
	choice := r.mission.Scenario.Choice(choiceID)
	if choice == nil {
		return nil, invalidOp("select choice", "unknown choice %q", choiceID)
	}
	if r.consumed[choiceID] {
		return nil, invalidOp("select choice", "choice %q already selected", choiceID)
	}

	r.consumed[choiceID] = true
	r.points += choice.XPGain
	r.results = append(r.results, StepResult{Step: r.step, Choice: choice})
	r.step++
	if r.step == len(r.mission.Scenario.Choices) {
		r.state = RunResults
	}
	return choice, nil
}

// Finalize judges the finished run: success when the earned fraction of
// the reward ceiling strictly exceeds 0.6. Valid only in the Results
// state, and one-shot — the run transitions to Finalized and cannot be
// resumed or re-finalized.
func (r *Run) Finalize() (points int, success bool, err error) {
	if r.state != RunResults {
		return 0, false, invalidOp("finalize", "run is in state %s", r.state)
	}
	r.state = RunFinalized
	// Integer form of points/max > 0.6 — exact at the boundary, where
	// strict inequality means failure.
	max := r.mission.Scenario.MaxPoints()
	return r.points, r.points*10 > max*6, nil
}
