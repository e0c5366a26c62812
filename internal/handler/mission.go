package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/catalog"
	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/game"
	"github.com/cyberguardian/academy/internal/server"
)

type missionSummaryView struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	SpecializationID string   `json:"specializationId"`
	XPReward         int      `json:"xpReward"`
	Requirements     []string `json:"requirements"`
	Steps            int      `json:"steps"`
	Completed        bool     `json:"completed"`
}

func newMissionSummaryView(m *catalog.MissionInfo, completed bool) missionSummaryView {
	return missionSummaryView{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Difficulty:       m.Difficulty,
		SpecializationID: m.SpecializationID,
		XPReward:         m.XPReward,
		Requirements:     m.Requirements,
		Steps:            len(m.Scenario.Choices),
		Completed:        completed,
	}
}

// choiceOptionView is a choice as presented for selection. Outcome fields
// stay server-side until the choice is consumed.
type choiceOptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// stepFeedbackView is the revealed outcome of one consumed choice.
type stepFeedbackView struct {
	Step        int    `json:"step"`
	ChoiceID    string `json:"choiceId"`
	Consequence string `json:"consequence"`
	Explanation string `json:"explanation"`
	Correctness string `json:"correctness"`
	XPGain      int    `json:"xpGain"`
}

type runView struct {
	MissionID  string             `json:"missionId"`
	State      string             `json:"state"`
	Step       int                `json:"step"`
	Points     int                `json:"points"`
	Setting    string             `json:"setting"`
	Situation  string             `json:"situation"`
	Objectives []string           `json:"objectives"`
	Choices    []choiceOptionView `json:"choices"`
}

func newRunView(run *game.Run) runView {
	m := run.Mission()
	remaining := run.RemainingChoices()
	choices := make([]choiceOptionView, 0, len(remaining))
	for _, c := range remaining {
		choices = append(choices, choiceOptionView{ID: c.ID, Text: c.Text})
	}
	return runView{
		MissionID:  m.ID,
		State:      run.State().String(),
		Step:       run.Step(),
		Points:     run.Points(),
		Setting:    m.Scenario.Setting,
		Situation:  m.Scenario.Situation,
		Objectives: m.Scenario.Objectives,
		Choices:    choices,
	}
}

// HandleListMissions lists the catalog with per-player completion flags.
// ?available=true narrows to missions the player has not completed yet.
func HandleListMissions(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session) {
	sess.Lock()
	completed := sess.Player.CompletedSet()
	sess.Unlock()

	missions := deps.Catalog.Missions.All()
	if r.URL.Query().Get("available") == "true" {
		missions = deps.Catalog.Missions.Available(completed)
	}

	views := make([]missionSummaryView, 0, len(missions))
	for _, m := range missions {
		views = append(views, newMissionSummaryView(m, completed[m.ID]))
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleStartMission opens a run for the mission in the URL path. One run
// per session, and completed missions cannot be replayed.
func HandleStartMission(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session) {
	mission := deps.Catalog.Missions.Get(r.PathValue("id"))
	if mission == nil {
		writeError(w, http.StatusNotFound, "unknown mission")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Player.HasCompleted(mission.ID) {
		writeError(w, http.StatusConflict, "mission already completed")
		return
	}
	if sess.Run != nil && sess.Run.State() != game.RunFinalized {
		writeError(w, http.StatusConflict, "another run is active")
		return
	}

	run, err := game.NewRun(mission)
	if err != nil {
		writeGameError(w, err)
		return
	}
	sess.Run = run

	deps.Log.Info("mission started",
		zap.String("account", sess.AccountID),
		zap.String("mission", mission.ID))
	writeJSON(w, http.StatusCreated, newRunView(run))
}

type selectChoiceRequest struct {
	ChoiceID string `json:"choiceId"`
}

type selectChoiceResponse struct {
	Feedback stepFeedbackView `json:"feedback"`
	Run      runView          `json:"run"`
}

// HandleSelectChoice consumes one choice of the active run and reveals
// its outcome.
func HandleSelectChoice(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session) {
	var req selectChoiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Run == nil {
		writeError(w, http.StatusConflict, "no active run")
		return
	}
	step := sess.Run.Step()
	choice, err := sess.Run.SelectChoice(req.ChoiceID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, selectChoiceResponse{
		Feedback: stepFeedbackView{
			Step:        step,
			ChoiceID:    choice.ID,
			Consequence: choice.Consequence,
			Explanation: choice.Explanation,
			Correctness: choice.Correctness,
			XPGain:      choice.XPGain,
		},
		Run: newRunView(sess.Run),
	})
}

type finishRunResponse struct {
	Points       int               `json:"points"`
	MaxPoints    int               `json:"maxPoints"`
	Success      bool              `json:"success"`
	LeveledUp    bool              `json:"leveledUp"`
	NewLevel     int               `json:"newLevel"`
	Achievements []achievementView `json:"achievements"`
	Items        []itemView        `json:"items"`
	Profile      profileView       `json:"profile"`
}

// HandleFinishRun finalizes the active run, folds the result into the
// player record, persists it asynchronously, and publishes the
// progression events.
func HandleFinishRun(w http.ResponseWriter, _ *http.Request, deps *Deps, sess *server.Session) {
	sess.Lock()
	if sess.Run == nil {
		sess.Unlock()
		writeError(w, http.StatusConflict, "no active run")
		return
	}
	run := sess.Run
	mission := run.Mission()

	points, success, err := run.Finalize()
	if err != nil {
		sess.Unlock()
		writeGameError(w, err)
		return
	}

	next, applied, err := deps.Coordinator.ApplyMissionResult(sess.Player, mission, points, success)
	if err != nil {
		sess.Unlock()
		writeGameError(w, err)
		return
	}
	sess.Player = next
	sess.Run = nil
	sess.Unlock()

	persistAsync(deps, sess.AccountID, next)

	event.Publish(deps.Bus, event.MissionCompleted{
		AccountID: sess.AccountID,
		MissionID: mission.ID,
		Points:    points,
		Success:   success,
	})
	if applied.LeveledUp {
		event.Publish(deps.Bus, event.LevelUp{AccountID: sess.AccountID, Level: applied.NewLevel})
	}
	for _, id := range applied.Achievements {
		event.Publish(deps.Bus, event.AchievementUnlocked{AccountID: sess.AccountID, AchievementID: id})
	}

	deps.Log.Info("mission finished",
		zap.String("account", sess.AccountID),
		zap.String("mission", mission.ID),
		zap.Int("points", points),
		zap.Bool("success", success))

	resp := finishRunResponse{
		Points:    points,
		MaxPoints: mission.Scenario.MaxPoints(),
		Success:   success,
		LeveledUp: applied.LeveledUp,
		NewLevel:  applied.NewLevel,
		Profile:   newProfileView(&next, deps),
	}
	for _, id := range applied.Achievements {
		if a := deps.Catalog.Achievements.Get(id); a != nil {
			resp.Achievements = append(resp.Achievements, newAchievementView(a))
		}
	}
	for _, id := range applied.Items {
		if i := deps.Catalog.Items.Get(id); i != nil {
			resp.Items = append(resp.Items, newItemView(i))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
