package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/catalog"
	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/game"
	"github.com/cyberguardian/academy/internal/server"
)

// profileView is the API shape of a progression record, with catalog IDs
// resolved to full entries so clients never need a second lookup.
type profileView struct {
	ID                string              `json:"id"`
	Email             string              `json:"email"`
	Name              string              `json:"name"`
	Level             int                 `json:"level"`
	XP                int                 `json:"xp"`
	XPToNext          int                 `json:"xpToNext"`
	Specialization    *specializationView `json:"specialization"`
	Stats             game.Stats          `json:"stats"`
	Inventory         []itemView          `json:"inventory"`
	Achievements      []achievementView   `json:"achievements"`
	CompletedMissions []string            `json:"completedMissions"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func newProfileView(p *game.Player, deps *Deps) profileView {
	v := profileView{
		ID:                p.ID,
		Email:             p.Email,
		Name:              p.Name,
		Level:             p.Level,
		XP:                p.XP,
		XPToNext:          p.XPToNext,
		Stats:             p.Stats,
		Inventory:         make([]itemView, 0, len(p.Inventory)),
		Achievements:      make([]achievementView, 0, len(p.Achievements)),
		CompletedMissions: append([]string{}, p.CompletedMissions...),
		UpdatedAt:         p.UpdatedAt,
	}
	if spec := deps.Catalog.Specializations.Get(p.SpecializationID); spec != nil {
		sv := newSpecializationView(spec)
		v.Specialization = &sv
	}
	for _, id := range p.Inventory {
		if item := deps.Catalog.Items.Get(id); item != nil {
			v.Inventory = append(v.Inventory, newItemView(item))
		}
	}
	for _, id := range p.Achievements {
		if a := deps.Catalog.Achievements.Get(id); a != nil {
			v.Achievements = append(v.Achievements, newAchievementView(a))
		}
	}
	return v
}

// HandleGetProfile returns the session's in-memory record — the freshest
// state, regardless of pending persistence.
func HandleGetProfile(w http.ResponseWriter, _ *http.Request, deps *Deps, sess *server.Session) {
	sess.Lock()
	player := sess.Player
	sess.Unlock()
	writeJSON(w, http.StatusOK, newProfileView(&player, deps))
}

type changeSpecializationRequest struct {
	SpecializationID string `json:"specializationId"`
}

// HandleChangeSpecialization switches the player's track. The change is
// applied in memory first and persisted asynchronously.
func HandleChangeSpecialization(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session) {
	var req changeSpecializationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess.Lock()
	next, err := deps.Coordinator.ChangeSpecialization(sess.Player, req.SpecializationID)
	if err == nil {
		sess.Player = next
	}
	sess.Unlock()
	if err != nil {
		writeGameError(w, err)
		return
	}

	persistAsync(deps, sess.AccountID, next)
	writeJSON(w, http.StatusOK, newProfileView(&next, deps))
}

// persistAsync writes the record to storage off the request path. The
// in-memory copy stays authoritative; the outcome is published as a
// PersistStatus event so failures are observable rather than silent.
func persistAsync(deps *Deps, accountID string, player game.Player) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := deps.ProfileRepo.Update(ctx, &player)
		status := event.PersistStatus{AccountID: accountID, OK: err == nil, At: time.Now()}
		if err != nil {
			status.Error = err.Error()
			deps.Log.Error("profile persist failed",
				zap.String("account", accountID),
				zap.Error(err))
		}
		event.Publish(deps.Bus, status)
	}()
}

// Catalog entry views, shared by the profile and catalog endpoints.

type specializationView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func newSpecializationView(s *catalog.SpecializationInfo) specializationView {
	return specializationView{ID: s.ID, Name: s.Name, Description: s.Description, Icon: s.Icon, Color: s.Color}
}

type achievementView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
}

func newAchievementView(a *catalog.AchievementInfo) achievementView {
	return achievementView{ID: a.ID, Title: a.Title, Description: a.Description, Icon: a.Icon, Rarity: a.Rarity}
}

type itemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
}

func newItemView(i *catalog.ItemInfo) itemView {
	return itemView{ID: i.ID, Name: i.Name, Category: i.Category, Description: i.Description, Icon: i.Icon, Rarity: i.Rarity}
}
