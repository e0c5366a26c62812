// Package handler implements the HTTP API. Handlers hold no state of
// their own; everything they need is injected through Deps.
package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/catalog"
	"github.com/cyberguardian/academy/internal/config"
	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/game"
	"github.com/cyberguardian/academy/internal/persist"
	"github.com/cyberguardian/academy/internal/server"
)

// Deps holds shared dependencies injected into all HTTP handlers.
type Deps struct {
	AccountRepo *persist.AccountRepo
	ProfileRepo *persist.ProfileRepo
	Catalog     *catalog.Catalog
	Coordinator *game.Coordinator
	Sessions    *server.SessionManager
	Bus         *event.Bus
	Config      *config.Config
	Log         *zap.Logger

	loginLimiter *loginLimiter
}

// RegisterAll registers every route on the mux.
func RegisterAll(mux *http.ServeMux, deps *Deps) {
	deps.loginLimiter = newLoginLimiter(deps.Config.RateLimit)

	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		HandleSignup(w, r, deps)
	})
	mux.HandleFunc("POST /api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		HandleSignin(w, r, deps)
	})
	mux.HandleFunc("POST /api/auth/signout", requireSession(deps, HandleSignout))

	mux.HandleFunc("GET /api/profile", requireSession(deps, HandleGetProfile))
	mux.HandleFunc("PUT /api/profile/specialization", requireSession(deps, HandleChangeSpecialization))

	mux.HandleFunc("GET /api/catalog/specializations", func(w http.ResponseWriter, r *http.Request) {
		HandleListSpecializations(w, r, deps)
	})
	mux.HandleFunc("GET /api/catalog/achievements", func(w http.ResponseWriter, r *http.Request) {
		HandleListAchievements(w, r, deps)
	})
	mux.HandleFunc("GET /api/catalog/items", func(w http.ResponseWriter, r *http.Request) {
		HandleListItems(w, r, deps)
	})

	mux.HandleFunc("GET /api/missions", requireSession(deps, HandleListMissions))
	mux.HandleFunc("POST /api/missions/{id}/start", requireSession(deps, HandleStartMission))
	mux.HandleFunc("POST /api/run/choice", requireSession(deps, HandleSelectChoice))
	mux.HandleFunc("POST /api/run/finish", requireSession(deps, HandleFinishRun))

	mux.HandleFunc("GET /api/events", requireSession(deps, HandleEvents))
}

// sessionHandler is an HTTP handler that runs with a resolved session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session)

// requireSession resolves the bearer token and rejects the request with
// 401 when it is missing, unknown, or expired.
func requireSession(deps *Deps, h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sess := deps.Sessions.Get(token)
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		h(w, r, deps, sess)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
