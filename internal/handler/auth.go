package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/cyberguardian/academy/internal/game"
	"github.com/cyberguardian/academy/internal/server"
)

const minPasswordLen = 8

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string      `json:"token"`
	Profile profileView `json:"profile"`
}

// HandleSignup creates an account plus its seeded progression record and
// signs the new player in.
func HandleSignup(w http.ResponseWriter, r *http.Request, deps *Deps) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	// Display names come from arbitrary client input; normalize so the
	// same visual name always stores the same bytes.
	name := norm.NFC.String(strings.TrimSpace(req.Name))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	existing, err := deps.AccountRepo.LoadByEmail(r.Context(), email)
	if err != nil {
		deps.Log.Error("signup: load account", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	account, err := deps.AccountRepo.Create(r.Context(), email, name, req.Password)
	if err != nil {
		deps.Log.Error("signup: create account", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	player := game.NewPlayer(account.ID, email, name, deps.Catalog.Specializations.Default().ID)
	if err := deps.ProfileRepo.Insert(r.Context(), &player); err != nil {
		deps.Log.Error("signup: insert profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess := deps.Sessions.Create(account.ID, email, player)
	deps.Log.Info("account created",
		zap.String("account", account.ID),
		zap.String("email", email))

	writeJSON(w, http.StatusCreated, authResponse{
		Token:   sess.Token,
		Profile: newProfileView(&player, deps),
	})
}

// HandleSignin authenticates by email and password and starts a session
// with the stored progression record loaded.
func HandleSignin(w http.ResponseWriter, r *http.Request, deps *Deps) {
	if !deps.loginLimiter.Allow(r) {
		writeError(w, http.StatusTooManyRequests, "too many sign-in attempts")
		return
	}

	var req signinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := deps.AccountRepo.LoadByEmail(r.Context(), email)
	if err != nil {
		deps.Log.Error("signin: load account", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// Same rejection for unknown email and wrong password.
	if account == nil || !deps.AccountRepo.ValidatePassword(account.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	player, err := deps.ProfileRepo.Find(r.Context(), account.ID)
	if err != nil {
		deps.Log.Error("signin: load profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if player == nil {
		deps.Log.Error("signin: account has no profile", zap.String("account", account.ID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := deps.AccountRepo.UpdateLastActive(r.Context(), account.ID); err != nil {
		deps.Log.Warn("signin: update last active", zap.Error(err))
	}

	sess := deps.Sessions.Create(account.ID, email, *player)
	deps.Log.Info("signed in", zap.String("account", account.ID))

	writeJSON(w, http.StatusOK, authResponse{
		Token:   sess.Token,
		Profile: newProfileView(player, deps),
	})
}

// HandleSignout revokes the session. Any in-flight run is abandoned with
// it — unfinished progress is never applied or persisted.
func HandleSignout(w http.ResponseWriter, _ *http.Request, deps *Deps, sess *server.Session) {
	deps.Sessions.Revoke(sess.Token)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
