// Package server holds the in-memory session state: who is signed in,
// their cached progression record, and their single active mission run.
package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/game"
)

// Session is one authenticated connection's state. The Player snapshot is
// the authoritative in-memory record between persists; the Run slot holds
// at most one in-flight mission. Handlers must hold mu while reading or
// writing Player or Run.
type Session struct {
	Token     string
	AccountID string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu     sync.Mutex
	Player game.Player
	Run    *game.Run
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionManager owns all live sessions, keyed by bearer token. One
// session per account: a second sign-in revokes the first.
type SessionManager struct {
	mu        sync.RWMutex
	byToken   map[string]*Session
	byAccount map[string]string // account ID -> token
	ttl       time.Duration
	bus       *event.Bus
}

func NewSessionManager(ttl time.Duration, bus *event.Bus) *SessionManager {
	return &SessionManager{
		byToken:   make(map[string]*Session),
		byAccount: make(map[string]string),
		ttl:       ttl,
		bus:       bus,
	}
}

// Create starts a session for the account, revoking any existing one,
// and publishes SessionChanged.
func (m *SessionManager) Create(accountID, email string, player game.Player) *Session {
	now := time.Now()
	s := &Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		Player:    player,
	}

	m.mu.Lock()
	if old, ok := m.byAccount[accountID]; ok {
		delete(m.byToken, old)
	}
	m.byToken[s.Token] = s
	m.byAccount[accountID] = s.Token
	m.mu.Unlock()

	event.Publish(m.bus, event.SessionChanged{AccountID: accountID, Email: email, SignedIn: true})
	return s
}

// Get returns the live session for a token, or nil if unknown or
// expired. Expired sessions are reaped on access.
func (m *SessionManager) Get(token string) *Session {
	m.mu.RLock()
	s, ok := m.byToken[token]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(s.ExpiresAt) {
		m.Revoke(token)
		return nil
	}
	return s
}

// Revoke ends a session and publishes SessionChanged. Revoking an
// unknown token is a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	s, ok := m.byToken[token]
	if ok {
		delete(m.byToken, token)
		if m.byAccount[s.AccountID] == token {
			delete(m.byAccount, s.AccountID)
		}
	}
	m.mu.Unlock()

	if ok {
		event.Publish(m.bus, event.SessionChanged{AccountID: s.AccountID, Email: s.Email, SignedIn: false})
	}
}

// Count returns the number of live sessions, expired included until
// their next access.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byToken)
}
