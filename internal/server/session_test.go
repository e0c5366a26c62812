package server

import (
	"testing"
	"time"

	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/game"
)

func TestSessionLifecycle(t *testing.T) {
	bus := event.NewBus()
	var changes []event.SessionChanged
	event.Subscribe(bus, func(ev event.SessionChanged) {
		changes = append(changes, ev)
	})

	m := NewSessionManager(time.Hour, bus)
	player := game.NewPlayer("acct-1", "p@example.com", "Pat", "network-security")

	sess := m.Create("acct-1", "p@example.com", player)
	if sess.Token == "" {
		t.Fatal("empty token")
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want 1", m.Count())
	}

	got := m.Get(sess.Token)
	if got == nil || got.AccountID != "acct-1" {
		t.Fatalf("Get returned %+v", got)
	}
	if m.Get("not-a-token") != nil {
		t.Error("unknown token resolved")
	}

	m.Revoke(sess.Token)
	if m.Get(sess.Token) != nil {
		t.Error("revoked token still resolves")
	}
	if m.Count() != 0 {
		t.Errorf("count after revoke = %d, want 0", m.Count())
	}

	if len(changes) != 2 {
		t.Fatalf("session events = %d, want 2", len(changes))
	}
	if !changes[0].SignedIn || changes[1].SignedIn {
		t.Errorf("events = %+v, want sign-in then sign-out", changes)
	}

	// Revoking again is a no-op.
	m.Revoke(sess.Token)
	if len(changes) != 2 {
		t.Errorf("no-op revoke published an event")
	}
}

func TestSecondSignInRevokesFirst(t *testing.T) {
	m := NewSessionManager(time.Hour, event.NewBus())
	player := game.NewPlayer("acct-1", "p@example.com", "Pat", "network-security")

	first := m.Create("acct-1", "p@example.com", player)
	second := m.Create("acct-1", "p@example.com", player)

	if m.Get(first.Token) != nil {
		t.Error("first session still live after second sign-in")
	}
	if m.Get(second.Token) == nil {
		t.Error("second session not live")
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want 1", m.Count())
	}
}

func TestExpiredSessionReaped(t *testing.T) {
	m := NewSessionManager(-time.Second, event.NewBus())
	player := game.NewPlayer("acct-1", "p@example.com", "Pat", "network-security")

	sess := m.Create("acct-1", "p@example.com", player)
	if m.Get(sess.Token) != nil {
		t.Error("expired session resolved")
	}
	if m.Count() != 0 {
		t.Errorf("count = %d, want 0 after reap", m.Count())
	}
}
