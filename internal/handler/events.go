package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cyberguardian/academy/internal/event"
	"github.com/cyberguardian/academy/internal/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token-authenticated; browser origin is not the trust
	// boundary here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// feedFrame is one websocket message on the event feed.
type feedFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	feedBuffer   = 32
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// HandleEvents upgrades to a websocket and streams the session's own
// progression events: mission completions, level-ups, achievement
// unlocks, and persistence outcomes.
func HandleEvents(w http.ResponseWriter, r *http.Request, deps *Deps, sess *server.Session) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		deps.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Bus handlers run in the publisher's goroutine; hand frames to this
	// connection's writer through a buffered channel. A slow consumer
	// drops frames rather than stalling publishers.
	frames := make(chan feedFrame, feedBuffer)
	send := func(frame feedFrame) {
		select {
		case frames <- frame:
		default:
			deps.Log.Warn("event feed overflow, dropping frame",
				zap.String("account", sess.AccountID),
				zap.String("type", frame.Type))
		}
	}

	accountID := sess.AccountID
	cancels := []func(){
		event.Subscribe(deps.Bus, func(ev event.MissionCompleted) {
			if ev.AccountID == accountID {
				send(feedFrame{Type: "mission_completed", Data: ev})
			}
		}),
		event.Subscribe(deps.Bus, func(ev event.LevelUp) {
			if ev.AccountID == accountID {
				send(feedFrame{Type: "level_up", Data: ev})
			}
		}),
		event.Subscribe(deps.Bus, func(ev event.AchievementUnlocked) {
			if ev.AccountID == accountID {
				send(feedFrame{Type: "achievement_unlocked", Data: ev})
			}
		}),
		event.Subscribe(deps.Bus, func(ev event.PersistStatus) {
			if ev.AccountID == accountID {
				send(feedFrame{Type: "persist_status", Data: ev})
			}
		}),
		event.Subscribe(deps.Bus, func(ev event.SessionChanged) {
			// Sign-out from elsewhere ends this feed too.
			if ev.AccountID == accountID && !ev.SignedIn {
				send(feedFrame{Type: "session_ended", Data: ev})
			}
		}),
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	// Reader goroutine: we expect no client messages, but reading drives
	// close detection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case frame := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			if frame.Type == "session_ended" {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
