package event

import "time"

// SessionChanged fires on sign-in and sign-out.
type SessionChanged struct {
	AccountID string
	Email     string
	SignedIn  bool
}

// MissionCompleted fires after a finalized run is applied to the player.
type MissionCompleted struct {
	AccountID string
	MissionID string
	Points    int
	Success   bool
}

// LevelUp fires when an applied mission raised the player's level.
type LevelUp struct {
	AccountID string
	Level     int
}

// AchievementUnlocked fires once per newly granted achievement.
type AchievementUnlocked struct {
	AccountID     string
	AchievementID string
}

// PersistStatus reports the outcome of an asynchronous profile write.
// In-memory state stays authoritative either way; this is the observable
// surface for write failures.
type PersistStatus struct {
	AccountID string
	OK        bool
	Error     string
	At        time.Time
}
