package game

import "errors"

// XPPerLevel is the fixed banding width: every level spans 200 XP.
const XPPerLevel = 200

// ErrNegativeXP is returned for experience values outside the domain.
var ErrNegativeXP = errors.New("experience must be non-negative")

// LevelForXP derives a player's level from cumulative experience:
// level = xp/200 + 1.
func LevelForXP(xp int) (int, error) {
	if xp < 0 {
		return 0, ErrNegativeXP
	}
	return xp/XPPerLevel + 1, nil
}

// XPToNext derives the remaining experience to the next level:
// level*200 - xp. The result is always in [1, 200] — it equals 200 at
// every exact band boundary (including xp=0) and never reaches 0.
func XPToNext(xp int) (int, error) {
	level, err := LevelForXP(xp)
	if err != nil {
		return 0, err
	}
	return level*XPPerLevel - xp, nil
}

// relevel recomputes both derived fields for a known non-negative total.
func relevel(xp int) (level, toNext int) {
	level = xp/XPPerLevel + 1
	return level, level*XPPerLevel - xp
}
