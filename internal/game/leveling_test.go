package game

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 2},
		{201, 2},
		{399, 2},
		{400, 3},
		{999, 5},
		{1000, 6},
		{200000, 1001},
	}
	for _, tc := range cases {
		got, err := LevelForXP(tc.xp)
		if err != nil {
			t.Fatalf("LevelForXP(%d): unexpected error %v", tc.xp, err)
		}
		if got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelForXPNegative(t *testing.T) {
	if _, err := LevelForXP(-1); err != ErrNegativeXP {
		t.Fatalf("LevelForXP(-1) err = %v, want ErrNegativeXP", err)
	}
	if _, err := XPToNext(-50); err != ErrNegativeXP {
		t.Fatalf("XPToNext(-50) err = %v, want ErrNegativeXP", err)
	}
}

func TestXPToNext(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 200},   // band boundary: full band remains
		{1, 199},
		{150, 50},
		{199, 1},   // minimum possible value
		{200, 200}, // next band starts, full band again
		{350, 50},
		{999, 1},
		{1000, 200},
	}
	for _, tc := range cases {
		got, err := XPToNext(tc.xp)
		if err != nil {
			t.Fatalf("XPToNext(%d): unexpected error %v", tc.xp, err)
		}
		if got != tc.want {
			t.Errorf("XPToNext(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

// The derived value never reaches 0 and never exceeds one full band.
func TestXPToNextRange(t *testing.T) {
	for xp := 0; xp <= 2000; xp++ {
		got, err := XPToNext(xp)
		if err != nil {
			t.Fatalf("XPToNext(%d): %v", xp, err)
		}
		if got < 1 || got > XPPerLevel {
			t.Fatalf("XPToNext(%d) = %d, outside [1, %d]", xp, got, XPPerLevel)
		}
	}
}
