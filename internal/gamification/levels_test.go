package gamification

import "testing"

func TestLevel(t *testing.T) {
	cases := []struct {
		name string
		xp   int
		want int
	}{
		{name: "zero_xp", xp: 0, want: 1},
		{name: "just_below_first_threshold", xp: 99, want: 1},
		{name: "exact_first_threshold", xp: 100, want: 2},
		{name: "just_below_second_threshold", xp: 199, want: 2},
		{name: "exact_second_threshold", xp: 200, want: 3},
		{name: "negative_clamps_to_one", xp: -50, want: 1},
		{name: "mid_level", xp: 450, want: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Level(tc.xp)
			if got != tc.want {
				t.Fatalf("Level(%d)=%d, want %d", tc.xp, got, tc.want)
			}
		})
	}
}

func TestXPForLevel(t *testing.T) {
	cases := []struct {
		name  string
		level int
		want  int
	}{
		{name: "level_one_floor", level: 1, want: 0},
		{name: "below_one_floor", level: 0, want: 0},
		{name: "level_two_floor", level: 2, want: 100},
		{name: "level_five_floor", level: 5, want: 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := XPForLevel(tc.level)
			if got != tc.want {
				t.Fatalf("XPForLevel(%d)=%d, want %d", tc.level, got, tc.want)
			}
		})
	}
}

func TestLevelProgressZeroAtBoundary(t *testing.T) {
	for _, xp := range []int{0, 100, 200, 500, 1300} {
		if got := LevelProgress(xp); got != 0 {
			t.Fatalf("LevelProgress(%d)=%d, want 0 at level boundary", xp, got)
		}
	}
}

func TestLevelProgressMidLevel(t *testing.T) {
	cases := []struct {
		name string
		xp   int
		want int
	}{
		{name: "quarter", xp: 25, want: 25},
		{name: "half_into_level_three", xp: 250, want: 50},
		{name: "almost_full", xp: 199, want: 99},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LevelProgress(tc.xp)
			if got != tc.want {
				t.Fatalf("LevelProgress(%d)=%d, want %d", tc.xp, got, tc.want)
			}
		})
	}
}

func TestGetLevelInfo(t *testing.T) {
	info := GetLevelInfo(250)
	if info.CurrentLevel != 3 {
		t.Fatalf("current level: want=3 got=%d", info.CurrentLevel)
	}
	if info.XPForCurrentLevel != 200 {
		t.Fatalf("xp floor: want=200 got=%d", info.XPForCurrentLevel)
	}
	if info.XPForNextLevel != 300 {
		t.Fatalf("next threshold: want=300 got=%d", info.XPForNextLevel)
	}
	if info.XPUntilNextLevel != 50 {
		t.Fatalf("xp until next: want=50 got=%d", info.XPUntilNextLevel)
	}
	if info.ProgressPercentage != 50 {
		t.Fatalf("progress: want=50 got=%d", info.ProgressPercentage)
	}
}
