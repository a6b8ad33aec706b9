package gamification

import "fmt"

// Stats is the aggregate a badge predicate is evaluated against.
type Stats struct {
	Streak      int
	Coins       int
	Completions int
}

type BadgeDefinition struct {
	Name        string
	Description string
	Icon        string
	Requirement string
	Threshold   int
	// Stat extracts the raw value the badge tracks; earned means Stat >= Threshold.
	Stat func(Stats) int
	Unit string
}

// BadgeCatalog is the fixed, ordered badge catalog. checkAndAwardAll walks
// it in this order; badges are independent of each other.
var BadgeCatalog = []BadgeDefinition{
	{
		Name:        "3-Day Warrior",
		Description: "Completed all tasks for 3 days in a row",
		Icon:        "🔥",
		Requirement: "3-day streak",
		Threshold:   3,
		Stat:        func(s Stats) int { return s.Streak },
		Unit:        "days",
	},
	{
		Name:        "Week Champion",
		Description: "Completed all tasks for 7 days in a row",
		Icon:        "👑",
		Requirement: "7-day streak",
		Threshold:   7,
		Stat:        func(s Stats) int { return s.Streak },
		Unit:        "days",
	},
	{
		Name:        "Task Master",
		Description: "Completed 30 tasks in total",
		Icon:        "⭐",
		Requirement: "30 completions",
		Threshold:   30,
		Stat:        func(s Stats) int { return s.Completions },
		Unit:        "tasks",
	},
	{
		Name:        "Coin Collector",
		Description: "Earned 100 coins in total",
		Icon:        "💰",
		Requirement: "100 coins",
		Threshold:   100,
		Stat:        func(s Stats) int { return s.Coins },
		Unit:        "coins",
	},
}

// BadgeByName looks a definition up by display name; ok is false for
// unknown names.
func BadgeByName(name string) (BadgeDefinition, bool) {
	for _, def := range BadgeCatalog {
		if def.Name == name {
			return def, true
		}
	}
	return BadgeDefinition{}, false
}

// Earned reports whether the stats satisfy the badge predicate.
func (d BadgeDefinition) Earned(s Stats) bool {
	return d.Stat(s) >= d.Threshold
}

// Progress returns the capped progress percentage and a display string like
// "2/3 days".
func (d BadgeDefinition) Progress(s Stats) (int, string) {
	raw := d.Stat(s)
	pct := raw * 100 / d.Threshold
	if pct > 100 {
		pct = 100
	}
	return pct, fmt.Sprintf("%d/%d %s", raw, d.Threshold, d.Unit)
}
