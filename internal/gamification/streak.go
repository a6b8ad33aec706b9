package gamification

import "time"

const streakWindow = 24 * time.Hour

// ShouldResetStreak reports whether the streak has lapsed: more than 24
// wall-clock hours since the last completion. An absent last completion
// never triggers a reset. The rule is elapsed time, not calendar days, so a
// completion at 23:59 followed by one at 00:05 the next day does not reset.
func ShouldResetStreak(lastCompletion *time.Time, now time.Time) bool {
	if lastCompletion == nil {
		return false
	}
	return now.Sub(*lastCompletion) > streakWindow
}

// NextStreak applies the streak transition for a day-completing event, i.e.
// the moment the full daily bundle becomes complete. It returns the new
// streak value and whether the stored value (and last completion date)
// should change:
//   - lapsed window: streak restarts at 1
//   - already advanced today: unchanged
//   - otherwise: increment
func NextStreak(streak int, lastCompletion *time.Time, now time.Time) (int, bool) {
	if ShouldResetStreak(lastCompletion, now) {
		return 1, true
	}
	if lastCompletion != nil && sameDay(*lastCompletion, now) {
		return streak, false
	}
	return streak + 1, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
