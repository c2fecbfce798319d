package session

import (
	"fmt"
	"time"
)

// Greeting builds the welcome line based on how long ago the user was
// last seen. firstVisit covers users with no recorded history.
func Greeting(username string, lastSeen time.Time, now time.Time, firstVisit bool) string {
	if firstVisit {
		return fmt.Sprintf("Welcome, %s! Your growth journey starts today.", username)
	}

	days := calendarDaysBetween(lastSeen, now)
	switch {
	case days <= 0:
		return fmt.Sprintf("Back so soon, %s? Good to see you again.", username)
	case days == 1:
		return fmt.Sprintf("Welcome back, %s! Right on schedule.", username)
	default:
		return fmt.Sprintf("Welcome back, %s! It's been %d days since your last visit.", username, days)
	}
}

func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
