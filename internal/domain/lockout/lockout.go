// Package lockout decides when a week's picks become immutable. It is the
// sole authority on lockout: services never derive lock times themselves.
package lockout

import (
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
)

// Picks lock at 00:00 Eastern Time on the calendar day after the week's
// first kickoff. This is intentionally not a first-kickoff lock: pickers may
// keep editing through the opening game of the week.
var eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("load America/New_York: " + err.Error())
	}
	return loc
}

// LockTime returns the instant the week locks, derived from the earliest
// game date interpreted in Eastern Time. The second return is false for a
// week with no scheduled games, which never locks.
func LockTime(games []game.Game) (time.Time, bool) {
	if len(games) == 0 {
		return time.Time{}, false
	}

	first := games[0].Date
	for _, g := range games[1:] {
		if g.Date.Before(first) {
			first = g.Date
		}
	}

	// Midnight ET of the next calendar day. time.Date normalizes across
	// month boundaries and DST transitions in the zone.
	et := first.In(eastern)
	lock := time.Date(et.Year(), et.Month(), et.Day()+1, 0, 0, 0, 0, eastern)
	return lock, true
}

// Locked reports whether picks for the given week are immutable at now.
// Monotonic in now: once true for a fixed schedule, it stays true.
func Locked(games []game.Game, now time.Time) bool {
	lock, ok := LockTime(games)
	if !ok {
		return false
	}
	return !now.Before(lock)
}
