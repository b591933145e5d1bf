package pick

import (
	"fmt"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
)

// Pick is one user's chosen winner for one game of one week. The triple
// (UserID, WeekNumber, GameCode) is the primary key. IsCorrect is nil until
// the underlying game completes, and reverts to nil if the result is
// retracted.
type Pick struct {
	UserID     string
	WeekNumber int
	GameCode   string
	PickedTeam string
	IsCorrect  *bool
}

// ValidateAgainstGame checks the two structural invariants a pick must hold
// against its referenced game: the picked team participates in the game, and
// the pick's week matches the game's week.
func (p Pick) ValidateAgainstGame(g game.Game) error {
	if p.UserID == "" {
		return fmt.Errorf("pick user id is required")
	}
	if p.GameCode != g.Code {
		return fmt.Errorf("pick game code %s does not match game %s", p.GameCode, g.Code)
	}
	if p.WeekNumber != g.WeekNumber {
		return fmt.Errorf("pick week %d does not match game %s week %d", p.WeekNumber, g.Code, g.WeekNumber)
	}
	if !g.HasTeam(p.PickedTeam) {
		return fmt.Errorf("picked team %q is not playing in game %s", p.PickedTeam, g.Code)
	}

	return nil
}

// ValidateBatch checks that every row of one upsert batch belongs to the
// status row's user and week and names a game and a team. Game membership
// needs a game lookup and stays with stores that have one.
func ValidateBatch(picks []Pick, status WeekStatus) error {
	if status.UserID == "" {
		return fmt.Errorf("week status user id is required")
	}
	for _, p := range picks {
		if p.GameCode == "" || p.PickedTeam == "" {
			return fmt.Errorf("pick row for user %s is missing game or team", p.UserID)
		}
		if p.UserID != status.UserID {
			return fmt.Errorf("pick user %s does not match batch user %s", p.UserID, status.UserID)
		}
		if p.WeekNumber != status.WeekNumber {
			return fmt.Errorf("pick week %d does not match batch week %d", p.WeekNumber, status.WeekNumber)
		}
	}

	return nil
}

// WeekStatus is the O(1) has-picks hint for one (user, week). The pick table
// stays authoritative; the hint exists so landing pages avoid counting rows.
type WeekStatus struct {
	UserID     string
	WeekNumber int
	HasPicks   bool
	UpdatedAt  time.Time
}

// Grade is one grading write: the recomputed correctness of a single pick.
// A nil IsCorrect clears a previously graded value after a result retraction.
type Grade struct {
	UserID     string
	WeekNumber int
	GameCode   string
	IsCorrect  *bool
}

// SavedRow is a pick joined with its game metadata for display.
type SavedRow struct {
	Pick
	HomeTeam string
	AwayTeam string
	GameDate time.Time
}
