package game

import (
	"fmt"
	"sort"
	"time"
)

// Game is one scheduled matchup inside a week, identified by a stable
// game_code. Odds are point spreads keyed by team name and may be rewritten
// by ingestion until the week locks.
type Game struct {
	Code       string
	WeekNumber int
	HomeTeam   string
	AwayTeam   string
	Date       time.Time
	Odds       map[string]float64
	ByeTeams   []string
}

func (g Game) Validate() error {
	if g.Code == "" {
		return fmt.Errorf("game code is required")
	}
	if g.WeekNumber <= 0 {
		return fmt.Errorf("game %s week number must be positive", g.Code)
	}
	if g.Date.IsZero() {
		return fmt.Errorf("game %s date is required", g.Code)
	}
	if !IsNFLTeam(g.HomeTeam) {
		return fmt.Errorf("game %s home team %q is not an NFL team", g.Code, g.HomeTeam)
	}
	if !IsNFLTeam(g.AwayTeam) {
		return fmt.Errorf("game %s away team %q is not an NFL team", g.Code, g.AwayTeam)
	}
	if g.HomeTeam == g.AwayTeam {
		return fmt.Errorf("game %s home and away teams must differ", g.Code)
	}

	return nil
}

// HasTeam reports whether name is one of the two participants.
func (g Game) HasTeam(name string) bool {
	return name == g.HomeTeam || name == g.AwayTeam
}

// SortByDate orders games by kickoff ascending, stable within equal kickoffs
// by game code.
func SortByDate(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Date.Equal(games[j].Date) {
			return games[i].Code < games[j].Code
		}
		return games[i].Date.Before(games[j].Date)
	})
}
