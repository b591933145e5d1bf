package memory

import (
	"fmt"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

// Seed data for the 2025 season, used by the in-memory store profile and by
// integration-style tests. Weeks cover the full regular season; game rows
// carry the opening two weeks of real matchups.

var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

// SeedWeeks lays out 18 contiguous Thursday-to-Wednesday weeks starting with
// the 2025 opener.
func SeedWeeks() []week.Week {
	weeks := make([]week.Week, 0, week.LastWeekNumber)
	start := time.Date(2025, 9, 4, 0, 0, 0, 0, eastern)
	for n := week.FirstWeekNumber; n <= week.LastWeekNumber; n++ {
		weeks = append(weeks, week.Week{
			Number:    n,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 7),
		})
		start = start.AddDate(0, 0, 7)
	}
	return weeks
}

type seedMatchup struct {
	home string
	away string
	slot int
}

// Kickoff slots within a week, offset from the week's Thursday.
const (
	slotThursdayNight = iota
	slotFridayNight
	slotSundayEarly
	slotSundayLate
	slotSundayNight
	slotMondayNight
)

func slotTime(weekStart time.Time, slot int) time.Time {
	switch slot {
	case slotThursdayNight:
		return weekStart.Add(20*time.Hour + 20*time.Minute)
	case slotFridayNight:
		return weekStart.AddDate(0, 0, 1).Add(20 * time.Hour)
	case slotSundayEarly:
		return weekStart.AddDate(0, 0, 3).Add(13 * time.Hour)
	case slotSundayLate:
		return weekStart.AddDate(0, 0, 3).Add(16*time.Hour + 25*time.Minute)
	case slotSundayNight:
		return weekStart.AddDate(0, 0, 3).Add(20*time.Hour + 20*time.Minute)
	default:
		return weekStart.AddDate(0, 0, 4).Add(20*time.Hour + 15*time.Minute)
	}
}

var seedMatchups = map[int][]seedMatchup{
	1: {
		{home: "Philadelphia Eagles", away: "Dallas Cowboys", slot: slotThursdayNight},
		{home: "Los Angeles Chargers", away: "Kansas City Chiefs", slot: slotFridayNight},
		{home: "Atlanta Falcons", away: "Tampa Bay Buccaneers", slot: slotSundayEarly},
		{home: "Cleveland Browns", away: "Cincinnati Bengals", slot: slotSundayEarly},
		{home: "Indianapolis Colts", away: "Miami Dolphins", slot: slotSundayEarly},
		{home: "Jacksonville Jaguars", away: "Carolina Panthers", slot: slotSundayEarly},
		{home: "New England Patriots", away: "Las Vegas Raiders", slot: slotSundayEarly},
		{home: "New Orleans Saints", away: "Arizona Cardinals", slot: slotSundayEarly},
		{home: "New York Jets", away: "Pittsburgh Steelers", slot: slotSundayEarly},
		{home: "Washington Commanders", away: "New York Giants", slot: slotSundayEarly},
		{home: "Denver Broncos", away: "Tennessee Titans", slot: slotSundayLate},
		{home: "Seattle Seahawks", away: "San Francisco 49ers", slot: slotSundayLate},
		{home: "Green Bay Packers", away: "Detroit Lions", slot: slotSundayLate},
		{home: "Los Angeles Rams", away: "Houston Texans", slot: slotSundayLate},
		{home: "Buffalo Bills", away: "Baltimore Ravens", slot: slotSundayNight},
		{home: "Chicago Bears", away: "Minnesota Vikings", slot: slotMondayNight},
	},
	2: {
		{home: "Green Bay Packers", away: "Washington Commanders", slot: slotThursdayNight},
		{home: "Baltimore Ravens", away: "Cleveland Browns", slot: slotSundayEarly},
		{home: "Cincinnati Bengals", away: "Jacksonville Jaguars", slot: slotSundayEarly},
		{home: "Dallas Cowboys", away: "New York Giants", slot: slotSundayEarly},
		{home: "Detroit Lions", away: "Chicago Bears", slot: slotSundayEarly},
		{home: "Miami Dolphins", away: "New England Patriots", slot: slotSundayEarly},
		{home: "New Orleans Saints", away: "San Francisco 49ers", slot: slotSundayEarly},
		{home: "Buffalo Bills", away: "New York Jets", slot: slotSundayEarly},
		{home: "Pittsburgh Steelers", away: "Seattle Seahawks", slot: slotSundayEarly},
		{home: "Los Angeles Rams", away: "Tennessee Titans", slot: slotSundayEarly},
		{home: "Arizona Cardinals", away: "Carolina Panthers", slot: slotSundayLate},
		{home: "Denver Broncos", away: "Indianapolis Colts", slot: slotSundayLate},
		{home: "Kansas City Chiefs", away: "Philadelphia Eagles", slot: slotSundayLate},
		{home: "Minnesota Vikings", away: "Atlanta Falcons", slot: slotSundayNight},
		{home: "Houston Texans", away: "Tampa Bay Buccaneers", slot: slotMondayNight},
		{home: "Las Vegas Raiders", away: "Los Angeles Chargers", slot: slotMondayNight},
	},
}

func SeedGames() []game.Game {
	weeks := SeedWeeks()
	games := make([]game.Game, 0, 32)
	for _, w := range weeks {
		matchups, ok := seedMatchups[w.Number]
		if !ok {
			continue
		}
		for i, m := range matchups {
			games = append(games, game.Game{
				Code:       fmt.Sprintf("2025-%d-%d", w.Number, i+1),
				WeekNumber: w.Number,
				HomeTeam:   m.home,
				AwayTeam:   m.away,
				Date:       slotTime(w.StartDate, m.slot),
			})
		}
	}
	return games
}
