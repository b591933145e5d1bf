package game

import "strings"

// nflTeams is the closed set of 32 franchise names. Schedule and odds
// ingestion match against these exact names.
var nflTeams = map[string]struct{}{
	"Arizona Cardinals":     {},
	"Atlanta Falcons":       {},
	"Baltimore Ravens":      {},
	"Buffalo Bills":         {},
	"Carolina Panthers":     {},
	"Chicago Bears":         {},
	"Cincinnati Bengals":    {},
	"Cleveland Browns":      {},
	"Dallas Cowboys":        {},
	"Denver Broncos":        {},
	"Detroit Lions":         {},
	"Green Bay Packers":     {},
	"Houston Texans":        {},
	"Indianapolis Colts":    {},
	"Jacksonville Jaguars":  {},
	"Kansas City Chiefs":    {},
	"Las Vegas Raiders":     {},
	"Los Angeles Chargers":  {},
	"Los Angeles Rams":      {},
	"Miami Dolphins":        {},
	"Minnesota Vikings":     {},
	"New England Patriots":  {},
	"New Orleans Saints":    {},
	"New York Giants":       {},
	"New York Jets":         {},
	"Philadelphia Eagles":   {},
	"Pittsburgh Steelers":   {},
	"San Francisco 49ers":   {},
	"Seattle Seahawks":      {},
	"Tampa Bay Buccaneers":  {},
	"Tennessee Titans":      {},
	"Washington Commanders": {},
}

// IsNFLTeam reports whether name is one of the 32 canonical franchise names.
// Matching is exact; callers normalize whitespace first.
func IsNFLTeam(name string) bool {
	_, ok := nflTeams[name]
	return ok
}

// CanonicalTeamName trims the input and returns the canonical franchise name
// when it matches the closed set, or empty string otherwise.
func CanonicalTeamName(name string) string {
	trimmed := strings.TrimSpace(name)
	if IsNFLTeam(trimmed) {
		return trimmed
	}
	return ""
}

// TeamCount is the size of the closed franchise set.
const TeamCount = 32
