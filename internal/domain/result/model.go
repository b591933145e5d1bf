package result

// WinnerTie marks a regulation tie. Picks on tied games grade as incorrect
// regardless of side; the results view documents this to users.
const WinnerTie = "Tie"

// GameResult is the authoritative outcome of one game. WinnerTeam is nil
// until both scores are known; a non-nil winner means the game is completed.
type GameResult struct {
	GameCode   string
	HomeScore  *int
	AwayScore  *int
	WinnerTeam *string
}

// Completed reports whether the game has a derived winner (including a tie).
func (r GameResult) Completed() bool {
	return r.WinnerTeam != nil
}

// DeriveWinner computes the winner column from scores: home team when home
// leads, away team when away leads, "Tie" when equal, nil when either score
// is missing.
func DeriveWinner(homeTeam, awayTeam string, homeScore, awayScore *int) *string {
	if homeScore == nil || awayScore == nil {
		return nil
	}

	var winner string
	switch {
	case *homeScore > *awayScore:
		winner = homeTeam
	case *awayScore > *homeScore:
		winner = awayTeam
	default:
		winner = WinnerTie
	}

	return &winner
}
