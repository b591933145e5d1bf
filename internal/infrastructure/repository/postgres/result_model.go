package postgres

import "time"

type resultTableModel struct {
	GameCode   string    `db:"game_code"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	WinnerTeam *string   `db:"winner_team"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type resultInsertModel struct {
	GameCode   string  `db:"game_code"`
	HomeScore  *int    `db:"home_score"`
	AwayScore  *int    `db:"away_score"`
	WinnerTeam *string `db:"winner_team"`
}
