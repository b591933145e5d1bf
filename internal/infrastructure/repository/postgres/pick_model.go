package postgres

import "time"

type pickTableModel struct {
	UserID     string    `db:"user_id"`
	WeekNumber int       `db:"week_number"`
	GameCode   string    `db:"game_code"`
	PickedTeam string    `db:"picked_team"`
	IsCorrect  *bool     `db:"is_correct"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	UserID     string `db:"user_id"`
	WeekNumber int    `db:"week_number"`
	GameCode   string `db:"game_code"`
	PickedTeam string `db:"picked_team"`
}

type weekStatusTableModel struct {
	UserID     string    `db:"user_id"`
	WeekNumber int       `db:"week_number"`
	HasPicks   bool      `db:"has_picks"`
	UpdatedAt  time.Time `db:"updated_at"`
}
