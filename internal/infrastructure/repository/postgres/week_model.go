package postgres

import "time"

type weekTableModel struct {
	WeekNumber int       `db:"week_number"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	CreatedAt  time.Time `db:"created_at"`
}
