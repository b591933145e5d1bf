package postgres

import "time"

type userTableModel struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

type userInsertModel struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}
