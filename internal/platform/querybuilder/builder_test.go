package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_code", "home_team", "away_team").
		From("games").
		Where(Eq("week_number", 3), IsNull("deleted_at")).
		OrderBy("game_date", "game_code").
		Limit(16).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_code, home_team, away_team FROM games WHERE week_number = $1 AND deleted_at IS NULL ORDER BY game_date, game_code LIMIT 16"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InCondition(t *testing.T) {
	query, args, err := Select("game_code", "winner_team").
		From("game_results").
		Where(In("game_code", []any{"2025-1-1", "2025-1-2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_code, winner_team FROM game_results WHERE game_code IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2025-1-1" || args[1] != "2025-1-2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InConditionEmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("game_code").
		From("game_results").
		Where(In("game_code", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_code FROM game_results WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("id", "username").
		Values("u1", "alice").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (id, username) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "alice" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("picks").
		Columns("user_id", "game_code", "picked_team").
		Values("u1", "2025-1-1", "Philadelphia Eagles").
		Values("u1", "2025-1-2", "Kansas City Chiefs").
		Suffix("ON CONFLICT (user_id, game_code) DO UPDATE SET picked_team = EXCLUDED.picked_team").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, game_code, picked_team) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (user_id, game_code) DO UPDATE SET picked_team = EXCLUDED.picked_team"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "u1" || args[4] != "2025-1-2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("picks").
		Set("is_correct", true).
		SetExpr("graded_at", "NOW()").
		Where(Eq("user_id", "u1"), Eq("game_code", "2025-1-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE picks SET is_correct = $1, graded_at = NOW() WHERE user_id = $2 AND game_code = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != true || args[1] != "u1" || args[2] != "2025-1-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		UserID   string `db:"user_id"`
		GameCode string `db:"game_code"`
		Team     string `db:"picked_team"`
	}

	query, args, err := InsertModels("picks", []row{
		{UserID: "u1", GameCode: "2025-1-1", Team: "Dallas Cowboys"},
		{UserID: "u1", GameCode: "2025-1-2", Team: "Buffalo Bills"},
	}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, game_code, picked_team) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[5] != "Buffalo Bills" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
