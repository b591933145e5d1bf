package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickempool/pickem-api/internal/domain/game"
	qb "github.com/pickempool/pickem-api/internal/platform/querybuilder"
)

var gameColumns = []string{"game_code", "week_number", "home_team", "away_team", "game_date", "odds", "bye_teams"}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		OrderBy("game_date", "game_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	return r.selectGames(ctx, query, args)
}

func (r *GameRepository) ListByWeek(ctx context.Context, weekNumber int) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(qb.Eq("week_number", weekNumber)).
		OrderBy("game_date", "game_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week games query: %w", err)
	}

	return r.selectGames(ctx, query, args)
}

func (r *GameRepository) GetByCode(ctx context.Context, code string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(qb.Eq("game_code", code)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by code: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return game.Game{}, false, err
	}
	return item, true, nil
}

func (r *GameRepository) UpsertOdds(ctx context.Context, code string, odds map[string]float64) error {
	encoded, err := encodeOdds(odds)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("games").
		Set("odds", encoded).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("game_code", code)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update odds query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update odds for game %s: %w", code, err)
	}

	return nil
}

func (r *GameRepository) selectGames(ctx context.Context, query string, args []any) ([]game.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}
