package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickempool/pickem-api/internal/domain/result"
	qb "github.com/pickempool/pickem-api/internal/platform/querybuilder"
)

var resultColumns = []string{"game_code", "home_score", "away_score", "winner_team"}

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.GameResult) error {
	query, args, err := qb.InsertModel("game_results", resultInsertModel{
		GameCode:   item.GameCode,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		WinnerTeam: item.WinnerTeam,
	}, `ON CONFLICT (game_code)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    winner_team = EXCLUDED.winner_team,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result for game %s: %w", item.GameCode, err)
	}

	return nil
}

func (r *ResultRepository) GetByCode(ctx context.Context, gameCode string) (result.GameResult, bool, error) {
	query, args, err := qb.Select(resultColumns...).
		From("game_results").
		Where(qb.Eq("game_code", gameCode)).
		ToSQL()
	if err != nil {
		return result.GameResult{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.GameResult{}, false, nil
		}
		return result.GameResult{}, false, fmt.Errorf("get result by code: %w", err)
	}

	return result.GameResult{
		GameCode:   row.GameCode,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		WinnerTeam: row.WinnerTeam,
	}, true, nil
}

func (r *ResultRepository) ListByCodes(ctx context.Context, gameCodes []string) ([]result.GameResult, error) {
	if len(gameCodes) == 0 {
		return []result.GameResult{}, nil
	}

	codes := make([]any, 0, len(gameCodes))
	for _, code := range gameCodes {
		codes = append(codes, code)
	}

	query, args, err := qb.Select(resultColumns...).
		From("game_results").
		Where(qb.In("game_code", codes)).
		OrderBy("game_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}

	out := make([]result.GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.GameResult{
			GameCode:   row.GameCode,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			WinnerTeam: row.WinnerTeam,
		})
	}

	return out, nil
}
