package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickempool/pickem-api/internal/domain/pick"
	qb "github.com/pickempool/pickem-api/internal/platform/querybuilder"
)

var pickColumns = []string{"user_id", "week_number", "game_code", "picked_team", "is_correct"}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// UpsertPicks writes the pick rows and the week status hint in one
// transaction. Rewriting a pick with the same team keeps its stored grade;
// only a change of picked team clears it, and grading re-derives the value
// once the game completes.
func (r *PickRepository) UpsertPicks(ctx context.Context, picks []pick.Pick, status pick.WeekStatus) error {
	if err := pick.ValidateBatch(picks, status); err != nil {
		return fmt.Errorf("validate picks batch: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(picks) > 0 {
		rows := make([]pickInsertModel, 0, len(picks))
		for _, p := range picks {
			rows = append(rows, pickInsertModel{
				UserID:     p.UserID,
				WeekNumber: p.WeekNumber,
				GameCode:   p.GameCode,
				PickedTeam: p.PickedTeam,
			})
		}
		query, args, err := qb.InsertModels("picks", rows, `ON CONFLICT (user_id, week_number, game_code)
DO UPDATE SET
    picked_team = EXCLUDED.picked_team,
    is_correct = CASE WHEN picks.picked_team = EXCLUDED.picked_team THEN picks.is_correct ELSE NULL END,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) || isRetryableConflict(err) {
				return fmt.Errorf("%w: %v", pick.ErrWriteConflict, err)
			}
			return fmt.Errorf("upsert picks: %w", err)
		}
	}

	statusQuery, statusArgs, err := qb.InsertInto("week_status").
		Columns("user_id", "week_number", "has_picks", "updated_at").
		Values(status.UserID, status.WeekNumber, status.HasPicks, status.UpdatedAt).
		Suffix(`ON CONFLICT (user_id, week_number)
DO UPDATE SET
    has_picks = EXCLUDED.has_picks,
    updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert week status query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, statusQuery, statusArgs...); err != nil {
		if isUniqueViolation(err) || isRetryableConflict(err) {
			return fmt.Errorf("%w: %v", pick.ErrWriteConflict, err)
		}
		return fmt.Errorf("upsert week status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isRetryableConflict(err) {
			return fmt.Errorf("%w: %v", pick.ErrWriteConflict, err)
		}
		return fmt.Errorf("commit upsert picks tx: %w", err)
	}
	return nil
}

func (r *PickRepository) ListByUser(ctx context.Context, userID string) ([]pick.Pick, error) {
	return r.selectPicks(ctx, qb.Eq("user_id", userID))
}

func (r *PickRepository) ListByUserAndWeek(ctx context.Context, userID string, weekNumber int) ([]pick.Pick, error) {
	return r.selectPicks(ctx, qb.Eq("user_id", userID), qb.Eq("week_number", weekNumber))
}

func (r *PickRepository) ListByWeek(ctx context.Context, weekNumber int) ([]pick.Pick, error) {
	return r.selectPicks(ctx, qb.Eq("week_number", weekNumber))
}

func (r *PickRepository) ListByGame(ctx context.Context, gameCode string) ([]pick.Pick, error) {
	return r.selectPicks(ctx, qb.Eq("game_code", gameCode))
}

func (r *PickRepository) ListAll(ctx context.Context) ([]pick.Pick, error) {
	return r.selectPicks(ctx)
}

func (r *PickRepository) selectPicks(ctx context.Context, conditions ...qb.Condition) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(conditions...).
		OrderBy("user_id", "week_number", "game_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Pick{
			UserID:     row.UserID,
			WeekNumber: row.WeekNumber,
			GameCode:   row.GameCode,
			PickedTeam: row.PickedTeam,
			IsCorrect:  row.IsCorrect,
		})
	}

	return out, nil
}

// ApplyGrades rewrites is_correct per pick. updated_at is left alone on
// purpose: regrading an unchanged result must leave rows identical.
func (r *PickRepository) ApplyGrades(ctx context.Context, grades []pick.Grade) error {
	if len(grades) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply grades: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, grade := range grades {
		query, args, err := qb.Update("picks").
			Set("is_correct", grade.IsCorrect).
			Where(
				qb.Eq("user_id", grade.UserID),
				qb.Eq("week_number", grade.WeekNumber),
				qb.Eq("game_code", grade.GameCode),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build apply grade query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("apply grade for game %s user %s: %w", grade.GameCode, grade.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply grades tx: %w", err)
	}
	return nil
}

func (r *PickRepository) GetWeekStatus(ctx context.Context, userID string, weekNumber int) (pick.WeekStatus, bool, error) {
	query, args, err := qb.Select("user_id", "week_number", "has_picks", "updated_at").
		From("week_status").
		Where(qb.Eq("user_id", userID), qb.Eq("week_number", weekNumber)).
		ToSQL()
	if err != nil {
		return pick.WeekStatus{}, false, fmt.Errorf("build get week status query: %w", err)
	}

	var row weekStatusTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.WeekStatus{}, false, nil
		}
		return pick.WeekStatus{}, false, fmt.Errorf("get week status: %w", err)
	}

	return pick.WeekStatus{
		UserID:     row.UserID,
		WeekNumber: row.WeekNumber,
		HasPicks:   row.HasPicks,
		UpdatedAt:  row.UpdatedAt,
	}, true, nil
}
