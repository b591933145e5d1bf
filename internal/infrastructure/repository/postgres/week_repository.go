package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickempool/pickem-api/internal/domain/week"
	qb "github.com/pickempool/pickem-api/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	query, args, err := qb.Select("week_number", "start_date", "end_date").
		From("weeks").
		OrderBy("week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weeks: %w", err)
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, week.Week{
			Number:    row.WeekNumber,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}

	return out, nil
}

func (r *WeekRepository) GetByNumber(ctx context.Context, weekNumber int) (week.Week, bool, error) {
	query, args, err := qb.Select("week_number", "start_date", "end_date").
		From("weeks").
		Where(qb.Eq("week_number", weekNumber)).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week by number: %w", err)
	}

	return week.Week{
		Number:    row.WeekNumber,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
	}, true, nil
}
