package game

import "context"

// Repository describes game catalog persistence. Games are written by
// schedule and odds ingestion and read-only to every other service.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]Game, error)
	GetByCode(ctx context.Context, code string) (Game, bool, error)
	UpsertOdds(ctx context.Context, code string, odds map[string]float64) error
}
