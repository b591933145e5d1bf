package result

import "context"

// Repository stores derived game outcomes. Upsert replaces the full row for
// a game code; re-ingesting identical scores must be a no-op at the row level.
type Repository interface {
	Upsert(ctx context.Context, item GameResult) error
	GetByCode(ctx context.Context, gameCode string) (GameResult, bool, error)
	ListByCodes(ctx context.Context, gameCodes []string) ([]GameResult, error)
}
