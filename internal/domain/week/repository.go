package week

import "context"

// Repository exposes the season week catalog. Writes happen only at season
// bootstrap; services treat the catalog as read-only.
type Repository interface {
	List(ctx context.Context) ([]Week, error)
	GetByNumber(ctx context.Context, weekNumber int) (Week, bool, error)
}
