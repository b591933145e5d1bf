package memory

import (
	"context"
	"sync"

	"github.com/pickempool/pickem-api/internal/domain/result"
)

type ResultRepository struct {
	mu    sync.RWMutex
	items map[string]result.GameResult
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{items: make(map[string]result.GameResult)}
}

func (r *ResultRepository) Upsert(_ context.Context, item result.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.GameCode] = cloneResult(item)

	return nil
}

func (r *ResultRepository) GetByCode(_ context.Context, gameCode string) (result.GameResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[gameCode]
	if !ok {
		return result.GameResult{}, false, nil
	}

	return cloneResult(item), true, nil
}

func (r *ResultRepository) ListByCodes(_ context.Context, gameCodes []string) ([]result.GameResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.GameResult, 0, len(gameCodes))
	for _, code := range gameCodes {
		if item, ok := r.items[code]; ok {
			out = append(out, cloneResult(item))
		}
	}

	return out, nil
}

func cloneResult(item result.GameResult) result.GameResult {
	out := item
	if item.HomeScore != nil {
		v := *item.HomeScore
		out.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		out.AwayScore = &v
	}
	if item.WinnerTeam != nil {
		v := *item.WinnerTeam
		out.WinnerTeam = &v
	}
	return out
}
