package memory

import (
	"context"
	"sync"

	"github.com/pickempool/pickem-api/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, g := range games {
		items[g.Code] = cloneGame(g)
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.items))
	for _, g := range r.items {
		out = append(out, cloneGame(g))
	}
	game.SortByDate(out)

	return out, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, weekNumber int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.items))
	for _, g := range r.items {
		if g.WeekNumber == weekNumber {
			out = append(out, cloneGame(g))
		}
	}
	game.SortByDate(out)

	return out, nil
}

func (r *GameRepository) GetByCode(_ context.Context, code string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[code]
	if !ok {
		return game.Game{}, false, nil
	}

	return cloneGame(g), true, nil
}

func (r *GameRepository) UpsertOdds(_ context.Context, code string, odds map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[code]
	if !ok {
		return nil
	}

	g.Odds = cloneOdds(odds)
	r.items[code] = g

	return nil
}

func cloneGame(g game.Game) game.Game {
	out := g
	out.Odds = cloneOdds(g.Odds)
	if g.ByeTeams != nil {
		out.ByeTeams = append([]string(nil), g.ByeTeams...)
	}
	return out
}

func cloneOdds(odds map[string]float64) map[string]float64 {
	if odds == nil {
		return nil
	}
	out := make(map[string]float64, len(odds))
	for team, points := range odds {
		out[team] = points
	}
	return out
}
