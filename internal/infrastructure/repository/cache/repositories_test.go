package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/week"
	basecache "github.com/pickempool/pickem-api/internal/platform/cache"
)

type countingWeekRepo struct {
	listCalls int
	getCalls  int
	weeks     []week.Week
}

func (r *countingWeekRepo) List(context.Context) ([]week.Week, error) {
	r.listCalls++
	return append([]week.Week(nil), r.weeks...), nil
}

func (r *countingWeekRepo) GetByNumber(_ context.Context, weekNumber int) (week.Week, bool, error) {
	r.getCalls++
	for _, w := range r.weeks {
		if w.Number == weekNumber {
			return w, true, nil
		}
	}
	return week.Week{}, false, nil
}

type countingGameRepo struct {
	listByWeekCalls int
	games           map[string]game.Game
}

func (r *countingGameRepo) List(context.Context) ([]game.Game, error) {
	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func (r *countingGameRepo) ListByWeek(_ context.Context, weekNumber int) ([]game.Game, error) {
	r.listByWeekCalls++
	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		if g.WeekNumber == weekNumber {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *countingGameRepo) GetByCode(_ context.Context, code string) (game.Game, bool, error) {
	g, ok := r.games[code]
	return g, ok, nil
}

func (r *countingGameRepo) UpsertOdds(_ context.Context, code string, odds map[string]float64) error {
	g := r.games[code]
	g.Odds = odds
	r.games[code] = g
	return nil
}

type countingResultRepo struct {
	getCalls int
	results  map[string]result.GameResult
}

func (r *countingResultRepo) Upsert(_ context.Context, item result.GameResult) error {
	r.results[item.GameCode] = item
	return nil
}

func (r *countingResultRepo) GetByCode(_ context.Context, gameCode string) (result.GameResult, bool, error) {
	r.getCalls++
	item, ok := r.results[gameCode]
	return item, ok, nil
}

func (r *countingResultRepo) ListByCodes(_ context.Context, gameCodes []string) ([]result.GameResult, error) {
	out := make([]result.GameResult, 0, len(gameCodes))
	for _, code := range gameCodes {
		if item, ok := r.results[code]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func TestWeekRepositoryCachesReads(t *testing.T) {
	t.Parallel()

	next := &countingWeekRepo{weeks: []week.Week{{Number: 1}, {Number: 2}}}
	repo := NewWeekRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Equal(t, first, second)
	require.Equal(t, 1, next.listCalls)

	_, found, err := repo.GetByNumber(ctx, 2)
	require.NoError(t, err)
	require.True(t, found)
	_, found, err = repo.GetByNumber(ctx, 2)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, next.getCalls)

	// Misses are cached too, so an unknown week costs one backing read.
	_, found, err = repo.GetByNumber(ctx, 99)
	require.NoError(t, err)
	require.False(t, found)
	_, _, err = repo.GetByNumber(ctx, 99)
	require.NoError(t, err)
	require.Equal(t, 2, next.getCalls)
}

func TestGameRepositoryInvalidatesOnOddsUpsert(t *testing.T) {
	t.Parallel()

	next := &countingGameRepo{games: map[string]game.Game{
		"2025-1-1": {Code: "2025-1-1", WeekNumber: 1, HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys"},
	}}
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	games, err := repo.ListByWeek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Empty(t, games[0].Odds)

	_, err = repo.ListByWeek(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, next.listByWeekCalls)

	err = repo.UpsertOdds(ctx, "2025-1-1", map[string]float64{"Philadelphia Eagles": -7.5, "Dallas Cowboys": 7.5})
	require.NoError(t, err)

	games, err = repo.ListByWeek(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, next.listByWeekCalls)
	require.Equal(t, -7.5, games[0].Odds["Philadelphia Eagles"])
}

func TestGameRepositoryReturnsDefensiveCopies(t *testing.T) {
	t.Parallel()

	next := &countingGameRepo{games: map[string]game.Game{
		"2025-1-1": {Code: "2025-1-1", WeekNumber: 1, Odds: map[string]float64{"Philadelphia Eagles": -3}},
	}}
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, found, err := repo.GetByCode(ctx, "2025-1-1")
	require.NoError(t, err)
	require.True(t, found)

	first.Odds["Philadelphia Eagles"] = 99

	second, _, err := repo.GetByCode(ctx, "2025-1-1")
	require.NoError(t, err)
	require.Equal(t, float64(-3), second.Odds["Philadelphia Eagles"])
}

func TestResultRepositoryInvalidatesOnUpsert(t *testing.T) {
	t.Parallel()

	next := &countingResultRepo{results: map[string]result.GameResult{}}
	repo := NewResultRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, found, err := repo.GetByCode(ctx, "2025-1-1")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 1, next.getCalls)

	home, away := 24, 20
	winner := "Philadelphia Eagles"
	err = repo.Upsert(ctx, result.GameResult{GameCode: "2025-1-1", HomeScore: &home, AwayScore: &away, WinnerTeam: &winner})
	require.NoError(t, err)

	got, found, err := repo.GetByCode(ctx, "2025-1-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, next.getCalls)
	require.NotNil(t, got.WinnerTeam)
	require.Equal(t, "Philadelphia Eagles", *got.WinnerTeam)
}
