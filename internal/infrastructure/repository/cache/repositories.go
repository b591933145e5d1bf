// Package cache wraps the schedule and result stores with read-through
// caching. Pick rows are never cached; lockout decisions and grading always
// read the backing store directly.
package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/week"
	basecache "github.com/pickempool/pickem-api/internal/platform/cache"
)

type WeekRepository struct {
	next  week.Repository
	cache *basecache.Store
}

func NewWeekRepository(next week.Repository, cache *basecache.Store) *WeekRepository {
	return &WeekRepository{next: next, cache: cache}
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	v, err := r.cache.GetOrLoad(ctx, "week:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]week.Week(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]week.Week)
	return append([]week.Week(nil), items...), nil
}

func (r *WeekRepository) GetByNumber(ctx context.Context, weekNumber int) (week.Week, bool, error) {
	key := "week:number:" + strconv.Itoa(weekNumber)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNumber(ctx, weekNumber)
		if err != nil {
			return nil, err
		}
		return cachedWeekByNumber{value: item, exists: exists}, nil
	})
	if err != nil {
		return week.Week{}, false, err
	}

	cached, _ := v.(cachedWeekByNumber)
	return cached.value, cached.exists, nil
}

type cachedWeekByNumber struct {
	value  week.Week
	exists bool
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, "game:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneGames(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return cloneGames(items), nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, weekNumber int) ([]game.Game, error) {
	key := gameListByWeekKey(weekNumber)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByWeek(ctx, weekNumber)
		if err != nil {
			return nil, err
		}
		return cloneGames(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return cloneGames(items), nil
}

func (r *GameRepository) GetByCode(ctx context.Context, code string) (game.Game, bool, error) {
	key := gameByCodeKey(code)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return cachedGameByCode{value: cloneGame(item), exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByCode)
	return cloneGame(cached.value), cached.exists, nil
}

func (r *GameRepository) UpsertOdds(ctx context.Context, code string, odds map[string]float64) error {
	if err := r.next.UpsertOdds(ctx, code, odds); err != nil {
		return err
	}

	r.cache.Delete(ctx, "game:list")
	r.cache.Delete(ctx, gameByCodeKey(code))
	r.cache.DeletePrefix(ctx, gameListByWeekPrefix)
	return nil
}

type cachedGameByCode struct {
	value  game.Game
	exists bool
}

func cloneGames(items []game.Game) []game.Game {
	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		out = append(out, cloneGame(item))
	}
	return out
}

func cloneGame(item game.Game) game.Game {
	out := item
	if item.Odds != nil {
		out.Odds = make(map[string]float64, len(item.Odds))
		for team, spread := range item.Odds {
			out.Odds[team] = spread
		}
	}
	out.ByeTeams = append([]string(nil), item.ByeTeams...)
	return out
}

const gameListByWeekPrefix = "game:list:week:"

func gameListByWeekKey(weekNumber int) string {
	return gameListByWeekPrefix + strconv.Itoa(weekNumber)
}

func gameByCodeKey(code string) string {
	return "game:code:" + code
}

type ResultRepository struct {
	next  result.Repository
	cache *basecache.Store
}

func NewResultRepository(next result.Repository, cache *basecache.Store) *ResultRepository {
	return &ResultRepository{next: next, cache: cache}
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.GameResult) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, resultByCodeKey(item.GameCode))
	r.cache.DeletePrefix(ctx, resultListByCodesPrefix)
	return nil
}

func (r *ResultRepository) GetByCode(ctx context.Context, gameCode string) (result.GameResult, bool, error) {
	key := resultByCodeKey(gameCode)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByCode(ctx, gameCode)
		if err != nil {
			return nil, err
		}
		return cachedResultByCode{value: cloneResult(item), exists: exists}, nil
	})
	if err != nil {
		return result.GameResult{}, false, err
	}

	cached, _ := v.(cachedResultByCode)
	return cloneResult(cached.value), cached.exists, nil
}

func (r *ResultRepository) ListByCodes(ctx context.Context, gameCodes []string) ([]result.GameResult, error) {
	codes := append([]string(nil), gameCodes...)
	sort.Strings(codes)
	key := resultListByCodesPrefix + strings.Join(codes, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCodes(ctx, gameCodes)
		if err != nil {
			return nil, err
		}
		return cloneResults(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]result.GameResult)
	return cloneResults(items), nil
}

type cachedResultByCode struct {
	value  result.GameResult
	exists bool
}

func cloneResults(items []result.GameResult) []result.GameResult {
	out := make([]result.GameResult, 0, len(items))
	for _, item := range items {
		out = append(out, cloneResult(item))
	}
	return out
}

func cloneResult(item result.GameResult) result.GameResult {
	out := item
	if item.HomeScore != nil {
		homeScore := *item.HomeScore
		out.HomeScore = &homeScore
	}
	if item.AwayScore != nil {
		awayScore := *item.AwayScore
		out.AwayScore = &awayScore
	}
	if item.WinnerTeam != nil {
		winner := *item.WinnerTeam
		out.WinnerTeam = &winner
	}
	return out
}

const resultListByCodesPrefix = "result:codes:"

func resultByCodeKey(gameCode string) string {
	return "result:code:" + gameCode
}
