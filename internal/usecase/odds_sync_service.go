package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/lockout"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

// FeedGame is one matchup from the external odds feed: a point spread per
// team name. The feed does not distinguish home from away, so matching
// against the schedule treats the pair as unordered.
type FeedGame struct {
	Spreads      map[string]float64
	CommenceTime time.Time
}

// OddsFeed is the external spreads source.
type OddsFeed interface {
	WeekOdds(ctx context.Context, weekNumber int) ([]FeedGame, error)
}

type OddsSyncInput struct {
	// Weeks narrows the sync; empty means every catalog week.
	Weeks      []int
	MaxWorkers int
}

type OddsSyncResult struct {
	WeekCount    int                  `json:"week_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	SkippedCount int                  `json:"skipped_count"`
	WorkerCount  int                  `json:"worker_count"`
	Tasks        []OddsSyncTaskResult `json:"tasks"`
}

type OddsSyncTaskResult struct {
	WeekNumber   int    `json:"week_number"`
	Status       string `json:"status"`
	GamesUpdated int    `json:"games_updated"`
	DurationMs   int64  `json:"duration_ms"`
	Message      string `json:"message,omitempty"`
}

const (
	oddsSyncStatusSuccess = "success"
	oddsSyncStatusFailed  = "failed"
	oddsSyncStatusSkipped = "skipped"

	oddsSyncDefaultWorkers = 4
	oddsSyncMaxWorkers     = 18
)

// OddsSyncService refreshes game spreads from the external feed. Locked
// weeks are skipped: odds are frozen along with the picks.
type OddsSyncService struct {
	weekRepo week.Repository
	gameRepo game.Repository
	feed     OddsFeed
	now      func() time.Time
}

func NewOddsSyncService(weekRepo week.Repository, gameRepo game.Repository, feed OddsFeed) *OddsSyncService {
	return &OddsSyncService{
		weekRepo: weekRepo,
		gameRepo: gameRepo,
		feed:     feed,
		now:      time.Now,
	}
}

func (s *OddsSyncService) Sync(ctx context.Context, input OddsSyncInput) (OddsSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "OddsSyncService.Sync")
	defer span.End()

	weekNumbers, err := s.resolveWeeks(ctx, input.Weeks)
	if err != nil {
		return OddsSyncResult{}, err
	}

	workerCount := normalizeOddsSyncWorkerCount(input.MaxWorkers, len(weekNumbers))
	result := OddsSyncResult{
		WeekCount:   len(weekNumbers),
		WorkerCount: workerCount,
		Tasks:       make([]OddsSyncTaskResult, 0, len(weekNumbers)),
	}
	if len(weekNumbers) == 0 {
		return result, nil
	}

	results := make(chan OddsSyncTaskResult, len(weekNumbers))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return OddsSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, weekNumber := range weekNumbers {
		weekNumber := weekNumber
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := OddsSyncTaskResult{WeekNumber: weekNumber}

			updated, status, message := s.syncWeek(ctx, weekNumber)
			row.GamesUpdated = updated
			row.Status = status
			row.Message = message
			row.DurationMs = time.Since(start).Milliseconds()

			switch status {
			case oddsSyncStatusSuccess:
				successCount.Add(1)
			case oddsSyncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return OddsSyncResult{}, fmt.Errorf("submit week to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].WeekNumber < result.Tasks[j].WeekNumber
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func (s *OddsSyncService) syncWeek(ctx context.Context, weekNumber int) (int, string, string) {
	games, err := s.gameRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return 0, oddsSyncStatusFailed, err.Error()
	}
	if len(games) == 0 {
		return 0, oddsSyncStatusSkipped, "no games scheduled"
	}
	if lockout.Locked(games, s.now()) {
		return 0, oddsSyncStatusSkipped, "week is locked"
	}

	feedGames, err := s.feed.WeekOdds(ctx, weekNumber)
	if err != nil {
		return 0, oddsSyncStatusFailed, err.Error()
	}

	updated := 0
	for _, g := range games {
		spreads, ok := matchFeedGame(g, feedGames)
		if !ok {
			continue
		}
		if err := s.gameRepo.UpsertOdds(ctx, g.Code, spreads); err != nil {
			return updated, oddsSyncStatusFailed, err.Error()
		}
		updated++
	}

	return updated, oddsSyncStatusSuccess, ""
}

func (s *OddsSyncService) resolveWeeks(ctx context.Context, requested []int) ([]int, error) {
	if len(requested) > 0 {
		seen := make(map[int]struct{}, len(requested))
		out := make([]int, 0, len(requested))
		for _, n := range requested {
			if n < week.FirstWeekNumber || n > week.LastWeekNumber {
				return nil, fmt.Errorf("%w: %d", ErrUnknownWeek, n)
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
		return out, nil
	}

	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	out := make([]int, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, w.Number)
	}
	return out, nil
}

// matchFeedGame finds the feed entry whose two canonical team names equal
// the game's home and away pair, in either order.
func matchFeedGame(g game.Game, feedGames []FeedGame) (map[string]float64, bool) {
	for _, fg := range feedGames {
		if len(fg.Spreads) != 2 {
			continue
		}

		matched := 0
		spreads := make(map[string]float64, 2)
		for name, points := range fg.Spreads {
			canonical := game.CanonicalTeamName(name)
			if canonical == "" || !g.HasTeam(canonical) {
				break
			}
			spreads[canonical] = points
			matched++
		}
		if matched == 2 && len(spreads) == 2 {
			return spreads, true
		}
	}

	return nil, false
}

func normalizeOddsSyncWorkerCount(requested, taskCount int) int {
	count := requested
	if count < 1 {
		count = oddsSyncDefaultWorkers
	}
	if count > oddsSyncMaxWorkers {
		count = oddsSyncMaxWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
