package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

// ScheduleService reads the week and game catalogs. It never writes; the
// catalogs belong to ingestion.
type ScheduleService struct {
	weekRepo week.Repository
	gameRepo game.Repository
}

func NewScheduleService(weekRepo week.Repository, gameRepo game.Repository) *ScheduleService {
	return &ScheduleService{
		weekRepo: weekRepo,
		gameRepo: gameRepo,
	}
}

func (s *ScheduleService) ListWeeks(ctx context.Context) ([]week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.ListWeeks")
	defer span.End()

	items, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	return items, nil
}

// ListGames returns games ordered by kickoff ascending, stable by game code.
// A nil weekNumber returns the whole season.
func (s *ScheduleService) ListGames(ctx context.Context, weekNumber *int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.ListGames")
	defer span.End()

	var (
		items []game.Game
		err   error
	)
	if weekNumber == nil {
		items, err = s.gameRepo.List(ctx)
	} else {
		if *weekNumber < week.FirstWeekNumber || *weekNumber > week.LastWeekNumber {
			return nil, fmt.Errorf("%w: %d", ErrUnknownWeek, *weekNumber)
		}
		items, err = s.gameRepo.ListByWeek(ctx, *weekNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	game.SortByDate(items)
	return items, nil
}

// CurrentWeek picks the default week for the UI: the largest week whose
// earliest kickoff is at or before now. Before the season starts it returns
// the first week; with no weeks at all it returns nil. This is display
// logic only and has nothing to do with the lock.
func (s *ScheduleService) CurrentWeek(ctx context.Context, now time.Time) (*int, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.CurrentWeek")
	defer span.End()

	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	if len(weeks) == 0 {
		return nil, nil
	}

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	earliest := make(map[int]time.Time, len(weeks))
	for _, g := range games {
		first, ok := earliest[g.WeekNumber]
		if !ok || g.Date.Before(first) {
			earliest[g.WeekNumber] = g.Date
		}
	}

	current := 0
	first := 0
	for _, w := range weeks {
		if first == 0 || w.Number < first {
			first = w.Number
		}
		start, ok := earliest[w.Number]
		if !ok || start.After(now) {
			continue
		}
		if w.Number > current {
			current = w.Number
		}
	}

	if current == 0 {
		return &first, nil
	}
	return &current, nil
}
