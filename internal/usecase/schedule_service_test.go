package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

func twoWeekCatalog() (*stubWeekRepository, *stubGameRepository) {
	weekRepo := &stubWeekRepository{weeks: []week.Week{
		{Number: 1, StartDate: time.Date(2025, 9, 4, 0, 0, 0, 0, testEastern), EndDate: time.Date(2025, 9, 10, 0, 0, 0, 0, testEastern)},
		{Number: 2, StartDate: time.Date(2025, 9, 11, 0, 0, 0, 0, testEastern), EndDate: time.Date(2025, 9, 17, 0, 0, 0, 0, testEastern)},
	}}

	games := week1Games()
	games = append(games, game.Game{
		Code:       "2025-2-1",
		WeekNumber: 2,
		HomeTeam:   "Green Bay Packers",
		AwayTeam:   "Washington Commanders",
		Date:       time.Date(2025, 9, 11, 20, 15, 0, 0, testEastern),
	})
	return weekRepo, &stubGameRepository{games: games}
}

func TestScheduleService_CurrentWeek(t *testing.T) {
	t.Parallel()

	weekRepo, gameRepo := twoWeekCatalog()
	service := NewScheduleService(weekRepo, gameRepo)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "before the season opens on week 1",
			now:  time.Date(2025, 8, 1, 12, 0, 0, 0, testEastern),
			want: 1,
		},
		{
			name: "mid week 1",
			now:  time.Date(2025, 9, 6, 12, 0, 0, 0, testEastern),
			want: 1,
		},
		{
			name: "after week 2 kickoff",
			now:  time.Date(2025, 9, 12, 12, 0, 0, 0, testEastern),
			want: 2,
		},
		{
			name: "long after the season",
			now:  time.Date(2026, 2, 1, 12, 0, 0, 0, testEastern),
			want: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := service.CurrentWeek(context.Background(), tc.now)
			if err != nil {
				t.Fatalf("CurrentWeek error: %v", err)
			}
			if got == nil || *got != tc.want {
				t.Fatalf("expected week %d, got %v", tc.want, got)
			}
		})
	}
}

func TestScheduleService_CurrentWeek_NoWeeks(t *testing.T) {
	t.Parallel()

	service := NewScheduleService(&stubWeekRepository{}, &stubGameRepository{})
	got, err := service.CurrentWeek(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("CurrentWeek error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil with no weeks, got %d", *got)
	}
}

func TestScheduleService_ListGames_FilteredAndOrdered(t *testing.T) {
	t.Parallel()

	weekRepo, gameRepo := twoWeekCatalog()
	service := NewScheduleService(weekRepo, gameRepo)

	weekNumber := 1
	games, err := service.ListGames(context.Background(), &weekNumber)
	if err != nil {
		t.Fatalf("ListGames error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	// Equal kickoffs fall back to game code order.
	if games[0].Code != "2025-1-1" || games[1].Code != "2025-1-2" {
		t.Fatalf("unexpected order: %s, %s", games[0].Code, games[1].Code)
	}

	all, err := service.ListGames(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListGames all error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 games, got %d", len(all))
	}

	bad := 99
	if _, err := service.ListGames(context.Background(), &bad); !errors.Is(err, ErrUnknownWeek) {
		t.Fatalf("expected ErrUnknownWeek, got %v", err)
	}
}
