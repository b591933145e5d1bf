package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/pick"
)

func newSeededPickRepository() *PickRepository {
	return NewPickRepository(NewGameRepository(SeedGames()))
}

func TestPickRepository_UpsertAndStatus(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	now := time.Date(2025, 9, 4, 18, 0, 0, 0, time.UTC)

	err := repo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Kansas City Chiefs"},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true, UpdatedAt: now})
	if err != nil {
		t.Fatalf("UpsertPicks error: %v", err)
	}

	picks, err := repo.ListByUserAndWeek(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}

	status, ok, err := repo.GetWeekStatus(context.Background(), "u1", 1)
	if err != nil || !ok {
		t.Fatalf("expected status, ok=%v err=%v", ok, err)
	}
	if !status.HasPicks || !status.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestPickRepository_UpsertReplacesOnPrimaryKey(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	write := func(team string) {
		t.Helper()
		if err := repo.UpsertPicks(context.Background(), []pick.Pick{
			{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: team},
		}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true}); err != nil {
			t.Fatalf("UpsertPicks error: %v", err)
		}
	}

	write("Philadelphia Eagles")
	write("Dallas Cowboys")

	picks, _ := repo.ListByUserAndWeek(context.Background(), "u1", 1)
	if len(picks) != 1 {
		t.Fatalf("expected 1 row after overwrite, got %d", len(picks))
	}
	if picks[0].PickedTeam != "Dallas Cowboys" {
		t.Fatalf("expected last write to win, got %q", picks[0].PickedTeam)
	}
}

func TestPickRepository_ApplyGrades_SetAndClear(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	_ = repo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	correct := true
	if err := repo.ApplyGrades(context.Background(), []pick.Grade{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", IsCorrect: &correct},
	}); err != nil {
		t.Fatalf("ApplyGrades error: %v", err)
	}

	picks, _ := repo.ListByGame(context.Background(), "2025-1-1")
	if picks[0].IsCorrect == nil || !*picks[0].IsCorrect {
		t.Fatalf("expected graded correct, got %+v", picks[0].IsCorrect)
	}

	if err := repo.ApplyGrades(context.Background(), []pick.Grade{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", IsCorrect: nil},
	}); err != nil {
		t.Fatalf("clear grade error: %v", err)
	}

	picks, _ = repo.ListByGame(context.Background(), "2025-1-1")
	if picks[0].IsCorrect != nil {
		t.Fatalf("expected cleared grade, got %v", *picks[0].IsCorrect)
	}
}

func TestPickRepository_UpsertKeepsGradeWhenTeamUnchanged(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	row := pick.Pick{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"}
	status := pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true}

	if err := repo.UpsertPicks(context.Background(), []pick.Pick{row}, status); err != nil {
		t.Fatalf("UpsertPicks error: %v", err)
	}
	correct := true
	if err := repo.ApplyGrades(context.Background(), []pick.Grade{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", IsCorrect: &correct},
	}); err != nil {
		t.Fatalf("ApplyGrades error: %v", err)
	}

	// Same selection written again: the stored grade must survive.
	if err := repo.UpsertPicks(context.Background(), []pick.Pick{row}, status); err != nil {
		t.Fatalf("rewrite error: %v", err)
	}

	picks, _ := repo.ListByGame(context.Background(), "2025-1-1")
	if picks[0].IsCorrect == nil || !*picks[0].IsCorrect {
		t.Fatalf("rewrite with unchanged team dropped the grade: %v", picks[0].IsCorrect)
	}
}

func TestPickRepository_UpsertClearsGradeWhenTeamChanges(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	status := pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true}

	if err := repo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
	}, status); err != nil {
		t.Fatalf("UpsertPicks error: %v", err)
	}
	correct := true
	if err := repo.ApplyGrades(context.Background(), []pick.Grade{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", IsCorrect: &correct},
	}); err != nil {
		t.Fatalf("ApplyGrades error: %v", err)
	}

	if err := repo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Dallas Cowboys"},
	}, status); err != nil {
		t.Fatalf("rewrite error: %v", err)
	}

	picks, _ := repo.ListByGame(context.Background(), "2025-1-1")
	if picks[0].IsCorrect != nil {
		t.Fatalf("team change kept a stale grade: %v", *picks[0].IsCorrect)
	}
}

func TestPickRepository_UpsertRejectsInvalidRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		row    pick.Pick
		status pick.WeekStatus
	}{
		{
			name:   "team not in game",
			row:    pick.Pick{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Chicago Bears"},
			status: pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true},
		},
		{
			name:   "week does not match game",
			row:    pick.Pick{UserID: "u1", WeekNumber: 2, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
			status: pick.WeekStatus{UserID: "u1", WeekNumber: 2, HasPicks: true},
		},
		{
			name:   "unknown game",
			row:    pick.Pick{UserID: "u1", WeekNumber: 1, GameCode: "2025-9-9", PickedTeam: "Philadelphia Eagles"},
			status: pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true},
		},
		{
			name:   "foreign user in batch",
			row:    pick.Pick{UserID: "u2", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
			status: pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newSeededPickRepository()
			err := repo.UpsertPicks(context.Background(), []pick.Pick{tc.row}, tc.status)
			if err == nil {
				t.Fatal("expected row to be rejected")
			}

			picks, _ := repo.ListAll(context.Background())
			if len(picks) != 0 {
				t.Fatalf("rejected batch left %d rows behind", len(picks))
			}
			if _, ok, _ := repo.GetWeekStatus(context.Background(), tc.status.UserID, tc.status.WeekNumber); ok {
				t.Fatal("rejected batch wrote a week status")
			}
		})
	}
}

func TestPickRepository_ConcurrentUpserts(t *testing.T) {
	t.Parallel()

	repo := newSeededPickRepository()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		team := "Philadelphia Eagles"
		if i%2 == 1 {
			team = "Dallas Cowboys"
		}
		wg.Add(1)
		go func(team string) {
			defer wg.Done()
			_ = repo.UpsertPicks(context.Background(), []pick.Pick{
				{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: team},
			}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})
		}(team)
	}
	wg.Wait()

	picks, err := repo.ListByUserAndWeek(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected a single row, got %d", len(picks))
	}
	if picks[0].PickedTeam != "Philadelphia Eagles" && picks[0].PickedTeam != "Dallas Cowboys" {
		t.Fatalf("unexpected team: %q", picks[0].PickedTeam)
	}
}
