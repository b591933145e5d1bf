package usecase

import (
	"context"
	"testing"

	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/user"
)

func scoreboardUsers() *stubUserRepository {
	return &stubUserRepository{users: []user.User{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "bob"},
		{ID: "u3", Username: "carol"},
	}}
}

func completedResult(gameCode, winner string) result.GameResult {
	return result.GameResult{GameCode: gameCode, WinnerTeam: &winner}
}

func TestScoreboardService_WeeklyLeaderboard_CountsAndOrder(t *testing.T) {
	t.Parallel()

	pickRepo := &stubPickRepository{}
	_ = pickRepo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Kansas City Chiefs"},
		{UserID: "u2", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Dallas Cowboys"},
		{UserID: "u2", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Los Angeles Chargers"},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	resultRepo := &stubResultRepository{rows: map[string]result.GameResult{
		"2025-1-1": completedResult("2025-1-1", "Philadelphia Eagles"),
		"2025-1-2": completedResult("2025-1-2", "Los Angeles Chargers"),
	}}

	service := NewScoreboardService(pickRepo, resultRepo, scoreboardUsers())
	rows, err := service.WeeklyLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Both users got exactly one game right; the tie breaks on username.
	if rows[0].Username != "alice" || rows[1].Username != "bob" {
		t.Fatalf("unexpected order: %s, %s", rows[0].Username, rows[1].Username)
	}
	for _, row := range rows {
		if row.Correct != 1 || row.Total != 2 {
			t.Fatalf("unexpected tally for %s: correct=%d total=%d", row.Username, row.Correct, row.Total)
		}
		if row.Rank != 1 {
			t.Fatalf("tied users must share rank 1, got %d for %s", row.Rank, row.Username)
		}
	}
}

func TestScoreboardService_WeeklyLeaderboard_ExcludesUncompletedGames(t *testing.T) {
	t.Parallel()

	pickRepo := &stubPickRepository{}
	_ = pickRepo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-1", PickedTeam: "Philadelphia Eagles"},
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Kansas City Chiefs"},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	// Only the first game has a winner; the second must not count toward
	// the denominator.
	resultRepo := &stubResultRepository{rows: map[string]result.GameResult{
		"2025-1-1": completedResult("2025-1-1", "Philadelphia Eagles"),
		"2025-1-2": {GameCode: "2025-1-2"},
	}}

	service := NewScoreboardService(pickRepo, resultRepo, scoreboardUsers())
	rows, err := service.WeeklyLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Correct != 1 || rows[0].Total != 1 {
		t.Fatalf("expected 1/1, got %d/%d", rows[0].Correct, rows[0].Total)
	}
}

func TestScoreboardService_TiePicksCountAsGradedButIncorrect(t *testing.T) {
	t.Parallel()

	pickRepo := &stubPickRepository{}
	_ = pickRepo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Kansas City Chiefs"},
		{UserID: "u2", WeekNumber: 1, GameCode: "2025-1-2", PickedTeam: "Los Angeles Chargers"},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	resultRepo := &stubResultRepository{rows: map[string]result.GameResult{
		"2025-1-2": completedResult("2025-1-2", result.WinnerTie),
	}}

	service := NewScoreboardService(pickRepo, resultRepo, scoreboardUsers())
	rows, err := service.WeeklyLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard error: %v", err)
	}
	for _, row := range rows {
		if row.Correct != 0 || row.Total != 1 {
			t.Fatalf("tie must grade 0/1 for %s, got %d/%d", row.Username, row.Correct, row.Total)
		}
	}
}

func TestScoreboardService_DenseRanking(t *testing.T) {
	t.Parallel()

	// Three users with correct counts 5, 5 and 3 across five games.
	games := []string{"g1", "g2", "g3", "g4", "g5"}
	winner := "Philadelphia Eagles"
	loser := "Dallas Cowboys"

	pickRepo := &stubPickRepository{}
	resultRepo := &stubResultRepository{rows: map[string]result.GameResult{}}
	picks := make([]pick.Pick, 0, len(games)*3)
	for i, code := range games {
		resultRepo.rows[code] = completedResult(code, winner)
		picks = append(picks,
			pick.Pick{UserID: "u1", WeekNumber: 1, GameCode: code, PickedTeam: winner},
			pick.Pick{UserID: "u2", WeekNumber: 1, GameCode: code, PickedTeam: winner},
		)
		team := winner
		if i >= 3 {
			team = loser
		}
		picks = append(picks, pick.Pick{UserID: "u3", WeekNumber: 1, GameCode: code, PickedTeam: team})
	}
	_ = pickRepo.UpsertPicks(context.Background(), picks, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	service := NewScoreboardService(pickRepo, resultRepo, scoreboardUsers())
	rows, err := service.WeeklyLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantRanks := []int{1, 1, 2}
	wantNames := []string{"alice", "bob", "carol"}
	for i, row := range rows {
		if row.Username != wantNames[i] || row.Rank != wantRanks[i] {
			t.Fatalf("row %d: got %s rank %d, want %s rank %d", i, row.Username, row.Rank, wantNames[i], wantRanks[i])
		}
	}
}

func TestScoreboardService_GrandLeaderboard_WeekCap(t *testing.T) {
	t.Parallel()

	winner := "Philadelphia Eagles"
	pickRepo := &stubPickRepository{}
	_ = pickRepo.UpsertPicks(context.Background(), []pick.Pick{
		{UserID: "u1", WeekNumber: 1, GameCode: "g1", PickedTeam: winner},
		{UserID: "u1", WeekNumber: 2, GameCode: "g2", PickedTeam: winner},
		{UserID: "u1", WeekNumber: 3, GameCode: "g3", PickedTeam: winner},
	}, pick.WeekStatus{UserID: "u1", WeekNumber: 1, HasPicks: true})

	resultRepo := &stubResultRepository{rows: map[string]result.GameResult{
		"g1": completedResult("g1", winner),
		"g2": completedResult("g2", winner),
		"g3": completedResult("g3", winner),
	}}

	service := NewScoreboardService(pickRepo, resultRepo, scoreboardUsers())

	rows, err := service.GrandLeaderboard(context.Background(), nil)
	if err != nil {
		t.Fatalf("GrandLeaderboard error: %v", err)
	}
	if len(rows) != 1 || rows[0].Correct != 3 || rows[0].Total != 3 {
		t.Fatalf("unexpected season rows: %+v", rows)
	}

	through := 2
	rows, err = service.GrandLeaderboard(context.Background(), &through)
	if err != nil {
		t.Fatalf("capped GrandLeaderboard error: %v", err)
	}
	if len(rows) != 1 || rows[0].Correct != 2 || rows[0].Total != 2 {
		t.Fatalf("unexpected capped rows: %+v", rows)
	}
}

func TestScoreboardService_EmptyPicks(t *testing.T) {
	t.Parallel()

	service := NewScoreboardService(&stubPickRepository{}, &stubResultRepository{}, scoreboardUsers())
	rows, err := service.WeeklyLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty board, got %d rows", len(rows))
	}
}
