package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/user"
)

// LeaderboardRow is one ranked user. Total counts only graded picks, i.e.
// picks whose game has a winner, so the denominator matches what users see.
type LeaderboardRow struct {
	UserID   string
	Username string
	Correct  int
	Total    int
	Rank     int
}

// ScoreboardService derives leaderboards from picks and results. The result
// store is the authority for correctness here; stored grades are a cache for
// per-user views and are not consulted.
type ScoreboardService struct {
	pickRepo   pick.Repository
	resultRepo result.Repository
	userRepo   user.Repository
}

func NewScoreboardService(pickRepo pick.Repository, resultRepo result.Repository, userRepo user.Repository) *ScoreboardService {
	return &ScoreboardService{
		pickRepo:   pickRepo,
		resultRepo: resultRepo,
		userRepo:   userRepo,
	}
}

func (s *ScoreboardService) WeeklyLeaderboard(ctx context.Context, weekNumber int) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreboardService.WeeklyLeaderboard")
	defer span.End()

	picks, err := s.pickRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return s.rank(ctx, picks)
}

// GrandLeaderboard sums across the season. A non-nil throughWeek caps the
// range at that week inclusive, for mid-season standings pages.
func (s *ScoreboardService) GrandLeaderboard(ctx context.Context, throughWeek *int) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreboardService.GrandLeaderboard")
	defer span.End()

	picks, err := s.pickRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	if throughWeek != nil {
		capped := picks[:0:0]
		for _, p := range picks {
			if p.WeekNumber <= *throughWeek {
				capped = append(capped, p)
			}
		}
		picks = capped
	}

	return s.rank(ctx, picks)
}

// rank tallies graded picks per user and assigns dense ranks: equal scores
// share a rank and the next distinct score advances by exactly one.
func (s *ScoreboardService) rank(ctx context.Context, picks []pick.Pick) ([]LeaderboardRow, error) {
	if len(picks) == 0 {
		return []LeaderboardRow{}, nil
	}

	codes := make([]string, 0, len(picks))
	seen := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		if _, ok := seen[p.GameCode]; ok {
			continue
		}
		seen[p.GameCode] = struct{}{}
		codes = append(codes, p.GameCode)
	}

	results, err := s.resultRepo.ListByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	winners := make(map[string]string, len(results))
	for _, r := range results {
		if r.Completed() {
			winners[r.GameCode] = *r.WinnerTeam
		}
	}

	type tally struct {
		correct int
		total   int
	}
	tallies := make(map[string]*tally)
	for _, p := range picks {
		winner, completed := winners[p.GameCode]
		if !completed {
			continue
		}
		t := tallies[p.UserID]
		if t == nil {
			t = &tally{}
			tallies[p.UserID] = t
		}
		t.total++
		if winner != result.WinnerTie && p.PickedTeam == winner {
			t.correct++
		}
	}
	if len(tallies) == 0 {
		return []LeaderboardRow{}, nil
	}

	userIDs := make([]string, 0, len(tallies))
	for id := range tallies {
		userIDs = append(userIDs, id)
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	rows := make([]LeaderboardRow, 0, len(tallies))
	for id, t := range tallies {
		rows = append(rows, LeaderboardRow{
			UserID:   id,
			Username: usernames[id],
			Correct:  t.correct,
			Total:    t.total,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Correct != rows[j].Correct {
			return rows[i].Correct > rows[j].Correct
		}
		return rows[i].Username < rows[j].Username
	})

	rank := 0
	lastCorrect := -1
	for i := range rows {
		if rows[i].Correct != lastCorrect {
			rank++
			lastCorrect = rows[i].Correct
		}
		rows[i].Rank = rank
	}

	return rows, nil
}
