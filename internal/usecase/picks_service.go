package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/lockout"
	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

// gameGrader re-derives correctness for every pick on one game. Satisfied by
// GradingService.
type gameGrader interface {
	GradeGame(ctx context.Context, gameCode string) error
}

// PicksService owns every mutation of the pick table. Lock checks always
// happen here against the lockout package; the advisory locked flag handed
// to clients is never trusted on the way back in.
type PicksService struct {
	weekRepo   week.Repository
	gameRepo   game.Repository
	resultRepo result.Repository
	pickRepo   pick.Repository
	grader     gameGrader
	now        func() time.Time
}

func NewPicksService(
	weekRepo week.Repository,
	gameRepo game.Repository,
	resultRepo result.Repository,
	pickRepo pick.Repository,
	grader gameGrader,
) *PicksService {
	return &PicksService{
		weekRepo:   weekRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		pickRepo:   pickRepo,
		grader:     grader,
		now:        time.Now,
	}
}

// WeekForPicking is what the pick screen renders: the week's games, the
// caller's saved picks, and whether the week has already locked.
type WeekForPicking struct {
	Games         []game.Game
	ExistingPicks []pick.Pick
	Locked        bool
}

func (s *PicksService) ListWeekForPicking(ctx context.Context, userID string, weekNumber int) (WeekForPicking, error) {
	ctx, span := startUsecaseSpan(ctx, "PicksService.ListWeekForPicking")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return WeekForPicking{}, ErrNotAuthenticated
	}

	games, err := s.weekGames(ctx, weekNumber)
	if err != nil {
		return WeekForPicking{}, err
	}

	picks, err := s.pickRepo.ListByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return WeekForPicking{}, fmt.Errorf("list picks: %w", err)
	}

	return WeekForPicking{
		Games:         games,
		ExistingPicks: picks,
		Locked:        lockout.Locked(games, s.now()),
	}, nil
}

// SubmitPicks writes a full week of picks in one transaction. Selections map
// game code to picked team and must cover the week's games exactly.
func (s *PicksService) SubmitPicks(ctx context.Context, userID string, weekNumber int, selections map[string]string) error {
	ctx, span := startUsecaseSpan(ctx, "PicksService.SubmitPicks")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return ErrNotAuthenticated
	}

	games, err := s.weekGames(ctx, weekNumber)
	if err != nil {
		return err
	}

	now := s.now()
	if lockout.Locked(games, now) {
		return ErrLocked
	}

	if len(selections) != len(games) {
		return ErrIncomplete
	}
	byCode := make(map[string]game.Game, len(games))
	for _, g := range games {
		if _, ok := selections[g.Code]; !ok {
			return ErrIncomplete
		}
		byCode[g.Code] = g
	}

	picks := make([]pick.Pick, 0, len(games))
	for code, team := range selections {
		g, ok := byCode[code]
		if !ok {
			// Selections and games have equal size, so an extra code
			// means a week game is missing.
			return ErrIncomplete
		}
		if !g.HasTeam(team) {
			return fmt.Errorf("%w: %s does not play in %s", ErrInvalidTeam, team, code)
		}
		picks = append(picks, pick.Pick{
			UserID:     userID,
			WeekNumber: weekNumber,
			GameCode:   code,
			PickedTeam: team,
		})
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].GameCode < picks[j].GameCode })

	status := pick.WeekStatus{
		UserID:     userID,
		WeekNumber: weekNumber,
		HasPicks:   true,
		UpdatedAt:  now,
	}
	if err := s.pickRepo.UpsertPicks(ctx, picks, status); err != nil {
		if errors.Is(err, pick.ErrWriteConflict) {
			return fmt.Errorf("%w: retry submit", ErrConflict)
		}
		return fmt.Errorf("upsert picks: %w", err)
	}

	return s.regradeCompleted(ctx, picks)
}

// EditPicks changes a subset of an existing week's picks. Unlike submit it
// does not require full coverage, but every change must name a game of the
// week and the lock still applies.
func (s *PicksService) EditPicks(ctx context.Context, userID string, weekNumber int, changes map[string]string) error {
	ctx, span := startUsecaseSpan(ctx, "PicksService.EditPicks")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return ErrNotAuthenticated
	}
	if len(changes) == 0 {
		return fmt.Errorf("%w: no changes given", ErrInvalidInput)
	}

	games, err := s.weekGames(ctx, weekNumber)
	if err != nil {
		return err
	}

	now := s.now()
	if lockout.Locked(games, now) {
		return ErrLocked
	}

	byCode := make(map[string]game.Game, len(games))
	for _, g := range games {
		byCode[g.Code] = g
	}

	picks := make([]pick.Pick, 0, len(changes))
	for code, team := range changes {
		g, ok := byCode[code]
		if !ok {
			return fmt.Errorf("%w: game %s is not in week %d", ErrInvalidInput, code, weekNumber)
		}
		if !g.HasTeam(team) {
			return fmt.Errorf("%w: %s does not play in %s", ErrInvalidTeam, team, code)
		}
		picks = append(picks, pick.Pick{
			UserID:     userID,
			WeekNumber: weekNumber,
			GameCode:   code,
			PickedTeam: team,
		})
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].GameCode < picks[j].GameCode })

	status := pick.WeekStatus{
		UserID:     userID,
		WeekNumber: weekNumber,
		HasPicks:   true,
		UpdatedAt:  now,
	}
	if err := s.pickRepo.UpsertPicks(ctx, picks, status); err != nil {
		if errors.Is(err, pick.ErrWriteConflict) {
			return fmt.Errorf("%w: retry edit", ErrConflict)
		}
		return fmt.Errorf("upsert picks: %w", err)
	}

	return s.regradeCompleted(ctx, picks)
}

// regradeCompleted re-derives correctness for freshly written picks whose
// game already has a final result. The lock lands at midnight after the
// week's first game, so an early game can complete while the week is still
// open; rows rewritten for those games must carry a grade again immediately.
func (s *PicksService) regradeCompleted(ctx context.Context, picks []pick.Pick) error {
	codes := make([]string, 0, len(picks))
	for _, p := range picks {
		codes = append(codes, p.GameCode)
	}

	results, err := s.resultRepo.ListByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}

	for _, res := range results {
		if !res.Completed() {
			continue
		}
		if err := s.grader.GradeGame(ctx, res.GameCode); err != nil {
			return fmt.Errorf("regrade game %s: %w", res.GameCode, err)
		}
	}

	return nil
}

// ViewSavedPicks joins a user's picks with game metadata, ordered by kickoff
// ascending. A nil weekNumber returns every week.
func (s *PicksService) ViewSavedPicks(ctx context.Context, userID string, weekNumber *int) ([]pick.SavedRow, error) {
	ctx, span := startUsecaseSpan(ctx, "PicksService.ViewSavedPicks")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotAuthenticated
	}

	var (
		picks []pick.Pick
		err   error
	)
	if weekNumber == nil {
		picks, err = s.pickRepo.ListByUser(ctx, userID)
	} else {
		picks, err = s.pickRepo.ListByUserAndWeek(ctx, userID, *weekNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	rows := make([]pick.SavedRow, 0, len(picks))
	for _, p := range picks {
		g, ok, err := s.gameRepo.GetByCode(ctx, p.GameCode)
		if err != nil {
			return nil, fmt.Errorf("get game %s: %w", p.GameCode, err)
		}
		if !ok {
			continue
		}
		rows = append(rows, pick.SavedRow{
			Pick:     p,
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			GameDate: g.Date,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GameDate.Equal(rows[j].GameDate) {
			return rows[i].GameCode < rows[j].GameCode
		}
		return rows[i].GameDate.Before(rows[j].GameDate)
	})

	return rows, nil
}

// HasPicks answers the landing page hint from the week status row.
func (s *PicksService) HasPicks(ctx context.Context, userID string, weekNumber int) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "PicksService.HasPicks")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return false, ErrNotAuthenticated
	}

	status, ok, err := s.pickRepo.GetWeekStatus(ctx, userID, weekNumber)
	if err != nil {
		return false, fmt.Errorf("get week status: %w", err)
	}
	if !ok {
		return false, nil
	}

	return status.HasPicks, nil
}

// weekGames resolves a week and its games, enforcing the shared submit
// preconditions: the week must exist and must have games scheduled.
func (s *PicksService) weekGames(ctx context.Context, weekNumber int) ([]game.Game, error) {
	_, exists, err := s.weekRepo.GetByNumber(ctx, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWeek, weekNumber)
	}

	games, err := s.gameRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: week %d", ErrNoGames, weekNumber)
	}

	game.SortByDate(games)
	return games, nil
}
