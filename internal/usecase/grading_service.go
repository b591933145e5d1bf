package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
)

const gradeWeekMaxWorkers = 8

// GradingService recomputes pick correctness whenever a result changes.
// Grading is idempotent: re-running against an unchanged result rewrites
// rows to the same values.
type GradingService struct {
	gameRepo   game.Repository
	resultRepo result.Repository
	pickRepo   pick.Repository
}

func NewGradingService(gameRepo game.Repository, resultRepo result.Repository, pickRepo pick.Repository) *GradingService {
	return &GradingService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		pickRepo:   pickRepo,
	}
}

// GradeGame grades every pick on one game against its current result. A
// missing or retracted result clears is_correct back to nil. A tie grades
// every pick as incorrect.
func (s *GradingService) GradeGame(ctx context.Context, gameCode string) error {
	ctx, span := startUsecaseSpan(ctx, "GradingService.GradeGame")
	defer span.End()

	if gameCode == "" {
		return fmt.Errorf("%w: game code is required", ErrInvalidInput)
	}

	picks, err := s.pickRepo.ListByGame(ctx, gameCode)
	if err != nil {
		return fmt.Errorf("list picks for game: %w", err)
	}
	if len(picks) == 0 {
		return nil
	}

	res, found, err := s.resultRepo.GetByCode(ctx, gameCode)
	if err != nil {
		return fmt.Errorf("get result: %w", err)
	}

	var winner *string
	if found {
		winner = res.WinnerTeam
	}

	grades := make([]pick.Grade, 0, len(picks))
	for _, p := range picks {
		grades = append(grades, pick.Grade{
			UserID:     p.UserID,
			WeekNumber: p.WeekNumber,
			GameCode:   p.GameCode,
			IsCorrect:  gradePick(p.PickedTeam, winner),
		})
	}

	if err := s.pickRepo.ApplyGrades(ctx, grades); err != nil {
		return fmt.Errorf("apply grades: %w", err)
	}

	return nil
}

// GradeWeek re-grades every game of a week, one transaction per game so a
// failure on one game does not hold back the rest.
func (s *GradingService) GradeWeek(ctx context.Context, weekNumber int) error {
	ctx, span := startUsecaseSpan(ctx, "GradingService.GradeWeek")
	defer span.End()

	games, err := s.gameRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}

	workers := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(gradeWeekMaxWorkers)
	for _, g := range games {
		code := g.Code
		workers.Go(func(ctx context.Context) error {
			return s.GradeGame(ctx, code)
		})
	}
	if err := workers.Wait(); err != nil {
		return fmt.Errorf("grade week %d: %w", weekNumber, err)
	}

	return nil
}

// gradePick maps a pick and the game's winner to the stored correctness.
// A nil winner (unplayed or retracted) clears the grade; a tie is wrong for
// both sides.
func gradePick(pickedTeam string, winner *string) *bool {
	if winner == nil {
		return nil
	}

	correct := *winner != result.WinnerTie && pickedTeam == *winner
	return &correct
}
