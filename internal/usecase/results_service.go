package usecase

import (
	"context"
	"fmt"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/result"
)

// ResultsService is the single write path for game outcomes. Ingestion hands
// over raw scores; the winner column is always derived here and grading runs
// as part of the same request.
type ResultsService struct {
	gameRepo   game.Repository
	resultRepo result.Repository
	grading    *GradingService
}

func NewResultsService(gameRepo game.Repository, resultRepo result.Repository, grading *GradingService) *ResultsService {
	return &ResultsService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		grading:    grading,
	}
}

// ScoreUpdate is one ingested line: scores may be nil while a game is in
// progress or when a previously published result is retracted.
type ScoreUpdate struct {
	GameCode  string
	HomeScore *int
	AwayScore *int
}

// UpsertResult stores the update with a freshly derived winner, then grades
// the affected picks. Re-ingesting identical scores converges to identical
// rows.
func (s *ResultsService) UpsertResult(ctx context.Context, update ScoreUpdate) (result.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultsService.UpsertResult")
	defer span.End()

	if update.GameCode == "" {
		return result.GameResult{}, fmt.Errorf("%w: game code is required", ErrInvalidInput)
	}

	g, found, err := s.gameRepo.GetByCode(ctx, update.GameCode)
	if err != nil {
		return result.GameResult{}, fmt.Errorf("get game: %w", err)
	}
	if !found {
		return result.GameResult{}, fmt.Errorf("%w: game %s", ErrNotFound, update.GameCode)
	}

	item := result.GameResult{
		GameCode:   update.GameCode,
		HomeScore:  update.HomeScore,
		AwayScore:  update.AwayScore,
		WinnerTeam: result.DeriveWinner(g.HomeTeam, g.AwayTeam, update.HomeScore, update.AwayScore),
	}
	if err := s.resultRepo.Upsert(ctx, item); err != nil {
		return result.GameResult{}, fmt.Errorf("upsert result: %w", err)
	}

	if err := s.grading.GradeGame(ctx, update.GameCode); err != nil {
		return result.GameResult{}, fmt.Errorf("grade game %s: %w", update.GameCode, err)
	}

	return item, nil
}

// UpsertResults applies a batch of ingested updates in order. Each update is
// its own transaction; the first failure stops the batch.
func (s *ResultsService) UpsertResults(ctx context.Context, updates []ScoreUpdate) ([]result.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultsService.UpsertResults")
	defer span.End()

	items := make([]result.GameResult, 0, len(updates))
	for _, update := range updates {
		item, err := s.UpsertResult(ctx, update)
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}

	return items, nil
}

// GetResults returns the stored result rows for the requested game codes.
// Codes with no stored result are simply absent from the response.
func (s *ResultsService) GetResults(ctx context.Context, gameCodes []string) ([]result.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultsService.GetResults")
	defer span.End()

	if len(gameCodes) == 0 {
		return nil, fmt.Errorf("%w: at least one game code is required", ErrInvalidInput)
	}

	items, err := s.resultRepo.ListByCodes(ctx, gameCodes)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return items, nil
}
