package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	weekNumber, err := queryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scheduleService.ListGames(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	currentWeek, err := h.scheduleService.CurrentWeek(ctx, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, currentWeekDTO{CurrentWeek: currentWeek})
}

func (h *Handler) GetGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameResults")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("gameIds"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: gameIds query parameter is required", usecase.ErrInvalidInput))
		return
	}

	codes := make([]string, 0, 16)
	for _, part := range strings.Split(raw, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}

	results, err := h.resultsService.GetResults(ctx, codes)
	if err != nil {
		h.logger.WarnContext(ctx, "get game results failed", "game_codes", codes, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameResultDTO, 0, len(results))
	for _, item := range results {
		items = append(items, gameResultToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

type currentWeekDTO struct {
	CurrentWeek *int `json:"currentWeek"`
}

type gameDTO struct {
	GameCode   string             `json:"game_code"`
	WeekNumber int                `json:"week_number"`
	HomeTeam   string             `json:"home_team"`
	AwayTeam   string             `json:"away_team"`
	GameDate   string             `json:"game_date"`
	Odds       map[string]float64 `json:"odds,omitempty"`
	ByeTeams   []string           `json:"bye_teams,omitempty"`
}

type gameResultDTO struct {
	GameCode   string  `json:"game_code"`
	HomeScore  *int    `json:"home_score"`
	AwayScore  *int    `json:"away_score"`
	WinnerTeam *string `json:"winner_team"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		GameCode:   g.Code,
		WeekNumber: g.WeekNumber,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		GameDate:   g.Date.UTC().Format(time.RFC3339),
		Odds:       g.Odds,
		ByeTeams:   g.ByeTeams,
	}
}

func gameResultToDTO(item result.GameResult) gameResultDTO {
	return gameResultDTO{
		GameCode:   item.GameCode,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		WinnerTeam: item.WinnerTeam,
	}
}
