package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/usecase"
)

func (h *Handler) GetUserSavedPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserSavedPicks")
	defer span.End()

	userID, err := requiredQueryUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekNumber, err := queryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.picksService.ViewSavedPicks(ctx, userID, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "view saved picks failed", "user_id", userID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]savedPickDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, savedPickToDTO(row))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPicksStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPicksStatus")
	defer span.End()

	userID, err := requiredQueryUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekNumber, err := requiredQueryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	hasPicks, err := h.picksService.HasPicks(ctx, userID, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "picks status failed", "user_id", userID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, picksStatusDTO{HasPicks: hasPicks})
}

func (h *Handler) GetWeekForPicking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekForPicking")
	defer span.End()

	userID, err := requiredQueryUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekNumber, err := requiredQueryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.picksService.ListWeekForPicking(ctx, userID, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "list week for picking failed", "user_id", userID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	games := make([]gameDTO, 0, len(view.Games))
	for _, g := range view.Games {
		games = append(games, gameToDTO(g))
	}
	picks := make(map[string]string, len(view.ExistingPicks))
	for _, p := range view.ExistingPicks {
		picks[p.GameCode] = p.PickedTeam
	}

	writeJSON(ctx, w, http.StatusOK, weekForPickingDTO{
		Games:  games,
		Picks:  picks,
		Locked: view.Locked,
	})
}

func (h *Handler) SavePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePicks")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, picksRequestTimeout)
	defer cancel()

	var req picksWriteRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.picksService.SubmitPicks(ctx, req.UserID, req.Week, req.Picks); err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "user_id", req.UserID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, picksWriteResponse{Success: true})
}

func (h *Handler) EditPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditPicks")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, picksRequestTimeout)
	defer cancel()

	var req picksWriteRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.picksService.EditPicks(ctx, req.UserID, req.Week, req.Picks); err != nil {
		h.logger.WarnContext(ctx, "edit picks failed", "user_id", req.UserID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, picksWriteResponse{Success: true})
}

type picksWriteRequest struct {
	UserID string            `json:"userId" validate:"required"`
	Week   int               `json:"week" validate:"required,min=1"`
	Picks  map[string]string `json:"picks" validate:"required"`
}

type picksWriteResponse struct {
	Success bool `json:"success"`
}

type picksStatusDTO struct {
	HasPicks bool `json:"hasPicks"`
}

type weekForPickingDTO struct {
	Games  []gameDTO         `json:"games"`
	Picks  map[string]string `json:"picks"`
	Locked bool              `json:"locked"`
}

type savedPickDTO struct {
	UserID     string `json:"user_id"`
	WeekNumber int    `json:"week_number"`
	GameCode   string `json:"game_code"`
	PickedTeam string `json:"picked_team"`
	IsCorrect  *bool  `json:"is_correct"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	GameDate   string `json:"game_date"`
}

func savedPickToDTO(row pick.SavedRow) savedPickDTO {
	return savedPickDTO{
		UserID:     row.UserID,
		WeekNumber: row.WeekNumber,
		GameCode:   row.GameCode,
		PickedTeam: row.PickedTeam,
		IsCorrect:  row.IsCorrect,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		GameDate:   row.GameDate.UTC().Format(time.RFC3339),
	}
}
