package httpapi

import (
	"net/http"

	"github.com/pickempool/pickem-api/internal/usecase"
)

func (h *Handler) GetWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyLeaderboard")
	defer span.End()

	weekNumber, err := requiredQueryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoreboardService.WeeklyLeaderboard(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "weekly leaderboard failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, leaderboardRowsToDTO(rows))
}

func (h *Handler) GetGrandTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGrandTotal")
	defer span.End()

	throughWeek, err := queryWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoreboardService.GrandLeaderboard(ctx, throughWeek)
	if err != nil {
		h.logger.WarnContext(ctx, "grand leaderboard failed", "through_week", throughWeek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, leaderboardRowsToDTO(rows))
}

type leaderboardRowDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Rank     int    `json:"rank"`
}

func leaderboardRowsToDTO(rows []usecase.LeaderboardRow) []leaderboardRowDTO {
	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowDTO{
			UserID:   row.UserID,
			Username: row.Username,
			Correct:  row.Correct,
			Total:    row.Total,
			Rank:     row.Rank,
		})
	}
	return items
}
