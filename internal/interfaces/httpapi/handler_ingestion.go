package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/pickempool/pickem-api/internal/usecase"
)

func (h *Handler) IngestResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestResults")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, ingestionRequestTimeout)
	defer cancel()

	var req ingestResultsRequest
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

	updates := make([]usecase.ScoreUpdate, 0, len(req.Results))
	for _, item := range req.Results {
		updates = append(updates, usecase.ScoreUpdate{
			GameCode:  item.GameCode,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		})
	}

	results, err := h.resultsService.UpsertResults(ctx, updates)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest results failed", "result_count", len(updates), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameResultDTO, 0, len(results))
	for _, item := range results {
		items = append(items, gameResultToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, ingestResultsResponse{
		IngestedCount: len(items),
		Results:       items,
	})
}

func (h *Handler) RunOddsSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunOddsSyncJob")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, ingestionRequestTimeout)
	defer cancel()

	req, err := decodeOddsSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsSyncService.Sync(ctx, usecase.OddsSyncInput{
		Weeks:      req.Weeks,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "odds sync job failed", "weeks", req.Weeks, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

type ingestResultsRequest struct {
	Results []resultUpdateRequest `json:"results" validate:"required,min=1,dive"`
}

type resultUpdateRequest struct {
	GameCode  string `json:"game_code" validate:"required"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
}

type ingestResultsResponse struct {
	IngestedCount int             `json:"ingested_count"`
	Results       []gameResultDTO `json:"results"`
}

type oddsSyncRequest struct {
	Weeks      []int `json:"weeks"`
	MaxWorkers int   `json:"max_workers"`
}

// decodeOddsSyncRequest tolerates an empty body: a bare POST syncs every
// catalog week with default workers.
func decodeOddsSyncRequest(r *http.Request) (oddsSyncRequest, error) {
	var req oddsSyncRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return oddsSyncRequest{}, nil
		}
		return oddsSyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
