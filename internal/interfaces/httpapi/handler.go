package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pickempool/pickem-api/internal/usecase"
)

// Request deadlines. Pick writes are short interactive operations; result
// ingestion can fan grading out across a whole week.
const (
	picksRequestTimeout     = 10 * time.Second
	ingestionRequestTimeout = 60 * time.Second
)

type Handler struct {
	scheduleService   *usecase.ScheduleService
	picksService      *usecase.PicksService
	resultsService    *usecase.ResultsService
	scoreboardService *usecase.ScoreboardService
	userService       *usecase.UserService
	oddsSyncService   *usecase.OddsSyncService
	logger            *slog.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	picksService *usecase.PicksService,
	resultsService *usecase.ResultsService,
	scoreboardService *usecase.ScoreboardService,
	userService *usecase.UserService,
	oddsSyncService *usecase.OddsSyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		scheduleService:   scheduleService,
		picksService:      picksService,
		resultsService:    resultsService,
		scoreboardService: scoreboardService,
		userService:       userService,
		oddsSyncService:   oddsSyncService,
		logger:            logger,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// queryWeek parses an optional ?week=N parameter; nil means "all weeks".
func queryWeek(r *http.Request) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput)
	}
	return &value, nil
}

func requiredQueryWeek(r *http.Request) (int, error) {
	value, err := queryWeek(r)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput)
	}
	return *value, nil
}

func requiredQueryUserID(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		return "", fmt.Errorf("%w: userId query parameter is required", usecase.ErrInvalidInput)
	}
	return userID, nil
}
