package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pickempool/pickem-api/internal/domain/pick"
)

// PickRepository keeps picks and week statuses under one mutex so the
// multi-row upsert is atomic, matching the store contract. It holds the game
// store so the upsert can reject rows naming teams outside their game.
type PickRepository struct {
	games    *GameRepository
	mu       sync.RWMutex
	picks    map[string]pick.Pick
	statuses map[string]pick.WeekStatus
}

func NewPickRepository(games *GameRepository) *PickRepository {
	return &PickRepository{
		games:    games,
		picks:    make(map[string]pick.Pick),
		statuses: make(map[string]pick.WeekStatus),
	}
}

func pickKey(userID string, weekNumber int, gameCode string) string {
	return fmt.Sprintf("%s|%d|%s", userID, weekNumber, gameCode)
}

func statusKey(userID string, weekNumber int) string {
	return fmt.Sprintf("%s|%d", userID, weekNumber)
}

func (r *PickRepository) UpsertPicks(ctx context.Context, picks []pick.Pick, status pick.WeekStatus) error {
	if err := pick.ValidateBatch(picks, status); err != nil {
		return err
	}
	for _, p := range picks {
		g, ok, err := r.games.GetByCode(ctx, p.GameCode)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("pick references unknown game %s", p.GameCode)
		}
		if err := p.ValidateAgainstGame(g); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range picks {
		key := pickKey(p.UserID, p.WeekNumber, p.GameCode)
		next := clonePick(p)
		// A rewrite never grades. Keep the stored grade only when the
		// picked team is unchanged; a changed team waits for regrading.
		next.IsCorrect = nil
		if prev, ok := r.picks[key]; ok && prev.PickedTeam == next.PickedTeam {
			next.IsCorrect = prev.IsCorrect
		}
		r.picks[key] = next
	}
	r.statuses[statusKey(status.UserID, status.WeekNumber)] = status

	return nil
}

func (r *PickRepository) ListByUser(_ context.Context, userID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.UserID == userID }), nil
}

func (r *PickRepository) ListByUserAndWeek(_ context.Context, userID string, weekNumber int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.UserID == userID && p.WeekNumber == weekNumber }), nil
}

func (r *PickRepository) ListByWeek(_ context.Context, weekNumber int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.WeekNumber == weekNumber }), nil
}

func (r *PickRepository) ListByGame(_ context.Context, gameCode string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.GameCode == gameCode }), nil
}

func (r *PickRepository) ListAll(_ context.Context) ([]pick.Pick, error) {
	return r.list(func(pick.Pick) bool { return true }), nil
}

func (r *PickRepository) list(match func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.picks))
	for _, p := range r.picks {
		if match(p) {
			out = append(out, clonePick(p))
		}
	}

	return out
}

func (r *PickRepository) ApplyGrades(_ context.Context, grades []pick.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, grade := range grades {
		key := pickKey(grade.UserID, grade.WeekNumber, grade.GameCode)
		p, ok := r.picks[key]
		if !ok {
			continue
		}
		if grade.IsCorrect == nil {
			p.IsCorrect = nil
		} else {
			v := *grade.IsCorrect
			p.IsCorrect = &v
		}
		r.picks[key] = p
	}

	return nil
}

func (r *PickRepository) GetWeekStatus(_ context.Context, userID string, weekNumber int) (pick.WeekStatus, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status, ok := r.statuses[statusKey(userID, weekNumber)]
	if !ok {
		return pick.WeekStatus{}, false, nil
	}

	return status, true, nil
}

func clonePick(p pick.Pick) pick.Pick {
	out := p
	if p.IsCorrect != nil {
		v := *p.IsCorrect
		out.IsCorrect = &v
	}
	return out
}
