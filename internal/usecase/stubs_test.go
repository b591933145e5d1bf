package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/user"
	"github.com/pickempool/pickem-api/internal/domain/week"
)

type stubWeekRepository struct {
	weeks []week.Week
	err   error
}

func (r *stubWeekRepository) List(context.Context) ([]week.Week, error) {
	return r.weeks, r.err
}

func (r *stubWeekRepository) GetByNumber(_ context.Context, weekNumber int) (week.Week, bool, error) {
	if r.err != nil {
		return week.Week{}, false, r.err
	}
	for _, w := range r.weeks {
		if w.Number == weekNumber {
			return w, true, nil
		}
	}
	return week.Week{}, false, nil
}

type stubGameRepository struct {
	games      []game.Game
	oddsWrites map[string]map[string]float64
	err        error
}

func (r *stubGameRepository) List(context.Context) ([]game.Game, error) {
	return append([]game.Game(nil), r.games...), r.err
}

func (r *stubGameRepository) ListByWeek(_ context.Context, weekNumber int) ([]game.Game, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		if g.WeekNumber == weekNumber {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGameRepository) GetByCode(_ context.Context, code string) (game.Game, bool, error) {
	if r.err != nil {
		return game.Game{}, false, r.err
	}
	for _, g := range r.games {
		if g.Code == code {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (r *stubGameRepository) UpsertOdds(_ context.Context, code string, odds map[string]float64) error {
	if r.err != nil {
		return r.err
	}
	if r.oddsWrites == nil {
		r.oddsWrites = make(map[string]map[string]float64)
	}
	r.oddsWrites[code] = odds
	return nil
}

type stubResultRepository struct {
	rows map[string]result.GameResult
	err  error
}

func (r *stubResultRepository) Upsert(_ context.Context, item result.GameResult) error {
	if r.err != nil {
		return r.err
	}
	if r.rows == nil {
		r.rows = make(map[string]result.GameResult)
	}
	r.rows[item.GameCode] = item
	return nil
}

func (r *stubResultRepository) GetByCode(_ context.Context, gameCode string) (result.GameResult, bool, error) {
	if r.err != nil {
		return result.GameResult{}, false, r.err
	}
	item, ok := r.rows[gameCode]
	return item, ok, nil
}

func (r *stubResultRepository) ListByCodes(_ context.Context, gameCodes []string) ([]result.GameResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]result.GameResult, 0, len(gameCodes))
	for _, code := range gameCodes {
		if item, ok := r.rows[code]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubPickRepository struct {
	mu        sync.Mutex
	picks     map[string]pick.Pick
	statuses  map[string]pick.WeekStatus
	upsertErr error
	err       error
}

func pickKey(userID string, weekNumber int, gameCode string) string {
	return fmt.Sprintf("%s|%d|%s", userID, weekNumber, gameCode)
}

func statusKey(userID string, weekNumber int) string {
	return fmt.Sprintf("%s|%d", userID, weekNumber)
}

func (r *stubPickRepository) UpsertPicks(_ context.Context, picks []pick.Pick, status pick.WeekStatus) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.picks == nil {
		r.picks = make(map[string]pick.Pick)
	}
	if r.statuses == nil {
		r.statuses = make(map[string]pick.WeekStatus)
	}
	for _, p := range picks {
		key := pickKey(p.UserID, p.WeekNumber, p.GameCode)
		next := p
		next.IsCorrect = nil
		if prev, ok := r.picks[key]; ok && prev.PickedTeam == next.PickedTeam {
			next.IsCorrect = prev.IsCorrect
		}
		r.picks[key] = next
	}
	r.statuses[statusKey(status.UserID, status.WeekNumber)] = status
	return nil
}

func (r *stubPickRepository) ListByUser(_ context.Context, userID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.UserID == userID })
}

func (r *stubPickRepository) ListByUserAndWeek(_ context.Context, userID string, weekNumber int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.UserID == userID && p.WeekNumber == weekNumber })
}

func (r *stubPickRepository) ListByWeek(_ context.Context, weekNumber int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.WeekNumber == weekNumber })
}

func (r *stubPickRepository) ListByGame(_ context.Context, gameCode string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.GameCode == gameCode })
}

func (r *stubPickRepository) ListAll(context.Context) ([]pick.Pick, error) {
	return r.list(func(pick.Pick) bool { return true })
}

func (r *stubPickRepository) list(match func(pick.Pick) bool) ([]pick.Pick, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]pick.Pick, 0, len(r.picks))
	for _, p := range r.picks {
		if match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPickRepository) ApplyGrades(_ context.Context, grades []pick.Grade) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, grade := range grades {
		key := pickKey(grade.UserID, grade.WeekNumber, grade.GameCode)
		p, ok := r.picks[key]
		if !ok {
			continue
		}
		p.IsCorrect = grade.IsCorrect
		r.picks[key] = p
	}
	return nil
}

func (r *stubPickRepository) GetWeekStatus(_ context.Context, userID string, weekNumber int) (pick.WeekStatus, bool, error) {
	if r.err != nil {
		return pick.WeekStatus{}, false, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	status, ok := r.statuses[statusKey(userID, weekNumber)]
	return status, ok, nil
}

type stubUserRepository struct {
	users []user.User
	err   error
}

func (r *stubUserRepository) Create(_ context.Context, item user.User) error {
	if r.err != nil {
		return r.err
	}
	r.users = append(r.users, item)
	return nil
}

func (r *stubUserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	if r.err != nil {
		return user.User{}, false, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	if r.err != nil {
		return user.User{}, false, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepository) ListByIDs(_ context.Context, ids []string) ([]user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]user.User, 0, len(ids))
	for _, u := range r.users {
		if _, ok := want[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// Fixture helpers shared across service tests. Kickoffs land on the 2025
// week 1 Thursday night slot.

var testEastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

func week1Games() []game.Game {
	kickoff := time.Date(2025, 9, 4, 20, 20, 0, 0, testEastern)
	return []game.Game{
		{
			Code:       "2025-1-1",
			WeekNumber: 1,
			HomeTeam:   "Philadelphia Eagles",
			AwayTeam:   "Dallas Cowboys",
			Date:       kickoff,
		},
		{
			Code:       "2025-1-2",
			WeekNumber: 1,
			HomeTeam:   "Kansas City Chiefs",
			AwayTeam:   "Los Angeles Chargers",
			Date:       kickoff,
		},
	}
}

func week1Catalog() []week.Week {
	return []week.Week{
		{
			Number:    1,
			StartDate: time.Date(2025, 9, 4, 0, 0, 0, 0, testEastern),
			EndDate:   time.Date(2025, 9, 10, 0, 0, 0, 0, testEastern),
		},
	}
}

func intp(v int) *int { return &v }
