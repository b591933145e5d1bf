package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickempool/pickem-api/internal/domain/week"
)

type WeekRepository struct {
	mu    sync.RWMutex
	items map[int]week.Week
}

func NewWeekRepository(weeks []week.Week) *WeekRepository {
	items := make(map[int]week.Week, len(weeks))
	for _, w := range weeks {
		items[w.Number] = w
	}

	return &WeekRepository{items: items}
}

func (r *WeekRepository) List(_ context.Context) ([]week.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]week.Week, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out, nil
}

func (r *WeekRepository) GetByNumber(_ context.Context, weekNumber int) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[weekNumber]
	if !ok {
		return week.Week{}, false, nil
	}

	return w, true, nil
}
