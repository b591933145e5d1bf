package week

import (
	"fmt"
	"time"
)

const (
	FirstWeekNumber = 1
	LastWeekNumber  = 18
)

// Week is one of the 18 NFL regular-season weeks. Weeks are created once per
// season and never mutated afterwards.
type Week struct {
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

func (w Week) Validate() error {
	if w.Number < FirstWeekNumber || w.Number > LastWeekNumber {
		return fmt.Errorf("week number %d is out of range %d..%d", w.Number, FirstWeekNumber, LastWeekNumber)
	}
	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return fmt.Errorf("week %d start and end dates are required", w.Number)
	}
	if !w.StartDate.Before(w.EndDate) {
		return fmt.Errorf("week %d start date must precede end date", w.Number)
	}

	return nil
}
