package usecase

import "errors"

var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrUnknownWeek           = errors.New("unknown week")
	ErrNoGames               = errors.New("no games scheduled for this week")
	ErrIncomplete            = errors.New("Please make a pick for every game")
	ErrInvalidTeam           = errors.New("invalid team for game")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflicting concurrent write")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ErrLocked carries the exact message shown to users when the lock has passed.
var ErrLocked = errors.New("Picks are locked for this week")
