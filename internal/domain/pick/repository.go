package pick

import (
	"context"
	"errors"
)

// ErrWriteConflict marks a retryable collision with a concurrent writer.
// Callers re-read current picks and retry.
var ErrWriteConflict = errors.New("pick write conflict")

// Repository is the transactional pick store. UpsertPicks writes a batch of
// picks plus the caller's week status in one transaction: all rows commit or
// none do. Concurrent upserts for the same primary key linearize on the
// store's unique-key upsert; implementations surface retryable serialization
// failures as usecase conflicts.
type Repository interface {
	// UpsertPicks atomically writes picks and the week status hint.
	// Implementations reject rows that do not match the batch's user and
	// week, and preserve a stored grade when a rewrite keeps the picked
	// team; a change of team clears the grade. Stores with game access
	// also enforce team membership.
	UpsertPicks(ctx context.Context, picks []Pick, status WeekStatus) error

	ListByUser(ctx context.Context, userID string) ([]Pick, error)
	ListByUserAndWeek(ctx context.Context, userID string, weekNumber int) ([]Pick, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]Pick, error)
	ListByGame(ctx context.Context, gameCode string) ([]Pick, error)
	ListAll(ctx context.Context) ([]Pick, error)

	// ApplyGrades writes recomputed correctness for one game's picks.
	// Re-applying identical grades must leave rows byte-identical.
	ApplyGrades(ctx context.Context, grades []Grade) error

	GetWeekStatus(ctx context.Context, userID string, weekNumber int) (WeekStatus, bool, error)
}
