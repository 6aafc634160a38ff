package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type HabitRepository interface {
	// Create persists the habit together with its implicit first version in a
	// single transaction.
	Create(ctx context.Context, habit *Habit, firstVersion *HabitVersion) error

	// GetByID returns the habit regardless of its soft-delete flag, so callers
	// can distinguish "gone" from "never existed".
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID returns non-deleted habits with their version history,
	// ordered by order_index then created_at; versions newest-effective first.
	ListByUserID(ctx context.Context, userID string) ([]*HabitWithVersions, error)

	// Update rewrites the habit's base fields and, when newVersion is non-nil,
	// appends it — both in the same transaction. Existing versions are never
	// touched.
	Update(ctx context.Context, habit *Habit, newVersion *HabitVersion) error

	// ListVersions returns every version of the habit ordered by
	// effective_week_start desc, created_at desc.
	ListVersions(ctx context.Context, habitID string) ([]HabitVersion, error)

	// SoftDelete flags the habit as deleted. Completions referencing it are
	// left untouched.
	SoftDelete(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// CreateWithinQuota inserts the completion only if the week's completion
	// count is still below weeklyTarget at commit time. Implementations must
	// make the count-then-insert atomic (row lock or serializable isolation)
	// and return ErrWeeklyTargetAlreadyMet when the quota is gone.
	CreateWithinQuota(ctx context.Context, completion *Completion, weekStart, weekEnd time.Time, weeklyTarget int) error

	GetByID(ctx context.Context, id string) (*Completion, error)

	// Delete removes the completion permanently. userID guards ownership.
	Delete(ctx context.Context, id string, userID string) error

	// CountInWeek counts completion rows for the habit and user whose date
	// lies in [weekStart, weekEnd] inclusive.
	CountInWeek(ctx context.Context, habitID, userID string, weekStart, weekEnd time.Time) (int, error)

	// ListByUserAndRange returns the user's completions with date in
	// [from, to], ordered date desc then created_at desc.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*Completion, error)

	// ListByHabit pages through a habit's completions, most recent first.
	ListByHabit(ctx context.Context, habitID, userID string, limit, offset int) ([]*Completion, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error

	// GetByID returns the goal regardless of its soft-delete flag.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// ListByUserID returns non-deleted goals ordered by year desc,
	// created_at desc.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	Update(ctx context.Context, goal *Goal) error

	SoftDelete(ctx context.Context, id string) error
}
