package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeeklyTarget    = errors.New("weekly target must be at least 1")
	ErrEffectiveWeekNotMonday = errors.New("effective week start must be a Monday")
	ErrVersionInvalidHabitID  = errors.New("invalid habit id")
	ErrVersionDescTooLong     = errors.New("version description is too long (max 500 chars)")
)

const MaxVersionDescLen = 500

// HabitVersion is an immutable snapshot of a habit's rules, governing every
// week from EffectiveWeekStart (a Monday, inclusive) until a later version
// supersedes it. Versions are only ever appended, never edited or removed.
type HabitVersion struct {
	ID                 string    `json:"id" db:"id"`
	HabitID            string    `json:"habit_id" db:"habit_id"`
	WeeklyTarget       int       `json:"weekly_target" db:"weekly_target"`
	RequiresText       bool      `json:"requires_text_on_completion" db:"requires_text_on_completion"`
	LinkedGoalID       *string   `json:"linked_goal_id" db:"linked_goal_id"`
	Description        *string   `json:"description" db:"description"`
	EffectiveWeekStart time.Time `json:"effective_week_start" db:"effective_week_start"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func NewHabitVersion(habitID string, weeklyTarget int, requiresText bool, linkedGoalID, description *string, effectiveWeekStart time.Time) (*HabitVersion, error) {
	if habitID == "" {
		return nil, ErrVersionInvalidHabitID
	}
	if weeklyTarget < 1 {
		return nil, ErrInvalidWeeklyTarget
	}
	if description != nil && len(*description) > MaxVersionDescLen {
		return nil, ErrVersionDescTooLong
	}

	effectiveWeekStart = DateOf(effectiveWeekStart)
	if effectiveWeekStart.Weekday() != time.Monday {
		return nil, ErrEffectiveWeekNotMonday
	}

	now := time.Now().UTC()

	return &HabitVersion{
		ID:                 uuid.New().String(),
		HabitID:            habitID,
		WeeklyTarget:       weeklyTarget,
		RequiresText:       requiresText,
		LinkedGoalID:       linkedGoalID,
		Description:        description,
		EffectiveWeekStart: effectiveWeekStart,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ResolveVersion picks the version governing the week starting at weekStart:
// the greatest EffectiveWeekStart <= weekStart, nil when no version qualifies.
// Effective weeks are unique per habit by construction; should duplicates
// sneak in anyway, the most recently created one wins.
func ResolveVersion(versions []HabitVersion, weekStart time.Time) *HabitVersion {
	weekStart = DateOf(weekStart)

	var active *HabitVersion
	for i := range versions {
		v := &versions[i]
		if v.EffectiveWeekStart.After(weekStart) {
			continue
		}
		if active == nil ||
			v.EffectiveWeekStart.After(active.EffectiveWeekStart) ||
			(v.EffectiveWeekStart.Equal(active.EffectiveWeekStart) && v.CreatedAt.After(active.CreatedAt)) {
			active = v
		}
	}
	return active
}

// Remaining is the number of completions still required this week under v.
// Never negative.
func Remaining(v *HabitVersion, completedCount int) int {
	if v == nil {
		return 0
	}
	remaining := v.WeeklyTarget - completedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// QuotaExhausted reports whether the weekly target is already met.
func QuotaExhausted(v *HabitVersion, completedCount int) bool {
	if v == nil {
		return false
	}
	return completedCount >= v.WeeklyTarget
}
