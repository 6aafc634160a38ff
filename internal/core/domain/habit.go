package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 80 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
)

const MaxHabitNameLen = 80

type Habit struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	IsDeleted  bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// HabitWithVersions is the read shape for list views: the habit plus its full
// version history, newest effective week first. LinkedGoalID mirrors the
// latest version's link for display.
type HabitWithVersions struct {
	Habit
	LinkedGoalID *string        `json:"linked_goal_id"`
	Versions     []HabitVersion `json:"versions"`
}

func NewHabit(userID, name string, orderIndex int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHabitNameEmpty
	}
	if len(trimmed) > MaxHabitNameLen {
		return nil, ErrHabitNameTooLong
	}

	now := time.Now().UTC()

	return &Habit{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       trimmed,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Rename updates the base fields of the habit. Rule changes never touch the
// habit row itself, they append a HabitVersion instead.
func (h *Habit) Rename(name string, orderIndex int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmed) > MaxHabitNameLen {
		return ErrHabitNameTooLong
	}

	h.Name = trimmed
	h.OrderIndex = orderIndex
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) SoftDelete() {
	if h.IsDeleted {
		return
	}
	h.IsDeleted = true
	h.UpdatedAt = time.Now().UTC()
}
