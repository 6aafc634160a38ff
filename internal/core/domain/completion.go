package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCompletion = errors.New("invalid completion data")

// Completion is one instance-of-completion event for a habit on a calendar
// date. Several completions may share the same (habit, date); each counts
// separately toward the weekly quota. Once its date has passed, a completion
// is read-only history.
type Completion struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      time.Time `json:"date" db:"date"`
	Text      *string   `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewCompletion builds a completion with text trimmed of surrounding
// whitespace; blank text is stored as null.
func NewCompletion(userID, habitID string, date time.Time, text *string) *Completion {
	now := time.Now().UTC()

	var cleanText *string
	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed != "" {
			cleanText = &trimmed
		}
	}

	return &Completion{
		ID:        uuid.New().String(),
		UserID:    userID,
		HabitID:   habitID,
		Date:      DateOf(date),
		Text:      cleanText,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidCompletion
	}
	if strings.TrimSpace(c.HabitID) == "" {
		return ErrInvalidCompletion
	}
	if c.Date.IsZero() {
		return ErrInvalidCompletion
	}
	return nil
}
