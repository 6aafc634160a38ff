package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrGoalTitleTooLong  = errors.New("goal title is too long (max 120 chars)")
	ErrGoalInvalidYear   = errors.New("goal year is out of range")
	ErrGoalInvalidUserID = errors.New("invalid user id")
)

const MaxGoalTitleLen = 120

// Goal is a yearly annotation habit versions may link to. The resolution
// engine treats the link as opaque.
type Goal struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Year        int       `json:"year" db:"year"`
	Description *string   `json:"description" db:"description"`
	IsDeleted   bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewGoal(userID, title string, year int, description *string) (*Goal, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrGoalTitleEmpty
	}
	if len(trimmed) > MaxGoalTitleLen {
		return nil, ErrGoalTitleTooLong
	}
	if year < 2000 || year > 2100 {
		return nil, ErrGoalInvalidYear
	}

	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       trimmed,
		Year:        year,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Goal) Update(title string, year int, description *string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrGoalTitleEmpty
	}
	if len(trimmed) > MaxGoalTitleLen {
		return ErrGoalTitleTooLong
	}
	if year < 2000 || year > 2100 {
		return ErrGoalInvalidYear
	}

	g.Title = trimmed
	g.Year = year
	g.Description = description
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *Goal) SoftDelete() {
	if g.IsDeleted {
		return
	}
	g.IsDeleted = true
	g.UpdatedAt = time.Now().UTC()
}
