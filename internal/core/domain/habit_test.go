package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: trims the name and sets timestamps", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "  Morning run  ", 2)

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Morning run", h.Name)
		assert.Equal(t, "u1", h.UserID)
		assert.Equal(t, 2, h.OrderIndex)
		assert.False(t, h.IsDeleted)
		assert.False(t, h.CreatedAt.IsZero())
	})

	t.Run("Rejects empty or whitespace-only name", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "   ", 0)
		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)
	})

	t.Run("Rejects overlong name", func(t *testing.T) {
		_, err := domain.NewHabit("u1", strings.Repeat("x", domain.MaxHabitNameLen+1), 0)
		assert.ErrorIs(t, err, domain.ErrHabitNameTooLong)
	})

	t.Run("Rejects missing user id", func(t *testing.T) {
		_, err := domain.NewHabit("", "Read", 0)
		assert.ErrorIs(t, err, domain.ErrHabitInvalidUserID)
	})
}

func TestHabit_Rename(t *testing.T) {
	h, err := domain.NewHabit("u1", "Read", 0)
	require.NoError(t, err)

	t.Run("Updates base fields only", func(t *testing.T) {
		before := h.UpdatedAt
		require.NoError(t, h.Rename("Read more", 5))
		assert.Equal(t, "Read more", h.Name)
		assert.Equal(t, 5, h.OrderIndex)
		assert.False(t, h.UpdatedAt.Before(before))
	})

	t.Run("Keeps validation rules", func(t *testing.T) {
		assert.ErrorIs(t, h.Rename("", 0), domain.ErrHabitNameEmpty)
	})
}

func TestHabit_SoftDelete(t *testing.T) {
	h, err := domain.NewHabit("u1", "Read", 0)
	require.NoError(t, err)

	h.SoftDelete()
	assert.True(t, h.IsDeleted)

	// Idempotent.
	h.SoftDelete()
	assert.True(t, h.IsDeleted)
}

func TestNewCompletion(t *testing.T) {
	t.Run("Trims text", func(t *testing.T) {
		text := "  felt great  "
		c := domain.NewCompletion("u1", "h1", date(2024, 1, 2), &text)

		require.NotNil(t, c.Text)
		assert.Equal(t, "felt great", *c.Text)
		assert.NoError(t, c.Validate())
	})

	t.Run("Whitespace-only text is stored as null", func(t *testing.T) {
		text := "   "
		c := domain.NewCompletion("u1", "h1", date(2024, 1, 2), &text)
		assert.Nil(t, c.Text)
	})

	t.Run("Absent text stays null", func(t *testing.T) {
		c := domain.NewCompletion("u1", "h1", date(2024, 1, 2), nil)
		assert.Nil(t, c.Text)
	})

	t.Run("Validate catches missing references", func(t *testing.T) {
		c := domain.NewCompletion("", "h1", date(2024, 1, 2), nil)
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidCompletion)
	})
}

func TestNewGoal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		desc := "ship it"
		g, err := domain.NewGoal("u1", " Run a marathon ", 2024, &desc)

		require.NoError(t, err)
		assert.Equal(t, "Run a marathon", g.Title)
		assert.Equal(t, 2024, g.Year)
		assert.False(t, g.IsDeleted)
	})

	t.Run("Rejects out-of-range year", func(t *testing.T) {
		_, err := domain.NewGoal("u1", "Run", 1887, nil)
		assert.ErrorIs(t, err, domain.ErrGoalInvalidYear)
	})

	t.Run("Rejects empty title", func(t *testing.T) {
		_, err := domain.NewGoal("u1", "", 2024, nil)
		assert.ErrorIs(t, err, domain.ErrGoalTitleEmpty)
	})
}
