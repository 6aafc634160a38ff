package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

func makeVersion(t *testing.T, habitID string, target int, effective time.Time) domain.HabitVersion {
	t.Helper()
	v, err := domain.NewHabitVersion(habitID, target, false, nil, nil, effective)
	require.NoError(t, err)
	return *v
}

func TestNewHabitVersion(t *testing.T) {
	monday := date(2024, time.January, 1)

	t.Run("Success", func(t *testing.T) {
		goalID := "goal-1"
		v, err := domain.NewHabitVersion("habit-1", 3, true, &goalID, nil, monday)

		require.NoError(t, err)
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, 3, v.WeeklyTarget)
		assert.True(t, v.RequiresText)
		assert.Equal(t, &goalID, v.LinkedGoalID)
		assert.Equal(t, monday, v.EffectiveWeekStart)
	})

	t.Run("Rejects target below 1", func(t *testing.T) {
		_, err := domain.NewHabitVersion("habit-1", 0, false, nil, nil, monday)
		assert.ErrorIs(t, err, domain.ErrInvalidWeeklyTarget)
	})

	t.Run("Rejects non-Monday effective date", func(t *testing.T) {
		_, err := domain.NewHabitVersion("habit-1", 1, false, nil, nil, date(2024, time.January, 3))
		assert.ErrorIs(t, err, domain.ErrEffectiveWeekNotMonday)
	})

	t.Run("Rejects empty habit id", func(t *testing.T) {
		_, err := domain.NewHabitVersion("", 1, false, nil, nil, monday)
		assert.ErrorIs(t, err, domain.ErrVersionInvalidHabitID)
	})
}

func TestResolveVersion(t *testing.T) {
	jan1 := date(2024, time.January, 1)
	jan15 := date(2024, time.January, 15)
	feb5 := date(2024, time.February, 5)

	versions := []domain.HabitVersion{
		makeVersion(t, "h1", 3, jan15),
		makeVersion(t, "h1", 2, jan1),
		makeVersion(t, "h1", 5, feb5),
	}

	t.Run("Week before any version has no active rule", func(t *testing.T) {
		assert.Nil(t, domain.ResolveVersion(versions, date(2023, time.December, 25)))
	})

	t.Run("Exact effective week returns that version", func(t *testing.T) {
		v := domain.ResolveVersion(versions, jan1)
		require.NotNil(t, v)
		assert.Equal(t, 2, v.WeeklyTarget)
	})

	t.Run("Week between versions returns the latest effective one", func(t *testing.T) {
		v := domain.ResolveVersion(versions, date(2024, time.January, 8))
		require.NotNil(t, v)
		assert.Equal(t, 2, v.WeeklyTarget)

		v = domain.ResolveVersion(versions, date(2024, time.January, 29))
		require.NotNil(t, v)
		assert.Equal(t, 3, v.WeeklyTarget)
	})

	t.Run("Old versions stay resolvable after being superseded", func(t *testing.T) {
		v := domain.ResolveVersion(versions, jan15)
		require.NotNil(t, v)
		assert.Equal(t, 3, v.WeeklyTarget)

		v = domain.ResolveVersion(versions, date(2024, time.March, 4))
		require.NotNil(t, v)
		assert.Equal(t, 5, v.WeeklyTarget)
	})

	t.Run("Monotonic: a later week never resolves to an earlier version", func(t *testing.T) {
		var prev time.Time
		for week := jan1; !week.After(date(2024, time.April, 1)); week = week.AddDate(0, 0, 7) {
			v := domain.ResolveVersion(versions, week)
			if v == nil {
				continue
			}
			assert.False(t, v.EffectiveWeekStart.Before(prev),
				"week %s resolved to %s after an earlier week resolved to %s",
				week, v.EffectiveWeekStart, prev)
			prev = v.EffectiveWeekStart
		}
	})

	t.Run("Duplicate effective weeks: most recently created wins", func(t *testing.T) {
		older := makeVersion(t, "h1", 2, jan1)
		older.CreatedAt = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
		newer := makeVersion(t, "h1", 4, jan1)
		newer.CreatedAt = time.Date(2024, time.January, 1, 11, 0, 0, 0, time.UTC)

		v := domain.ResolveVersion([]domain.HabitVersion{older, newer}, jan15)
		require.NotNil(t, v)
		assert.Equal(t, 4, v.WeeklyTarget)

		// Order in the slice must not matter.
		v = domain.ResolveVersion([]domain.HabitVersion{newer, older}, jan15)
		require.NotNil(t, v)
		assert.Equal(t, 4, v.WeeklyTarget)
	})

	t.Run("Empty version list", func(t *testing.T) {
		assert.Nil(t, domain.ResolveVersion(nil, jan1))
	})
}

func TestRemaining(t *testing.T) {
	v := makeVersion(t, "h1", 3, date(2024, time.January, 1))

	t.Run("Counts down and clamps at zero", func(t *testing.T) {
		assert.Equal(t, 3, domain.Remaining(&v, 0))
		assert.Equal(t, 1, domain.Remaining(&v, 2))
		assert.Equal(t, 0, domain.Remaining(&v, 3))
		assert.Equal(t, 0, domain.Remaining(&v, 10))
	})

	t.Run("Never negative for any count", func(t *testing.T) {
		for n := 0; n < 50; n++ {
			assert.GreaterOrEqual(t, domain.Remaining(&v, n), 0)
		}
	})

	t.Run("No active version means nothing remaining", func(t *testing.T) {
		assert.Equal(t, 0, domain.Remaining(nil, 0))
	})
}

func TestQuotaExhausted(t *testing.T) {
	v := makeVersion(t, "h1", 2, date(2024, time.January, 1))

	assert.False(t, domain.QuotaExhausted(&v, 0))
	assert.False(t, domain.QuotaExhausted(&v, 1))
	assert.True(t, domain.QuotaExhausted(&v, 2))
	assert.True(t, domain.QuotaExhausted(&v, 3))
	assert.False(t, domain.QuotaExhausted(nil, 100))
}
