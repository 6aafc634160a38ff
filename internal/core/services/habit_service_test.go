package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
	"github.com/davidegradoni/ritmo-api/internal/core/services"
)

func TestParseEditPolicy(t *testing.T) {
	p, err := services.ParseEditPolicy("immediate")
	require.NoError(t, err)
	assert.Equal(t, services.PolicyImmediate, p)

	p, err = services.ParseEditPolicy("next_week")
	require.NoError(t, err)
	assert.Equal(t, services.PolicyNextWeek, p)

	p, err = services.ParseEditPolicy("")
	require.NoError(t, err)
	assert.Equal(t, services.PolicyNextWeek, p)

	_, err = services.ParseEditPolicy("whenever")
	assert.Error(t, err)
}

func TestHabitService_Create(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("First version is effective from the current week", func(t *testing.T) {
		repo := new(MockHabitRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewHabitService(repo, goalRepo, services.PolicyNextWeek).WithClock(fixedClock)

		var captured *domain.HabitVersion
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Habit"), mock.AnythingOfType("*domain.HabitVersion")).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(*domain.HabitVersion)
			}).Return(nil)

		habit, err := svc.Create(ctx, services.CreateHabitInput{
			UserID:       uid,
			Name:         "Read",
			WeeklyTarget: 3,
		})

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, habit.ID, captured.HabitID)
		assert.Equal(t, 3, captured.WeeklyTarget)
		// fixedNow is Tuesday 2024-01-02; its week starts Monday 2024-01-01.
		assert.Equal(t, utcDate(2024, time.January, 1), captured.EffectiveWeekStart)
	})

	t.Run("Rejects target below 1", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek).WithClock(fixedClock)

		_, err := svc.Create(ctx, services.CreateHabitInput{UserID: uid, Name: "Read", WeeklyTarget: 0})

		assert.ErrorIs(t, err, domain.ErrInvalidWeeklyTarget)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Linked goal must exist, be owned and live", func(t *testing.T) {
		repo := new(MockHabitRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewHabitService(repo, goalRepo, services.PolicyNextWeek).WithClock(fixedClock)

		missing := "goal-missing"
		goalRepo.On("GetByID", ctx, missing).Return(nil, domain.ErrGoalNotFound)
		_, err := svc.Create(ctx, services.CreateHabitInput{UserID: uid, Name: "Read", WeeklyTarget: 1, LinkedGoalID: &missing})
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)

		foreignGoal, gerr := domain.NewGoal("other-user", "Their goal", 2024, nil)
		require.NoError(t, gerr)
		goalRepo.On("GetByID", ctx, foreignGoal.ID).Return(foreignGoal, nil)
		_, err = svc.Create(ctx, services.CreateHabitInput{UserID: uid, Name: "Read", WeeklyTarget: 1, LinkedGoalID: &foreignGoal.ID})
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)

		deadGoal, gerr := domain.NewGoal(uid, "Old goal", 2024, nil)
		require.NoError(t, gerr)
		deadGoal.SoftDelete()
		goalRepo.On("GetByID", ctx, deadGoal.ID).Return(deadGoal, nil)
		_, err = svc.Create(ctx, services.CreateHabitInput{UserID: uid, Name: "Read", WeeklyTarget: 1, LinkedGoalID: &deadGoal.ID})
		assert.ErrorIs(t, err, domain.ErrGoalDeleted)
	})
}

func TestHabitService_Update(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	setup := func(policy services.EditPolicy) (*MockHabitRepo, *services.HabitService, *domain.Habit) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), policy).WithClock(fixedClock)
		habit := liveHabit(t, uid, "Read")
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)
		return repo, svc, habit
	}

	input := func(habitID string) services.UpdateHabitInput {
		return services.UpdateHabitInput{
			ID:           habitID,
			UserID:       uid,
			Name:         "Read more",
			WeeklyTarget: 4,
		}
	}

	t.Run("next_week policy stamps the following Monday", func(t *testing.T) {
		repo, svc, habit := setup(services.PolicyNextWeek)

		var captured *domain.HabitVersion
		repo.On("Update", ctx, habit, mock.AnythingOfType("*domain.HabitVersion")).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(*domain.HabitVersion)
			}).Return(nil)

		require.NoError(t, svc.Update(ctx, input(habit.ID)))

		require.NotNil(t, captured)
		assert.Equal(t, utcDate(2024, time.January, 8), captured.EffectiveWeekStart)
		assert.Equal(t, 4, captured.WeeklyTarget)
		assert.Equal(t, "Read more", habit.Name)
	})

	t.Run("immediate policy stamps the current Monday", func(t *testing.T) {
		repo, svc, habit := setup(services.PolicyImmediate)

		var captured *domain.HabitVersion
		repo.On("Update", ctx, habit, mock.AnythingOfType("*domain.HabitVersion")).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(*domain.HabitVersion)
			}).Return(nil)

		require.NoError(t, svc.Update(ctx, input(habit.ID)))

		require.NotNil(t, captured)
		assert.Equal(t, utcDate(2024, time.January, 1), captured.EffectiveWeekStart)
	})

	t.Run("Someone else's habit looks like it does not exist", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek).WithClock(fixedClock)

		habit := liveHabit(t, "other-user", "Read")
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)

		err := svc.Update(ctx, input(habit.ID))
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Soft-deleted habit cannot be edited", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek).WithClock(fixedClock)

		habit := liveHabit(t, uid, "Read")
		habit.SoftDelete()
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)

		err := svc.Update(ctx, input(habit.ID))
		assert.ErrorIs(t, err, domain.ErrHabitDeleted)
	})
}

func TestHabitService_Delete(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek)

		habit := liveHabit(t, uid, "Read")
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)
		repo.On("SoftDelete", ctx, habit.ID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, habit.ID, uid))
		repo.AssertExpectations(t)
	})

	t.Run("Deleting twice reports not found", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek)

		habit := liveHabit(t, uid, "Read")
		habit.SoftDelete()
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)

		err := svc.Delete(ctx, habit.ID, uid)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestHabitService_ResolveActiveVersion(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Edit under next_week keeps the old rules for the current week", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek)

		habit := liveHabit(t, uid, "Read")
		oldV := activeVersion(t, habit.ID, 2, false, utcDate(2024, time.January, 1))
		newV := activeVersion(t, habit.ID, 5, false, utcDate(2024, time.January, 15))
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)
		repo.On("ListVersions", ctx, habit.ID).Return([]domain.HabitVersion{newV, oldV}, nil)

		v, err := svc.ResolveActiveVersion(ctx, habit.ID, uid, utcDate(2024, time.January, 8))
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 2, v.WeeklyTarget)

		v, err = svc.ResolveActiveVersion(ctx, habit.ID, uid, utcDate(2024, time.January, 15))
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 5, v.WeeklyTarget)
	})

	t.Run("No version yet effective returns none, not an error", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewHabitService(repo, new(MockGoalRepo), services.PolicyNextWeek)

		habit := liveHabit(t, uid, "Read")
		repo.On("GetByID", ctx, habit.ID).Return(habit, nil)
		repo.On("ListVersions", ctx, habit.ID).
			Return([]domain.HabitVersion{activeVersion(t, habit.ID, 2, false, utcDate(2024, time.February, 5))}, nil)

		v, err := svc.ResolveActiveVersion(ctx, habit.ID, uid, utcDate(2024, time.January, 8))
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
