package services

import (
	"context"
	"fmt"
	"time"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

// EditPolicy controls which Monday a habit edit's appended version becomes
// effective from. The product has shipped both behaviors at different times,
// so the choice stays a deployment knob rather than a hard-coded rule.
type EditPolicy string

const (
	PolicyImmediate EditPolicy = "immediate"
	PolicyNextWeek  EditPolicy = "next_week"
)

func ParseEditPolicy(s string) (EditPolicy, error) {
	switch EditPolicy(s) {
	case PolicyImmediate:
		return PolicyImmediate, nil
	case PolicyNextWeek, EditPolicy(""):
		return PolicyNextWeek, nil
	default:
		return "", fmt.Errorf("unknown habit edit policy %q (want immediate or next_week)", s)
	}
}

type HabitService struct {
	repo     domain.HabitRepository
	goalRepo domain.GoalRepository
	policy   EditPolicy

	// now is injected so week stamping is testable across dates.
	now func() time.Time
}

func NewHabitService(repo domain.HabitRepository, goalRepo domain.GoalRepository, policy EditPolicy) *HabitService {
	return &HabitService{
		repo:     repo,
		goalRepo: goalRepo,
		policy:   policy,
		now:      time.Now,
	}
}

// WithClock replaces the service clock. Test hook.
func (s *HabitService) WithClock(now func() time.Time) *HabitService {
	s.now = now
	return s
}

type CreateHabitInput struct {
	UserID       string
	Name         string
	OrderIndex   int
	WeeklyTarget int
	RequiresText bool
	LinkedGoalID *string
	Description  *string
}

type UpdateHabitInput struct {
	ID           string
	UserID       string
	Name         string
	OrderIndex   int
	WeeklyTarget int
	RequiresText bool
	LinkedGoalID *string
	Description  *string
}

func (s *HabitService) checkGoalLink(ctx context.Context, goalID *string, userID string) error {
	if goalID == nil {
		return nil
	}

	goal, err := s.goalRepo.GetByID(ctx, *goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return domain.ErrGoalNotFound
	}
	if goal.IsDeleted {
		return domain.ErrGoalDeleted
	}
	return nil
}

// Create persists a habit with its implicit first version, effective from the
// current week regardless of the edit policy.
func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	if err := s.checkGoalLink(ctx, input.LinkedGoalID, input.UserID); err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(input.UserID, input.Name, input.OrderIndex)
	if err != nil {
		return nil, err
	}

	effective := domain.WeekStart(s.now().UTC())
	version, err := domain.NewHabitVersion(habit.ID, input.WeeklyTarget, input.RequiresText, input.LinkedGoalID, input.Description, effective)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit, version); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitWithVersions, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update renames the habit and appends a new rule version; existing versions
// stay untouched so past weeks keep resolving to the rules that governed them.
func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) error {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if habit.UserID != input.UserID {
		return domain.ErrHabitNotFound
	}
	if habit.IsDeleted {
		return domain.ErrHabitDeleted
	}

	if err := s.checkGoalLink(ctx, input.LinkedGoalID, input.UserID); err != nil {
		return err
	}

	if err := habit.Rename(input.Name, input.OrderIndex); err != nil {
		return err
	}

	today := s.now().UTC()
	effective := domain.NextWeekStart(today)
	if s.policy == PolicyImmediate {
		effective = domain.WeekStart(today)
	}

	version, err := domain.NewHabitVersion(habit.ID, input.WeeklyTarget, input.RequiresText, input.LinkedGoalID, input.Description, effective)
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, habit, version)
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if habit.UserID != userID || habit.IsDeleted {
		return domain.ErrHabitNotFound
	}

	return s.repo.SoftDelete(ctx, id)
}

// ResolveActiveVersion returns the version governing the week containing
// weekStart, or nil when the habit has no version effective yet.
func (s *HabitService) ResolveActiveVersion(ctx context.Context, habitID, userID string, weekStart time.Time) (*domain.HabitVersion, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	if habit.IsDeleted {
		return nil, domain.ErrHabitDeleted
	}

	versions, err := s.repo.ListVersions(ctx, habitID)
	if err != nil {
		return nil, err
	}

	return domain.ResolveVersion(versions, domain.WeekStart(weekStart)), nil
}
