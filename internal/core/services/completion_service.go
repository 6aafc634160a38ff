package services

import (
	"context"
	"strings"
	"time"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

const (
	DefaultCompletionPageSize = 20
	MaxCompletionPageSize     = 100
)

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository

	now func() time.Time
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
		now:       time.Now,
	}
}

// WithClock replaces the service clock. Test hook.
func (s *CompletionService) WithClock(now func() time.Time) *CompletionService {
	s.now = now
	return s
}

type CreateCompletionInput struct {
	HabitID             string
	UserID              string
	Date                string
	Text                *string
	ClientTimezone      string
	ClientOffsetMinutes *int
}

// Create runs the completion gate. Checks run strictly in order and the first
// failure wins: today-only, habit existence/ownership/liveness, active
// version, quota, text requirement. The final count check repeats inside the
// insert transaction, so two racing requests cannot both take the last slot.
func (s *CompletionService) Create(ctx context.Context, input CreateCompletionInput) (*domain.Completion, error) {
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	isToday, err := domain.IsClientToday(date, s.now(), input.ClientTimezone, input.ClientOffsetMinutes)
	if err != nil {
		return nil, err
	}
	if !isToday {
		return nil, domain.ErrPastDateReadonly
	}

	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}
	if habit.IsDeleted {
		return nil, domain.ErrHabitDeleted
	}

	versions, err := s.habitRepo.ListVersions(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}

	weekStart := domain.WeekStart(date)
	weekEnd := domain.WeekEnd(date)

	version := domain.ResolveVersion(versions, weekStart)
	if version == nil {
		return nil, domain.ErrHabitNotActiveForWeek
	}

	count, err := s.repo.CountInWeek(ctx, input.HabitID, input.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if domain.QuotaExhausted(version, count) {
		return nil, domain.ErrWeeklyTargetAlreadyMet
	}

	if version.RequiresText {
		if input.Text == nil || strings.TrimSpace(*input.Text) == "" {
			return nil, domain.ErrTextRequired
		}
	}

	completion := domain.NewCompletion(input.UserID, input.HabitID, date, input.Text)
	if err := completion.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateWithinQuota(ctx, completion, weekStart, weekEnd, version.WeeklyTarget); err != nil {
		return nil, err
	}

	return completion, nil
}

// Delete removes a completion, allowed only while its date is still the
// client's today. Past completions are immutable history.
func (s *CompletionService) Delete(ctx context.Context, id, userID, clientTimezone string, clientOffsetMinutes *int) error {
	completion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if completion.UserID != userID {
		return domain.ErrCompletionNotFound
	}

	isToday, err := domain.IsClientToday(completion.Date, s.now(), clientTimezone, clientOffsetMinutes)
	if err != nil {
		return err
	}
	if !isToday {
		return domain.ErrCompletionNotToday
	}

	return s.repo.Delete(ctx, id, userID)
}

// ComputeRemaining reports how many completions the week still requires.
// Habits with no active version require nothing.
func (s *CompletionService) ComputeRemaining(ctx context.Context, habitID, userID string, weekStart, weekEnd time.Time) (int, error) {
	versions, err := s.habitRepo.ListVersions(ctx, habitID)
	if err != nil {
		return 0, err
	}

	version := domain.ResolveVersion(versions, domain.WeekStart(weekStart))
	if version == nil {
		return 0, nil
	}

	count, err := s.repo.CountInWeek(ctx, habitID, userID, domain.WeekStart(weekStart), domain.DateOf(weekEnd))
	if err != nil {
		return 0, err
	}

	return domain.Remaining(version, count), nil
}

// ListRange returns the user's completions with dates in [from, to].
func (s *CompletionService) ListRange(ctx context.Context, userID, from, to string) ([]*domain.Completion, error) {
	fromDate, err := domain.ParseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := domain.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if fromDate.After(toDate) {
		return nil, domain.ErrInvalidDate
	}

	return s.repo.ListByUserAndRange(ctx, userID, fromDate, toDate)
}

// ListByHabit pages through a habit's completion history, most recent first.
func (s *CompletionService) ListByHabit(ctx context.Context, habitID, userID string, limit, offset int) ([]*domain.Completion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	if limit < 1 {
		limit = DefaultCompletionPageSize
	}
	if limit > MaxCompletionPageSize {
		limit = MaxCompletionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListByHabit(ctx, habitID, userID, limit, offset)
}
