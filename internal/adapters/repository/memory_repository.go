package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type InMemoryHabitRepository struct {
	habits   map[string]*domain.Habit
	versions map[string][]domain.HabitVersion

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		habits:   make(map[string]*domain.Habit),
		versions: make(map[string][]domain.HabitVersion),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit, firstVersion *domain.HabitVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.habits[habit.ID] = habit
	r.versions[habit.ID] = []domain.HabitVersion{*firstVersion}
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.habits[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitWithVersions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*domain.HabitWithVersions{}
	for _, h := range r.habits {
		if h.UserID != userID || h.IsDeleted {
			continue
		}

		hw := &domain.HabitWithVersions{
			Habit:    *h,
			Versions: sortedVersions(r.versions[h.ID]),
		}
		if len(hw.Versions) > 0 {
			hw.LinkedGoalID = hw.Versions[0].LinkedGoalID
		}
		result = append(result, hw)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].OrderIndex != result[j].OrderIndex {
			return result[i].OrderIndex < result[j].OrderIndex
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit, newVersion *domain.HabitVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.habits[habit.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrHabitNotFound
	}

	r.habits[habit.ID] = habit
	if newVersion != nil {
		r.versions[habit.ID] = append(r.versions[habit.ID], *newVersion)
	}
	return nil
}

func (r *InMemoryHabitRepository) ListVersions(ctx context.Context, habitID string) ([]domain.HabitVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedVersions(r.versions[habitID]), nil
}

func (r *InMemoryHabitRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.habits[id]
	if !ok || habit.IsDeleted {
		return domain.ErrHabitNotFound
	}

	habit.IsDeleted = true
	habit.UpdatedAt = time.Now().UTC()
	return nil
}

// sortedVersions returns a copy ordered by effective_week_start desc,
// created_at desc, matching the postgres adapter.
func sortedVersions(versions []domain.HabitVersion) []domain.HabitVersion {
	out := make([]domain.HabitVersion, len(versions))
	copy(out, versions)

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EffectiveWeekStart.Equal(out[j].EffectiveWeekStart) {
			return out[i].EffectiveWeekStart.After(out[j].EffectiveWeekStart)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

type InMemoryCompletionRepository struct {
	store map[string]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) CreateWithinQuota(ctx context.Context, completion *domain.Completion, weekStart, weekEnd time.Time, weeklyTarget int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.countLocked(completion.HabitID, completion.UserID, weekStart, weekEnd)
	if count >= weeklyTarget {
		return domain.ErrWeeklyTargetAlreadyMet
	}

	r.store[completion.ID] = completion
	return nil
}

func (r *InMemoryCompletionRepository) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCompletionNotFound
	}
	return c, nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[id]
	if !ok || c.UserID != userID {
		return domain.ErrCompletionNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryCompletionRepository) CountInWeek(ctx context.Context, habitID, userID string, weekStart, weekEnd time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.countLocked(habitID, userID, weekStart, weekEnd), nil
}

func (r *InMemoryCompletionRepository) countLocked(habitID, userID string, weekStart, weekEnd time.Time) int {
	count := 0
	for _, c := range r.store {
		if c.HabitID == habitID && c.UserID == userID &&
			!c.Date.Before(weekStart) && !c.Date.After(weekEnd) {
			count++
		}
	}
	return count
}

func (r *InMemoryCompletionRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*domain.Completion{}
	for _, c := range r.store {
		if c.UserID == userID && !c.Date.Before(from) && !c.Date.After(to) {
			result = append(result, c)
		}
	}

	sortCompletions(result)
	return result, nil
}

func (r *InMemoryCompletionRepository) ListByHabit(ctx context.Context, habitID, userID string, limit, offset int) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := []*domain.Completion{}
	for _, c := range r.store {
		if c.HabitID == habitID && c.UserID == userID {
			all = append(all, c)
		}
	}

	sortCompletions(all)

	if offset >= len(all) {
		return []*domain.Completion{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func sortCompletions(completions []*domain.Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if !completions[i].Date.Equal(completions[j].Date) {
			return completions[i].Date.After(completions[j].Date)
		}
		return completions[i].CreatedAt.After(completions[j].CreatedAt)
	})
}

type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[goal.ID] = goal
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*domain.Goal{}
	for _, g := range r.store {
		if g.UserID == userID && !g.IsDeleted {
			result = append(result, g)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[goal.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrGoalNotFound
	}

	r.store[goal.ID] = goal
	return nil
}

func (r *InMemoryGoalRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok || goal.IsDeleted {
		return domain.ErrGoalNotFound
	}

	goal.IsDeleted = true
	goal.UpdatedAt = time.Now().UTC()
	return nil
}
