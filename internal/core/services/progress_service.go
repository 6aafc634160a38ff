package services

import (
	"context"
	"time"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type ProgressService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
}

func NewProgressService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository) *ProgressService {
	return &ProgressService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

type HabitProgress struct {
	HabitID      string `json:"habit_id"`
	HabitName    string `json:"habit_name"`
	Active       bool   `json:"active"`
	WeeklyTarget int    `json:"weekly_target"`
	RequiresText bool   `json:"requires_text_on_completion"`
	Completed    int    `json:"completed"`
	Remaining    int    `json:"remaining"`
}

type WeeklyProgress struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Habits    []HabitProgress `json:"habits"`
}

// GetWeeklyProgress reports, for every live habit, the rules governing the
// week containing d and how much of the quota is already done. Habits with no
// version effective yet show up inactive with nothing remaining.
func (s *ProgressService) GetWeeklyProgress(ctx context.Context, userID string, d time.Time) (*WeeklyProgress, error) {
	weekStart := domain.WeekStart(d)
	weekEnd := domain.WeekEnd(d)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := &WeeklyProgress{
		WeekStart: weekStart.Format(domain.DateLayout),
		WeekEnd:   weekEnd.Format(domain.DateLayout),
		Habits:    make([]HabitProgress, 0, len(habits)),
	}

	for _, h := range habits {
		hp := HabitProgress{
			HabitID:   h.ID,
			HabitName: h.Name,
		}

		version := domain.ResolveVersion(h.Versions, weekStart)
		if version != nil {
			count, err := s.completionRepo.CountInWeek(ctx, h.ID, userID, weekStart, weekEnd)
			if err != nil {
				return nil, err
			}

			hp.Active = true
			hp.WeeklyTarget = version.WeeklyTarget
			hp.RequiresText = version.RequiresText
			hp.Completed = count
			hp.Remaining = domain.Remaining(version, count)
		}

		progress.Habits = append(progress.Habits, hp)
	}

	return progress, nil
}
