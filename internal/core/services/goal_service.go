package services

import (
	"context"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
	}
}

type CreateGoalInput struct {
	UserID      string
	Title       string
	Year        int
	Description *string
}

type UpdateGoalInput struct {
	ID          string
	UserID      string
	Title       string
	Year        int
	Description *string
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, input.Title, input.Year, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) error {
	goal, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if goal.UserID != input.UserID {
		return domain.ErrGoalNotFound
	}
	if goal.IsDeleted {
		return domain.ErrGoalDeleted
	}

	if err := goal.Update(input.Title, input.Year, input.Description); err != nil {
		return err
	}

	return s.repo.Update(ctx, goal)
}

func (s *GoalService) Delete(ctx context.Context, id string, userID string) error {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return domain.ErrGoalNotFound
	}
	if goal.IsDeleted {
		return domain.ErrGoalDeleted
	}

	return s.repo.SoftDelete(ctx, id)
}
