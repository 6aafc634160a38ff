package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// CreateWithinQuota inserts the completion with the quota check inside the
// same transaction. The habit row lock serializes concurrent inserts for one
// habit, so two requests racing for the last quota slot cannot both commit.
func (r *PostgresCompletionRepository) CreateWithinQuota(ctx context.Context, completion *domain.Completion, weekStart, weekEnd time.Time, weeklyTarget int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin completion tx: %w", err)
	}
	defer tx.Rollback()

	var habitID string
	err = tx.GetContext(ctx, &habitID, `SELECT id FROM habits WHERE id = $1 FOR UPDATE`, completion.HabitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("lock habit row: %w", err)
	}

	var count int
	countQuery := `
		SELECT count(*) FROM habit_completions
		WHERE habit_id = $1 AND user_id = $2 AND date >= $3 AND date <= $4`

	if err := tx.GetContext(ctx, &count, countQuery, completion.HabitID, completion.UserID, weekStart, weekEnd); err != nil {
		return fmt.Errorf("count completions in week: %w", err)
	}

	if count >= weeklyTarget {
		return domain.ErrWeeklyTargetAlreadyMet
	}

	insertQuery := `
		INSERT INTO habit_completions (id, user_id, habit_id, date, text, created_at, updated_at)
		VALUES (:id, :user_id, :habit_id, :date, :text, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, insertQuery, completion); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced habit or user does not exist")
		}
		return fmt.Errorf("insert completion: %w", err)
	}

	return tx.Commit()
}

func (r *PostgresCompletionRepository) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	var completion domain.Completion
	query := `SELECT * FROM habit_completions WHERE id = $1`

	err := r.db.GetContext(ctx, &completion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return &completion, nil
}

// Delete removes the row for good. Completions are only deletable on their
// own day, so there is no history to preserve.
func (r *PostgresCompletionRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `DELETE FROM habit_completions WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) CountInWeek(ctx context.Context, habitID, userID string, weekStart, weekEnd time.Time) (int, error) {
	var count int
	query := `
		SELECT count(*) FROM habit_completions
		WHERE habit_id = $1 AND user_id = $2 AND date >= $3 AND date <= $4`

	if err := r.db.GetContext(ctx, &count, query, habitID, userID, weekStart, weekEnd); err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return count, nil
}

func (r *PostgresCompletionRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}
	query := `
		SELECT * FROM habit_completions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &completions, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list completions by range: %w", err)
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) ListByHabit(ctx context.Context, habitID, userID string, limit, offset int) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}
	query := `
		SELECT * FROM habit_completions
		WHERE habit_id = $1 AND user_id = $2
		ORDER BY date DESC, created_at DESC
		LIMIT $3 OFFSET $4`

	if err := r.db.SelectContext(ctx, &completions, query, habitID, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list completions by habit: %w", err)
	}
	return completions, nil
}
