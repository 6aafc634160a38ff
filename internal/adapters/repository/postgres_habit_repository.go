package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, habit *domain.Habit, firstVersion *domain.HabitVersion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin habit create tx: %w", err)
	}
	defer tx.Rollback()

	habitQuery := `
		INSERT INTO habits (id, user_id, name, order_index, is_deleted, created_at, updated_at)
		VALUES (:id, :user_id, :name, :order_index, :is_deleted, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, habitQuery, habit); err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}

	if err := insertVersion(ctx, tx, firstVersion); err != nil {
		return err
	}

	return tx.Commit()
}

func insertVersion(ctx context.Context, tx *sqlx.Tx, v *domain.HabitVersion) error {
	query := `
		INSERT INTO habit_versions (
			id, habit_id, weekly_target, requires_text_on_completion,
			linked_goal_id, description, effective_week_start, created_at, updated_at
		) VALUES (
			:id, :habit_id, :weekly_target, :requires_text_on_completion,
			:linked_goal_id, :description, :effective_week_start, :created_at, :updated_at
		)`

	if _, err := tx.NamedExecContext(ctx, query, v); err != nil {
		return fmt.Errorf("insert habit version: %w", err)
	}
	return nil
}

// GetByID returns the habit even when soft-deleted so callers can tell
// "deleted" apart from "never existed".
func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var habit domain.Habit
	query := `SELECT * FROM habits WHERE id = $1`

	err := r.db.GetContext(ctx, &habit, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitWithVersions, error) {
	habits := []domain.Habit{}
	query := `
		SELECT * FROM habits
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY order_index ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	versions := []domain.HabitVersion{}
	versionQuery := `
		SELECT v.* FROM habit_versions v
		JOIN habits h ON h.id = v.habit_id
		WHERE h.user_id = $1 AND h.is_deleted = FALSE
		ORDER BY v.effective_week_start DESC, v.created_at DESC`

	if err := r.db.SelectContext(ctx, &versions, versionQuery, userID); err != nil {
		return nil, fmt.Errorf("list habit versions: %w", err)
	}

	byHabit := make(map[string][]domain.HabitVersion)
	for _, v := range versions {
		byHabit[v.HabitID] = append(byHabit[v.HabitID], v)
	}

	result := make([]*domain.HabitWithVersions, 0, len(habits))
	for _, h := range habits {
		hv := &domain.HabitWithVersions{
			Habit:    h,
			Versions: byHabit[h.ID],
		}
		if len(hv.Versions) > 0 {
			hv.LinkedGoalID = hv.Versions[0].LinkedGoalID
		}
		result = append(result, hv)
	}

	return result, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, habit *domain.Habit, newVersion *domain.HabitVersion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin habit update tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE habits
		SET name = :name, order_index = :order_index, updated_at = :updated_at
		WHERE id = :id AND is_deleted = FALSE`

	res, err := tx.NamedExecContext(ctx, query, habit)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	if newVersion != nil {
		if err := insertVersion(ctx, tx, newVersion); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresHabitRepository) ListVersions(ctx context.Context, habitID string) ([]domain.HabitVersion, error) {
	versions := []domain.HabitVersion{}
	query := `
		SELECT * FROM habit_versions
		WHERE habit_id = $1
		ORDER BY effective_week_start DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &versions, query, habitID); err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// SoftDelete flags the habit; its versions and completions stay untouched so
// history keeps resolving.
func (r *PostgresHabitRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE habits
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete habit: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
