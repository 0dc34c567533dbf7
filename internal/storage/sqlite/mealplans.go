package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/storage"
)

// CreateMealPlan persists a new meal plan to the database.
func (s *SQLiteStore) CreateMealPlan(ctx context.Context, plan *models.MealPlan) error {
	// Generate ID if not set
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, owner_id, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		plan.ID, plan.OwnerID, plan.StartDate, plan.EndDate, plan.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("owner %s: %w", plan.OwnerID, storage.ErrUnknownOwner)
	}
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}

	return nil
}

// GetMealPlan retrieves a meal plan by ID, visible only to its owner.
func (s *SQLiteStore) GetMealPlan(ctx context.Context, ownerID, planID string) (*models.MealPlan, error) {
	plan := &models.MealPlan{}

	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, start_date, end_date, created_at
		 FROM meal_plans WHERE id = ? AND owner_id = ?`,
		planID, ownerID,
	).Scan(&plan.ID, &plan.OwnerID, &plan.StartDate, &plan.EndDate, &plan.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meal plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	return plan, nil
}

// ListMealPlans retrieves all meal plans owned by ownerID.
func (s *SQLiteStore) ListMealPlans(ctx context.Context, ownerID string) ([]*models.MealPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, start_date, end_date, created_at
		 FROM meal_plans WHERE owner_id = ?
		 ORDER BY start_date DESC, created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.MealPlan{}
	for rows.Next() {
		plan := &models.MealPlan{}
		if err := rows.Scan(&plan.ID, &plan.OwnerID, &plan.StartDate, &plan.EndDate, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}

	return plans, nil
}

// UpdateMealPlan overwrites the dates of an existing meal plan.
// Concurrent updates are last-write-wins.
func (s *SQLiteStore) UpdateMealPlan(ctx context.Context, plan *models.MealPlan) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE meal_plans SET start_date = ?, end_date = ?
		 WHERE id = ? AND owner_id = ?`,
		plan.StartDate, plan.EndDate, plan.ID, plan.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meal plan: %w", err)
	}

	return requireAffected(res, plan.ID)
}

// DeleteMealPlan removes a meal plan by ID.
func (s *SQLiteStore) DeleteMealPlan(ctx context.Context, ownerID, planID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM meal_plans WHERE id = ? AND owner_id = ?",
		planID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	return requireAffected(res, planID)
}

func requireAffected(res sql.Result, planID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meal plan %s: %w", planID, storage.ErrNotFound)
	}
	return nil
}
