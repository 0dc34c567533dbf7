// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// SQLSTATE codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS meal_plans (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    created_at BIGINT NOT NULL,
    CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_meal_plans_owner_start ON meal_plans(owner_id, start_date DESC);
`

// Store implements storage.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) CreateMealPlan(ctx context.Context, plan *models.MealPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO meal_plans (id, owner_id, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		plan.ID, plan.OwnerID, plan.StartDate.Time(), plan.EndDate.Time(), plan.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("owner %s: %w", plan.OwnerID, storage.ErrUnknownOwner)
	}
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return nil
}

func (s *Store) GetMealPlan(ctx context.Context, ownerID, planID string) (*models.MealPlan, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, start_date, end_date, created_at
		 FROM meal_plans WHERE id = $1 AND owner_id = $2`,
		planID, ownerID,
	)

	plan, err := scanMealPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("meal plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return plan, nil
}

func (s *Store) ListMealPlans(ctx context.Context, ownerID string) ([]*models.MealPlan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, start_date, end_date, created_at
		 FROM meal_plans WHERE owner_id = $1
		 ORDER BY start_date DESC, created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.MealPlan{}
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}
	return plans, nil
}

func (s *Store) UpdateMealPlan(ctx context.Context, plan *models.MealPlan) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE meal_plans SET start_date = $1, end_date = $2
		 WHERE id = $3 AND owner_id = $4`,
		plan.StartDate.Time(), plan.EndDate.Time(), plan.ID, plan.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal plan %s: %w", plan.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteMealPlan(ctx context.Context, ownerID, planID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM meal_plans WHERE id = $1 AND owner_id = $2`,
		planID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal plan %s: %w", planID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", models.NormalizeEmail(email))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

// getUser looks a user up by one of the unique columns; column is never user input.
func (s *Store) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, display_name, password_hash, created_at, updated_at
		 FROM users WHERE `+column+` = $1`,
		value,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanMealPlan(row pgx.Row) (*models.MealPlan, error) {
	plan := &models.MealPlan{}
	var start, end time.Time
	if err := row.Scan(&plan.ID, &plan.OwnerID, &start, &end, &plan.CreatedAt); err != nil {
		return nil, err
	}
	plan.StartDate = models.DateOf(start)
	plan.EndDate = models.DateOf(end)
	return plan, nil
}
