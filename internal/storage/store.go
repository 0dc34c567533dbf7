// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/mealplanner/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not visible
// to the requesting owner.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrUnknownOwner is returned when a meal plan references a user that does not exist.
var ErrUnknownOwner = errors.New("owner does not exist")

// MealPlanStore defines meal plan persistence.
//
// Every read and write takes the owner's user ID and applies it as a filter,
// so a plan owned by someone else behaves exactly like a missing one.
type MealPlanStore interface {
	// CreateMealPlan persists a new plan.
	// The plan.ID and plan.CreatedAt fields are populated by the store if empty.
	CreateMealPlan(ctx context.Context, plan *models.MealPlan) error

	// GetMealPlan retrieves a plan by ID, scoped to ownerID.
	// Returns ErrNotFound if no such plan is owned by ownerID.
	GetMealPlan(ctx context.Context, ownerID, planID string) (*models.MealPlan, error)

	// ListMealPlans returns all plans owned by ownerID,
	// ordered by start date descending, newest first on ties.
	ListMealPlans(ctx context.Context, ownerID string) ([]*models.MealPlan, error)

	// UpdateMealPlan writes the plan's dates, scoped to plan.OwnerID.
	// Returns ErrNotFound if no such plan is owned by plan.OwnerID.
	UpdateMealPlan(ctx context.Context, plan *models.MealPlan) error

	// DeleteMealPlan removes a plan, scoped to ownerID.
	// Returns ErrNotFound if no such plan is owned by ownerID.
	DeleteMealPlan(ctx context.Context, ownerID, planID string) error
}

// UserStore defines user account persistence.
type UserStore interface {
	// CreateUser returns ErrDuplicate if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns ErrNotFound if no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the full storage backend used by the server.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	MealPlanStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
