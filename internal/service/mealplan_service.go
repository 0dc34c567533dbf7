package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/storage"
)

// Field is a raw value taken from a request body.
// Set is false when the field was absent; Null is true for an explicit null.
type Field struct {
	Set   bool
	Null  bool
	Value string
}

// FieldValue returns a present, non-null Field.
func FieldValue(s string) Field {
	return Field{Set: true, Value: s}
}

// MealPlanInput carries the writable fields of a meal plan.
// Anything else a client sends (id, owner) never reaches the service.
type MealPlanInput struct {
	StartDate Field
	EndDate   Field
}

// MealPlanService owns validation and ownership scoping for meal plans.
// Every method takes the requesting user's ID and passes it to storage as
// the owner filter, so plans of other users are never visible.
type MealPlanService struct {
	store  storage.MealPlanStore
	logger *slog.Logger
}

// NewMealPlanService creates a new MealPlanService with the given storage backend.
func NewMealPlanService(store storage.MealPlanStore, logger *slog.Logger) *MealPlanService {
	return &MealPlanService{store: store, logger: logger}
}

// List returns the user's meal plans, latest start date first.
func (s *MealPlanService) List(ctx context.Context, userID string) ([]*models.MealPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	plans, err := s.store.ListMealPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}

	s.logger.Debug("Listed meal plans", "user_id", userID, "count", len(plans))
	return plans, nil
}

// Get returns one of the user's meal plans.
func (s *MealPlanService) Get(ctx context.Context, userID, planID string) (*models.MealPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.load(ctx, userID, planID)
}

// Create validates the input and stores a new plan owned by userID.
func (s *MealPlanService) Create(ctx context.Context, userID string, in MealPlanInput) (*models.MealPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	plan := &models.MealPlan{OwnerID: userID}
	if err := apply(plan, in, false); err != nil {
		return nil, err
	}

	if err := s.store.CreateMealPlan(ctx, plan); err != nil {
		// The token outlived its account.
		if errors.Is(err, storage.ErrUnknownOwner) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("create meal plan: %w", err)
	}

	s.logger.Info("Meal plan created",
		"plan_id", plan.ID,
		"user_id", userID,
		"start_date", plan.StartDate.String(),
		"days", plan.Days(),
	)
	return plan, nil
}

// Update applies a partial update. Absent fields keep their stored values and
// the date range is checked on the merged result.
func (s *MealPlanService) Update(ctx context.Context, userID, planID string, in MealPlanInput) (*models.MealPlan, error) {
	return s.update(ctx, userID, planID, in, true)
}

// Replace overwrites both dates; both fields are required.
func (s *MealPlanService) Replace(ctx context.Context, userID, planID string, in MealPlanInput) (*models.MealPlan, error) {
	return s.update(ctx, userID, planID, in, false)
}

func (s *MealPlanService) update(ctx context.Context, userID, planID string, in MealPlanInput, partial bool) (*models.MealPlan, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	current, err := s.load(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := apply(&updated, in, partial); err != nil {
		return nil, err
	}

	if err := s.store.UpdateMealPlan(ctx, &updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update meal plan: %w", err)
	}

	s.logger.Info("Meal plan updated",
		"plan_id", updated.ID,
		"user_id", userID,
		"start_date", updated.StartDate.String(),
		"end_date", updated.EndDate.String(),
	)
	return &updated, nil
}

// Delete removes one of the user's plans. Deletion is immediate and permanent.
func (s *MealPlanService) Delete(ctx context.Context, userID, planID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.store.DeleteMealPlan(ctx, userID, planID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete meal plan: %w", err)
	}

	s.logger.Info("Meal plan deleted", "plan_id", planID, "user_id", userID)
	return nil
}

func (s *MealPlanService) load(ctx context.Context, userID, planID string) (*models.MealPlan, error) {
	plan, err := s.store.GetMealPlan(ctx, userID, planID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return plan, nil
}

// apply parses the input onto plan. Field errors are reported first;
// the date-range rule is only checked once both dates are well formed.
func apply(plan *models.MealPlan, in MealPlanInput, partial bool) error {
	verr := &ValidationError{}

	if d, ok := parseDateField(verr, "start_date", in.StartDate, partial); ok {
		plan.StartDate = d
	}
	if d, ok := parseDateField(verr, "end_date", in.EndDate, partial); ok {
		plan.EndDate = d
	}
	if verr.HasErrors() {
		return verr
	}

	if err := plan.Validate(); err != nil {
		return NewNonFieldError(err.Error())
	}
	return nil
}

func parseDateField(verr *ValidationError, name string, f Field, partial bool) (models.Date, bool) {
	switch {
	case !f.Set:
		if !partial {
			verr.Add(name, MsgRequired)
		}
		return models.Date{}, false
	case f.Null:
		verr.Add(name, MsgNull)
		return models.Date{}, false
	}

	d, err := models.ParseDate(strings.TrimSpace(f.Value))
	if err != nil {
		verr.Add(name, MsgDateFormat)
		return models.Date{}, false
	}
	return d, true
}
