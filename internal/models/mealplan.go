package models

import "errors"

// DateRangeMessage is reported when a plan ends before it starts.
const DateRangeMessage = "End date must be greater than or equal to start date."

// ErrInvalidDateRange is returned by MealPlan.Validate when EndDate is before StartDate.
var ErrInvalidDateRange = errors.New(DateRangeMessage)

// MealPlan represents a date range for which a user plans meals.
type MealPlan struct {
	// ID is the unique identifier for the plan (UUID format).
	// Assigned by the store on creation and never changed.
	ID string

	// OwnerID is the ID of the user who created the plan.
	// Set on creation and never changed.
	OwnerID string

	// StartDate is the first day of the plan.
	StartDate Date

	// EndDate is the last day of the plan. Never before StartDate.
	EndDate Date

	// CreatedAt is the Unix timestamp when the plan was created.
	CreatedAt int64
}

// Validate checks the date-range invariant: EndDate >= StartDate.
func (p *MealPlan) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Days returns the number of calendar days the plan covers, inclusive.
func (p *MealPlan) Days() int {
	return int(p.EndDate.Time().Sub(p.StartDate.Time()).Hours()/24) + 1
}
