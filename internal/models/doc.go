// Package models defines the core domain models for the meal planner.
//
// # Models
//
//   - MealPlan: a user-owned date range for planned meals
//   - User: a registered account; the owner of meal plans
//   - Date: a calendar date without time of day, serialized as YYYY-MM-DD
//
// # Design Principles
//
// 1. **Ownership by ID**: MealPlan references its owner by user ID string, not by pointer
// 2. **Validation lives with the model**: the date-range invariant is checked by MealPlan.Validate
// 3. **No transport concerns**: JSON shapes for the API live in the handler package
package models
