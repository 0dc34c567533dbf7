package rpc

// MealPlan is the RPC representation of a meal plan.
type MealPlan struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ListMealPlansRequest struct{}

type ListMealPlansResponse struct {
	MealPlans []MealPlan `json:"meal_plans"`
}

type GetMealPlanRequest struct {
	ID string `json:"id"`
}

type GetMealPlanResponse struct {
	MealPlan MealPlan `json:"meal_plan"`
}

type CreateMealPlanRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CreateMealPlanResponse struct {
	MealPlan MealPlan `json:"meal_plan"`
}

// UpdateMealPlanRequest is a partial update: nil fields keep their stored value.
type UpdateMealPlanRequest struct {
	ID        string  `json:"id"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

type UpdateMealPlanResponse struct {
	MealPlan MealPlan `json:"meal_plan"`
}

type DeleteMealPlanRequest struct {
	ID string `json:"id"`
}

type DeleteMealPlanResponse struct{}
