package handler

import (
	"context"
	"net/http"

	"github.com/mmynk/mealplanner/internal/middleware"
	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/service"
)

// mealPlanResponse is the wire representation of a meal plan. The owner is implicit.
type mealPlanResponse struct {
	ID        string      `json:"id"`
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
}

func toMealPlanResponse(plan *models.MealPlan) mealPlanResponse {
	return mealPlanResponse{
		ID:        plan.ID,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
	}
}

func mealPlanInput(p payload) service.MealPlanInput {
	return service.MealPlanInput{
		StartDate: p.field("start_date"),
		EndDate:   p.field("end_date"),
	}
}

func (h *Handler) listMealPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]mealPlanResponse, len(plans))
	for i, plan := range plans {
		resp[i] = toMealPlanResponse(plan)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getMealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMealPlanResponse(plan))
}

func (h *Handler) createMealPlan(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	p, err := readPayload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	plan, err := h.plans.Create(r.Context(), userID, mealPlanInput(p))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMealPlanResponse(plan))
}

func (h *Handler) updateMealPlan(w http.ResponseWriter, r *http.Request) {
	h.writeMealPlan(w, r, h.plans.Update)
}

func (h *Handler) replaceMealPlan(w http.ResponseWriter, r *http.Request) {
	h.writeMealPlan(w, r, h.plans.Replace)
}

// writeMealPlan runs a PATCH or PUT against an existing plan.
func (h *Handler) writeMealPlan(w http.ResponseWriter, r *http.Request,
	write func(ctx context.Context, userID, planID string, in service.MealPlanInput) (*models.MealPlan, error),
) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		h.writeError(w, r, service.ErrUnauthenticated)
		return
	}

	p, err := readPayload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	plan, err := write(r.Context(), userID, r.PathValue("id"), mealPlanInput(p))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMealPlanResponse(plan))
}

func (h *Handler) deleteMealPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.plans.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
