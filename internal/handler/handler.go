// Package handler exposes the meal planner over a JSON REST API.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mmynk/mealplanner/internal/service"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the REST routes.
type Handler struct {
	plans  *service.MealPlanService
	auth   *service.AuthService
	health Pinger
	logger *slog.Logger
}

// New creates a Handler. health may be nil, in which case /healthz always succeeds.
func New(plans *service.MealPlanService, auth *service.AuthService, health Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		plans:  plans,
		auth:   auth,
		health: health,
		logger: logger,
	}
}

// Register adds all REST routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /meal-plans", h.listMealPlans)
	mux.HandleFunc("POST /meal-plans", h.createMealPlan)
	mux.HandleFunc("GET /meal-plans/{id}", h.getMealPlan)
	mux.HandleFunc("PATCH /meal-plans/{id}", h.updateMealPlan)
	mux.HandleFunc("PUT /meal-plans/{id}", h.replaceMealPlan)
	mux.HandleFunc("DELETE /meal-plans/{id}", h.deleteMealPlan)

	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("GET /auth/me", h.me)

	mux.HandleFunc("GET /healthz", h.healthz)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
