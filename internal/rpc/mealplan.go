package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/mealplanner/internal/middleware"
	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/service"
)

// ServiceName is the fully-qualified Connect service name.
const ServiceName = "mealplan.v1.MealPlanService"

// Procedure paths.
const (
	ListMealPlansProcedure  = "/" + ServiceName + "/ListMealPlans"
	GetMealPlanProcedure    = "/" + ServiceName + "/GetMealPlan"
	CreateMealPlanProcedure = "/" + ServiceName + "/CreateMealPlan"
	UpdateMealPlanProcedure = "/" + ServiceName + "/UpdateMealPlan"
	DeleteMealPlanProcedure = "/" + ServiceName + "/DeleteMealPlan"
)

// MealPlanServer adapts service.MealPlanService to Connect procedures.
type MealPlanServer struct {
	plans *service.MealPlanService
}

// NewMealPlanServer creates a new MealPlanServer.
func NewMealPlanServer(plans *service.MealPlanService) *MealPlanServer {
	return &MealPlanServer{plans: plans}
}

// NewMealPlanServiceHandler builds an http.Handler for all procedures and
// returns the path prefix to mount it on.
func NewMealPlanServiceHandler(srv *MealPlanServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListMealPlansProcedure, connect.NewUnaryHandler(ListMealPlansProcedure, srv.ListMealPlans, opts...))
	mux.Handle(GetMealPlanProcedure, connect.NewUnaryHandler(GetMealPlanProcedure, srv.GetMealPlan, opts...))
	mux.Handle(CreateMealPlanProcedure, connect.NewUnaryHandler(CreateMealPlanProcedure, srv.CreateMealPlan, opts...))
	mux.Handle(UpdateMealPlanProcedure, connect.NewUnaryHandler(UpdateMealPlanProcedure, srv.UpdateMealPlan, opts...))
	mux.Handle(DeleteMealPlanProcedure, connect.NewUnaryHandler(DeleteMealPlanProcedure, srv.DeleteMealPlan, opts...))

	return "/" + ServiceName + "/", mux
}

// ListMealPlans returns the caller's plans.
func (s *MealPlanServer) ListMealPlans(ctx context.Context, req *connect.Request[ListMealPlansRequest]) (*connect.Response[ListMealPlansResponse], error) {
	plans, err := s.plans.List(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]MealPlan, len(plans))
	for i, plan := range plans {
		out[i] = toMessage(plan)
	}
	return connect.NewResponse(&ListMealPlansResponse{MealPlans: out}), nil
}

// GetMealPlan returns one of the caller's plans.
func (s *MealPlanServer) GetMealPlan(ctx context.Context, req *connect.Request[GetMealPlanRequest]) (*connect.Response[GetMealPlanResponse], error) {
	plan, err := s.plans.Get(ctx, middleware.GetUserID(ctx), req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetMealPlanResponse{MealPlan: toMessage(plan)}), nil
}

// CreateMealPlan stores a new plan for the caller.
func (s *MealPlanServer) CreateMealPlan(ctx context.Context, req *connect.Request[CreateMealPlanRequest]) (*connect.Response[CreateMealPlanResponse], error) {
	in := service.MealPlanInput{
		StartDate: requiredField(req.Msg.StartDate),
		EndDate:   requiredField(req.Msg.EndDate),
	}

	plan, err := s.plans.Create(ctx, middleware.GetUserID(ctx), in)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateMealPlanResponse{MealPlan: toMessage(plan)}), nil
}

// UpdateMealPlan partially updates one of the caller's plans.
func (s *MealPlanServer) UpdateMealPlan(ctx context.Context, req *connect.Request[UpdateMealPlanRequest]) (*connect.Response[UpdateMealPlanResponse], error) {
	in := service.MealPlanInput{
		StartDate: optionalField(req.Msg.StartDate),
		EndDate:   optionalField(req.Msg.EndDate),
	}

	plan, err := s.plans.Update(ctx, middleware.GetUserID(ctx), req.Msg.ID, in)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&UpdateMealPlanResponse{MealPlan: toMessage(plan)}), nil
}

// DeleteMealPlan removes one of the caller's plans.
func (s *MealPlanServer) DeleteMealPlan(ctx context.Context, req *connect.Request[DeleteMealPlanRequest]) (*connect.Response[DeleteMealPlanResponse], error) {
	if err := s.plans.Delete(ctx, middleware.GetUserID(ctx), req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteMealPlanResponse{}), nil
}

func toMessage(plan *models.MealPlan) MealPlan {
	return MealPlan{
		ID:        plan.ID,
		StartDate: plan.StartDate.String(),
		EndDate:   plan.EndDate.String(),
	}
}

// requiredField treats the empty string as an absent field.
func requiredField(s string) service.Field {
	if s == "" {
		return service.Field{}
	}
	return service.FieldValue(s)
}

func optionalField(s *string) service.Field {
	if s == nil {
		return service.Field{}
	}
	return service.FieldValue(*s)
}

// toConnectError maps service errors to Connect codes. Validation errors keep
// their message text, which clients can match on.
func toConnectError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return connect.NewError(connect.CodeInvalidArgument, verr)
	case errors.Is(err, service.ErrUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, service.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		slog.Error("RPC internal error", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
