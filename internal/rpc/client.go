package rpc

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// MealPlanServiceClient calls the meal plan procedures.
type MealPlanServiceClient struct {
	list   *connect.Client[ListMealPlansRequest, ListMealPlansResponse]
	get    *connect.Client[GetMealPlanRequest, GetMealPlanResponse]
	create *connect.Client[CreateMealPlanRequest, CreateMealPlanResponse]
	update *connect.Client[UpdateMealPlanRequest, UpdateMealPlanResponse]
	delete *connect.Client[DeleteMealPlanRequest, DeleteMealPlanResponse]
}

// NewMealPlanServiceClient constructs a client for the service at baseURL.
func NewMealPlanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MealPlanServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)

	return &MealPlanServiceClient{
		list:   connect.NewClient[ListMealPlansRequest, ListMealPlansResponse](httpClient, baseURL+ListMealPlansProcedure, opts...),
		get:    connect.NewClient[GetMealPlanRequest, GetMealPlanResponse](httpClient, baseURL+GetMealPlanProcedure, opts...),
		create: connect.NewClient[CreateMealPlanRequest, CreateMealPlanResponse](httpClient, baseURL+CreateMealPlanProcedure, opts...),
		update: connect.NewClient[UpdateMealPlanRequest, UpdateMealPlanResponse](httpClient, baseURL+UpdateMealPlanProcedure, opts...),
		delete: connect.NewClient[DeleteMealPlanRequest, DeleteMealPlanResponse](httpClient, baseURL+DeleteMealPlanProcedure, opts...),
	}
}

func (c *MealPlanServiceClient) ListMealPlans(ctx context.Context, req *connect.Request[ListMealPlansRequest]) (*connect.Response[ListMealPlansResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *MealPlanServiceClient) GetMealPlan(ctx context.Context, req *connect.Request[GetMealPlanRequest]) (*connect.Response[GetMealPlanResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *MealPlanServiceClient) CreateMealPlan(ctx context.Context, req *connect.Request[CreateMealPlanRequest]) (*connect.Response[CreateMealPlanResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *MealPlanServiceClient) UpdateMealPlan(ctx context.Context, req *connect.Request[UpdateMealPlanRequest]) (*connect.Response[UpdateMealPlanResponse], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *MealPlanServiceClient) DeleteMealPlan(ctx context.Context, req *connect.Request[DeleteMealPlanRequest]) (*connect.Response[DeleteMealPlanResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

// WithBearer returns an interceptor that attaches a bearer token to every call.
func WithBearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
