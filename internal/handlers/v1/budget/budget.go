package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

type budgetService interface {
	CreateBudget(ctx context.Context, userID uuid.UUID, name string, periodStart, periodEnd time.Time, total decimal.Decimal) (*service.Budget, error)
	GetBudget(ctx context.Context, userID, id uuid.UUID) (*service.Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]service.Budget, error)
	UpdateBudget(ctx context.Context, userID, id uuid.UUID, update service.BudgetUpdate) (*service.Budget, error)
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the /v1/budget endpoints.
type Handler struct {
	Budgets budgetService
}

func NewHandler(budgets budgetService) *Handler {
	return &Handler{Budgets: budgets}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budget",
		Summary:       "Create a budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets",
		Description: "Returns the user's budgets, latest period first.",
		Tags:        []string{"Budgets"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Get a budget",
		Tags:        []string{"Budgets"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPatch,
		Path:        "/v1/budget/{id}",
		Summary:     "Update a budget",
		Description: "Changes the name, period or total of a budget. The period end may not fall before its start.",
		Tags:        []string{"Budgets"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          "/v1/budget/{id}",
		Summary:       "Delete a budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteBudget)
}

type CreateBudgetInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body   CreateBudgetBody
}

type CreateBudgetBody struct {
	Name        string `json:"name" minLength:"1" maxLength:"100" doc:"Budget name"`
	PeriodStart string `json:"periodStart" doc:"First day (2006-01-02)"`
	PeriodEnd   string `json:"periodEnd" doc:"Last day (2006-01-02)"`
	TotalAmount string `json:"totalAmount" doc:"Decimal budget total"`
}

type BudgetOutput struct {
	Status int
	Body   httpio.Budget
}

type ListBudgetsInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

type ListBudgetsOutput struct {
	Body struct {
		Budgets []httpio.Budget `json:"budgets"`
	}
}

type BudgetPathInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Budget UUID"`
}

type UpdateBudgetInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Budget UUID"`
	Body   UpdateBudgetBody
}

// UpdateBudgetBody lists the editable fields. Absent fields are left unchanged.
type UpdateBudgetBody struct {
	Name        *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"New name"`
	PeriodStart *string `json:"periodStart,omitempty" doc:"New first day (2006-01-02)"`
	PeriodEnd   *string `json:"periodEnd,omitempty" doc:"New last day (2006-01-02)"`
	TotalAmount *string `json:"totalAmount,omitempty" doc:"New decimal budget total"`
}

type DeleteBudgetOutput struct{}

func (h *Handler) create(ctx context.Context, input *CreateBudgetInput) (*BudgetOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	start, err := httpio.ParseDate("periodStart", input.Body.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := httpio.ParseDate("periodEnd", input.Body.PeriodEnd)
	if err != nil {
		return nil, err
	}
	total, err := httpio.ParseAmount("totalAmount", input.Body.TotalAmount)
	if err != nil {
		return nil, err
	}

	b, err := h.Budgets.CreateBudget(ctx, userID, input.Body.Name, start, end, total)
	if err != nil {
		return nil, httpio.ServiceError("failed to create budget", err)
	}
	httpio.AddLogData(ctx, "budgetID", b.ID.String())

	return &BudgetOutput{Status: http.StatusCreated, Body: httpio.FromBudget(*b)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	budgets, err := h.Budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, httpio.ServiceError("failed to list budgets", err)
	}

	out := &ListBudgetsOutput{}
	out.Body.Budgets = make([]httpio.Budget, len(budgets))
	for i, b := range budgets {
		out.Body.Budgets[i] = httpio.FromBudget(b)
	}
	return out, nil
}

func (h *Handler) deleteBudget(ctx context.Context, input *BudgetPathInput) (*DeleteBudgetOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "budget id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.Budgets.DeleteBudget(ctx, userID, id); err != nil {
		return nil, httpio.ServiceError("failed to delete budget", err)
	}
	return &DeleteBudgetOutput{}, nil
}

func (h *Handler) get(ctx context.Context, input *BudgetPathInput) (*BudgetOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "budget id", input.ID)
	if err != nil {
		return nil, err
	}

	b, err := h.Budgets.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, httpio.ServiceError("failed to get budget", err)
	}
	return &BudgetOutput{Status: http.StatusOK, Body: httpio.FromBudget(*b)}, nil
}

func parseUpdateBudgetBody(body *UpdateBudgetBody) (service.BudgetUpdate, error) {
	update := service.BudgetUpdate{Name: omit.FromPtr(body.Name)}
	if body.PeriodStart != nil {
		start, err := httpio.ParseDate("periodStart", *body.PeriodStart)
		if err != nil {
			return service.BudgetUpdate{}, err
		}
		update.PeriodStart = omit.From(start)
	}
	if body.PeriodEnd != nil {
		end, err := httpio.ParseDate("periodEnd", *body.PeriodEnd)
		if err != nil {
			return service.BudgetUpdate{}, err
		}
		update.PeriodEnd = omit.From(end)
	}
	if body.TotalAmount != nil {
		total, err := httpio.ParseAmount("totalAmount", *body.TotalAmount)
		if err != nil {
			return service.BudgetUpdate{}, err
		}
		update.TotalAmount = omit.From(total)
	}
	return update, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateBudgetInput) (*BudgetOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "budget id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateBudgetBody(&input.Body)
	if err != nil {
		return nil, err
	}

	b, err := h.Budgets.UpdateBudget(ctx, userID, id, update)
	if err != nil {
		return nil, httpio.ServiceError("failed to update budget", err)
	}
	return &BudgetOutput{Status: http.StatusOK, Body: httpio.FromBudget(*b)}, nil
}
