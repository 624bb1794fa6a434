package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

type summaryService interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*service.Summary, error)
}

// Handler serves the dashboard summary.
type Handler struct {
	Summary summaryService
}

func NewHandler(summary summaryService) *Handler {
	return &Handler{Summary: summary}
}

type SummaryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

type SummaryBody struct {
	TotalIncome  string               `json:"totalIncome" doc:"Sum of income transactions"`
	TotalExpense string               `json:"totalExpense" doc:"Sum of expense transactions"`
	Recent       []httpio.Transaction `json:"recent" doc:"Latest transactions, newest first"`
}

type SummaryOutput struct {
	Body SummaryBody
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Dashboard summary",
		Description: "Totals the user's income and expense and lists the latest transactions.",
		Tags:        []string{"Summary"},
	}, h.get)
}

func (h *Handler) get(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "summaryMs")
	summary, err := h.Summary.GetSummary(ctx, userID)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to build summary", err)
	}

	return &SummaryOutput{Body: SummaryBody{
		TotalIncome:  summary.TotalIncome.StringFixed(2),
		TotalExpense: summary.TotalExpense.StringFixed(2),
		Recent:       httpio.FromTransactions(summary.Recent),
	}}, nil
}
