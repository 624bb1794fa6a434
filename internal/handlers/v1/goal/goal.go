package goal

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

type goalService interface {
	CreateGoal(ctx context.Context, userID, accountID uuid.UUID, name string, target decimal.Decimal, deadline time.Time) (*service.Goal, error)
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*service.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID, cursor *service.GoalCursor) ([]service.Goal, *service.GoalCursor, error)
	UpdateGoal(ctx context.Context, userID, id uuid.UUID, update service.GoalUpdate) (*service.Goal, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

type goalFunder interface {
	GoalDeposit(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error)
	GoalWithdraw(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error)
}

// Handler serves the /v1/goal endpoints.
type Handler struct {
	Goals  goalService
	Ledger goalFunder
}

func NewHandler(goals goalService, ledger goalFunder) *Handler {
	return &Handler{Goals: goals, Ledger: ledger}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerRead(api)
	h.registerUpdate(api)
	h.registerMovements(api)
}

// GoalPathInput addresses one goal of the requesting user.
type GoalPathInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Goal UUID"`
}

func parsePath(userHeader, id string) (uuid.UUID, uuid.UUID, error) {
	return httpio.ParsePath(userHeader, "goal id", id)
}
