package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

type MovementInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Goal UUID"`
	Body   MovementBody
}

type MovementBody struct {
	Amount      string `json:"amount" required:"true" doc:"Positive decimal amount with at most two decimal places"`
	Description string `json:"description,omitempty" maxLength:"255" doc:"Free text stored on the transaction"`
}

type MovementOutput struct {
	Body httpio.Movement
}

func (h *Handler) registerMovements(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "goal-deposit",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/deposit",
		Summary:     "Move money into a goal",
		Description: "Moves the amount from the goal's account into the goal.",
		Tags:        []string{"Goals"},
	}, h.deposit)

	huma.Register(api, huma.Operation{
		OperationID: "goal-withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/withdraw",
		Summary:     "Move money out of a goal",
		Description: "Moves the amount from the goal back to its account. Fails when the goal holds less.",
		Tags:        []string{"Goals"},
	}, h.withdraw)
}

func (h *Handler) deposit(ctx context.Context, input *MovementInput) (*MovementOutput, error) {
	userID, goalID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	amount, err := httpio.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "goalDepositMs")
	moved, err := h.Ledger.GoalDeposit(ctx, userID, goalID, amount, input.Body.Description)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to deposit into goal", err)
	}

	httpio.AddLogData(ctx, "transactionID", moved.Transaction.ID.String())
	return &MovementOutput{Body: httpio.FromMovement(moved)}, nil
}

func (h *Handler) withdraw(ctx context.Context, input *MovementInput) (*MovementOutput, error) {
	userID, goalID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	amount, err := httpio.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "goalWithdrawMs")
	moved, err := h.Ledger.GoalWithdraw(ctx, userID, goalID, amount, input.Body.Description)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to withdraw from goal", err)
	}

	httpio.AddLogData(ctx, "transactionID", moved.Transaction.ID.String())
	return &MovementOutput{Body: httpio.FromMovement(moved)}, nil
}
