package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

// MovementInput is the Huma input for deposits and withdrawals.
type MovementInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Account UUID"`
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
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/deposit",
		Summary:     "Deposit into an account",
		Description: "Adds the amount to the account balance and records an income transaction.",
		Tags:        []string{"Accounts"},
	}, h.deposit)

	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/withdraw",
		Summary:     "Withdraw from an account",
		Description: "Subtracts the amount from the account balance and records an expense transaction. Fails when the balance is too low.",
		Tags:        []string{"Accounts"},
	}, h.withdraw)
}

func (h *Handler) deposit(ctx context.Context, input *MovementInput) (*MovementOutput, error) {
	userID, accountID, err := parsePath(&AccountPathInput{UserID: input.UserID, ID: input.ID})
	if err != nil {
		return nil, err
	}
	amount, err := httpio.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "depositMs")
	moved, err := h.Ledger.Deposit(ctx, userID, accountID, amount, input.Body.Description)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to deposit", err)
	}

	httpio.AddLogData(ctx, "transactionID", moved.Transaction.ID.String())
	return &MovementOutput{Body: httpio.FromMovement(moved)}, nil
}

func (h *Handler) withdraw(ctx context.Context, input *MovementInput) (*MovementOutput, error) {
	userID, accountID, err := parsePath(&AccountPathInput{UserID: input.UserID, ID: input.ID})
	if err != nil {
		return nil, err
	}
	amount, err := httpio.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "withdrawMs")
	moved, err := h.Ledger.Withdraw(ctx, userID, accountID, amount, input.Body.Description)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to withdraw", err)
	}

	httpio.AddLogData(ctx, "transactionID", moved.Transaction.ID.String())
	return &MovementOutput{Body: httpio.FromMovement(moved)}, nil
}

func parsePath(input *AccountPathInput) (uuid.UUID, uuid.UUID, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	accountID, err := httpio.ParseUUID("account id", input.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, accountID, nil
}
