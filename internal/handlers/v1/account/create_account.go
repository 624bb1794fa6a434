package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body   CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" maxLength:"100" doc:"Account name"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   httpio.Account
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create an account",
		Description:   "Creates an account. A non-zero starting balance is recorded as an opening transaction.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

func (h *Handler) create(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	startingBalance := decimal.Zero
	if input.Body.StartingBalance != "" {
		startingBalance, err = httpio.ParseAmount("startingBalance", input.Body.StartingBalance)
		if err != nil {
			return nil, err
		}
	}

	stopTimer := httpio.Timer(ctx, "createAccountMs")
	acc, err := h.Accounts.CreateAccount(ctx, userID, input.Body.Name, startingBalance)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to create account", err)
	}

	httpio.AddLogData(ctx, "accountID", acc.ID.String())

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   httpio.FromAccount(*acc),
	}, nil
}
