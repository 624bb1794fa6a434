package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

// AccountPathInput addresses one account of the requesting user.
type AccountPathInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Account UUID"`
}

type GetAccountOutput struct {
	Body httpio.Account
}

type DeleteAccountOutput struct{}

func (h *Handler) registerGet(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.get)
}

func (h *Handler) registerDelete(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/account/{id}",
		Summary:       "Delete an account",
		Description:   "Deletes the account together with its goals and transactions.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteAccount)
}

func (h *Handler) get(ctx context.Context, input *AccountPathInput) (*GetAccountOutput, error) {
	userID, accountID, err := parsePath(input)
	if err != nil {
		return nil, err
	}

	acc, err := h.Accounts.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, httpio.ServiceError("failed to get account", err)
	}
	return &GetAccountOutput{Body: httpio.FromAccount(*acc)}, nil
}

func (h *Handler) deleteAccount(ctx context.Context, input *AccountPathInput) (*DeleteAccountOutput, error) {
	userID, accountID, err := parsePath(input)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "deleteAccountMs")
	err = h.Accounts.DeleteAccount(ctx, userID, accountID)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to delete account", err)
	}
	return &DeleteAccountOutput{}, nil
}
