package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	UserID   string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Position int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

// ListAccountsCursor points at the next page.
type ListAccountsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts   []httpio.Account    `json:"accounts" doc:"Page of accounts"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns a paginated list of the user's accounts.",
		Tags:        []string{"Accounts"},
	}, h.list)
}

func (h *Handler) list(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var cursor *service.AccountCursor
	if input.Position > 0 || input.Limit > 0 {
		cursor = &service.AccountCursor{Position: input.Position, Limit: input.Limit}
		if cursor.Limit == 0 {
			cursor.Limit = 20
		}
	}

	stopTimer := httpio.Timer(ctx, "listAccountsMs")
	accounts, next, err := h.Accounts.ListAccounts(ctx, userID, cursor)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to list accounts", err)
	}

	httpio.AddLogData(ctx, "accountCount", len(accounts))

	resp := ListAccountsResponseBody{
		Accounts: make([]httpio.Account, len(accounts)),
	}
	for i, acc := range accounts {
		resp.Accounts[i] = httpio.FromAccount(acc)
	}
	if next != nil {
		resp.NextCursor = &ListAccountsCursor{Position: next.Position, Limit: next.Limit}
	}

	return &ListAccountsOutput{Body: resp}, nil
}
