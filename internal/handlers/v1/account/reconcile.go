package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

type ReconcileResponseBody struct {
	AccountID      string `json:"accountID" doc:"Account UUID"`
	StoredBalance  string `json:"storedBalance" doc:"Balance stored on the account"`
	DerivedBalance string `json:"derivedBalance" doc:"Balance rebuilt from the transaction log"`
	Drift          string `json:"drift" doc:"storedBalance minus derivedBalance, zero when consistent"`
}

type ReconcileOutput struct {
	Body ReconcileResponseBody
}

func (h *Handler) registerReconcile(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/reconcile",
		Summary:     "Check an account balance against its transactions",
		Tags:        []string{"Accounts"},
	}, h.reconcile)
}

func (h *Handler) reconcile(ctx context.Context, input *AccountPathInput) (*ReconcileOutput, error) {
	userID, accountID, err := parsePath(input)
	if err != nil {
		return nil, err
	}

	rec, err := h.Accounts.Reconcile(ctx, userID, accountID)
	if err != nil {
		return nil, httpio.ServiceError("failed to reconcile account", err)
	}

	return &ReconcileOutput{Body: ReconcileResponseBody{
		AccountID:      rec.AccountID.String(),
		StoredBalance:  rec.StoredBalance.StringFixed(2),
		DerivedBalance: rec.DerivedBalance.StringFixed(2),
		Drift:          rec.Drift.StringFixed(2),
	}}, nil
}
