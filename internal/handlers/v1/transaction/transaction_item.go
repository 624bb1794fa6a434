package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// TransactionPathInput addresses one transaction of the requesting user.
type TransactionPathInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Transaction UUID"`
}

// UpdateTransactionBody lists the editable fields. Absent fields are left
// unchanged; an empty string clears a goal, category or budget link.
type UpdateTransactionBody struct {
	Type            *string `json:"type,omitempty" enum:"income,expense,transfer,goal_deposit,goal_withdrawal" doc:"New type"`
	Amount          *string `json:"amount,omitempty" doc:"New positive decimal amount"`
	GoalID          *string `json:"goalID,omitempty" doc:"New goal UUID, empty to unlink"`
	CategoryID      *string `json:"categoryID,omitempty" doc:"New category UUID, empty to unlink"`
	BudgetID        *string `json:"budgetID,omitempty" doc:"New budget UUID, empty to unlink"`
	Description     *string `json:"description,omitempty" maxLength:"255" doc:"New description"`
	TransactionDate *string `json:"transactionDate,omitempty" doc:"New date (2006-01-02)"`
}

type UpdateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Transaction UUID"`
	Body   UpdateTransactionBody
}

type DeleteTransactionOutput struct{}

func (h *Handler) registerItem(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get a transaction",
		Tags:        []string{"Transactions"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update a transaction",
		Description: "Edits a transaction. Its old effect on the account and goal is reversed and the new one applied.",
		Tags:        []string{"Transactions"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete a transaction",
		Description:   "Deletes a transaction and reverses its effect on the account and goal.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteTransaction)
}

func parsePath(userHeader, id string) (uuid.UUID, uuid.UUID, error) {
	userID, err := httpio.ParseUserID(userHeader)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	txID, err := httpio.ParseUUID("transaction id", id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, txID, nil
}

func parseLink(field string, s *string) (omit.Val[uuid.NullUUID], error) {
	if s == nil {
		return omit.Val[uuid.NullUUID]{}, nil
	}
	id, err := httpio.ParseNullUUID(field, *s)
	if err != nil {
		return omit.Val[uuid.NullUUID]{}, err
	}
	return omit.From(id), nil
}

func parseUpdateTransactionBody(body *UpdateTransactionBody) (update service.TransactionUpdate, err error) {
	if body.Type != nil {
		txType, err := ledger.ParseTransactionType(*body.Type)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid type", err)
		}
		update.Type = omit.From(txType)
	}
	if body.Amount != nil {
		amount, err := httpio.ParseAmount("amount", *body.Amount)
		if err != nil {
			return update, err
		}
		update.Amount = omit.From(amount)
	}
	if update.GoalID, err = parseLink("goalID", body.GoalID); err != nil {
		return update, err
	}
	if update.CategoryID, err = parseLink("categoryID", body.CategoryID); err != nil {
		return update, err
	}
	if update.BudgetID, err = parseLink("budgetID", body.BudgetID); err != nil {
		return update, err
	}
	if body.TransactionDate != nil {
		date, err := httpio.ParseDate("transactionDate", *body.TransactionDate)
		if err != nil {
			return update, err
		}
		if date.IsZero() {
			return update, huma.NewError(http.StatusBadRequest, "transactionDate must not be empty")
		}
		update.TransactionDate = omit.From(date)
	}
	update.Description = omit.FromPtr(body.Description)
	return update, nil
}

func (h *Handler) get(ctx context.Context, input *TransactionPathInput) (*TransactionOutput, error) {
	userID, txID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	tx, err := h.Transactions.GetTransaction(ctx, userID, txID)
	if err != nil {
		return nil, httpio.ServiceError("failed to get transaction", err)
	}
	return &TransactionOutput{Status: http.StatusOK, Body: httpio.FromTransaction(*tx)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	userID, txID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "updateTransactionMs")
	tx, err := h.Transactions.UpdateTransaction(ctx, userID, txID, update)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to update transaction", err)
	}
	return &TransactionOutput{Status: http.StatusOK, Body: httpio.FromTransaction(*tx)}, nil
}

func (h *Handler) deleteTransaction(ctx context.Context, input *TransactionPathInput) (*DeleteTransactionOutput, error) {
	userID, txID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "deleteTransactionMs")
	err = h.Transactions.DeleteTransaction(ctx, userID, txID)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to delete transaction", err)
	}
	return &DeleteTransactionOutput{}, nil
}
