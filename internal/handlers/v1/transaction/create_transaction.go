package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionBody is the request body for recording a transaction.
type CreateTransactionBody struct {
	AccountID       string `json:"accountID" required:"true" doc:"Account UUID"`
	Type            string `json:"type" required:"true" enum:"income,expense,transfer,goal_deposit,goal_withdrawal" doc:"Transaction type"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount with at most two decimal places"`
	GoalID          string `json:"goalID,omitempty" doc:"Goal UUID, required for goal_deposit and goal_withdrawal"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID"`
	BudgetID        string `json:"budgetID,omitempty" doc:"Budget UUID"`
	Description     string `json:"description,omitempty" maxLength:"255" doc:"Free text"`
	TransactionDate string `json:"transactionDate,omitempty" doc:"Date (2006-01-02) or RFC3339 time, defaults to today"`
}

// CreateTransactionInput is the Huma input for recording a transaction.
type CreateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body   CreateTransactionBody
}

// TransactionOutput is the Huma output carrying one transaction.
type TransactionOutput struct {
	Status int
	Body   httpio.Transaction
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Record a transaction",
		Description:   "Records a transaction and applies it to the account and, when linked, the goal.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

func parseCreateTransactionBody(body *CreateTransactionBody) (service.TransactionCreate, error) {
	accountID, err := httpio.ParseUUID("accountID", body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	txType, err := ledger.ParseTransactionType(body.Type)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}
	amount, err := httpio.ParseAmount("amount", body.Amount)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	goalID, err := httpio.ParseNullUUID("goalID", body.GoalID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	categoryID, err := httpio.ParseNullUUID("categoryID", body.CategoryID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	budgetID, err := httpio.ParseNullUUID("budgetID", body.BudgetID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	transactionDate, err := httpio.ParseDate("transactionDate", body.TransactionDate)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	return service.TransactionCreate{
		AccountID:       accountID,
		GoalID:          goalID,
		CategoryID:      categoryID,
		BudgetID:        budgetID,
		Type:            txType,
		Amount:          amount,
		Description:     body.Description,
		TransactionDate: transactionDate,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "recordTransactionMs")
	tx, err := h.Recorder.RecordTransaction(ctx, userID, create)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to create transaction", err)
	}

	httpio.AddLogData(ctx, "transactionID", tx.ID.String())
	return &TransactionOutput{Status: http.StatusCreated, Body: httpio.FromTransaction(*tx)}, nil
}
