package account

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/service"
)

// accountService is what the account endpoints need from the service layer.
type accountService interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, name string, startingBalance decimal.Decimal) (*service.Account, error)
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*service.Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error)
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
	Reconcile(ctx context.Context, userID, id uuid.UUID) (*service.Reconciliation, error)
}

// moneyMover moves money in and out of an account.
type moneyMover interface {
	Deposit(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error)
	Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error)
}

// Handler serves the /v1/account endpoints.
type Handler struct {
	Accounts accountService
	Ledger   moneyMover
}

func NewHandler(accounts accountService, ledger moneyMover) *Handler {
	return &Handler{Accounts: accounts, Ledger: ledger}
}

// Register registers every account endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerGet(api)
	h.registerList(api)
	h.registerDelete(api)
	h.registerMovements(api)
	h.registerReconcile(api)
}
