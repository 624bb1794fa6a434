package transaction

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// transactionRecorder records new transactions.
type transactionRecorder interface {
	RecordTransaction(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error)
}

// transactionService reads and edits the transaction log.
type transactionService interface {
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*service.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter service.TransactionFilter, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
	UpdateTransaction(ctx context.Context, userID, id uuid.UUID, update service.TransactionUpdate) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the /v1/transaction endpoints.
type Handler struct {
	Recorder     transactionRecorder
	Transactions transactionService
}

func NewHandler(recorder transactionRecorder, transactions transactionService) *Handler {
	return &Handler{Recorder: recorder, Transactions: transactions}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerItem(api)
}
