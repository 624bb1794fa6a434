package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// LedgerService moves money in and out of accounts and goals. Every call is
// one all-or-nothing write.
type LedgerService struct {
	processor ActionProcessor
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(processor ActionProcessor) *LedgerService {
	return &LedgerService{processor: processor}
}

func (s *LedgerService) Deposit(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*Movement, error) {
	action := &actions.Deposit{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return &Movement{
		Account:     accountFromStorage(action.Account),
		Transaction: transactionFromStorage(action.Transaction),
	}, nil
}

func (s *LedgerService) Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*Movement, error) {
	action := &actions.Withdraw{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return &Movement{
		Account:     accountFromStorage(action.Account),
		Transaction: transactionFromStorage(action.Transaction),
	}, nil
}

func (s *LedgerService) GoalDeposit(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*Movement, error) {
	action := &actions.GoalDeposit{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		Description: description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	g := goalFromStorage(action.Goal)
	return &Movement{
		Account:     accountFromStorage(action.Account),
		Goal:        &g,
		Transaction: transactionFromStorage(action.Transaction),
	}, nil
}

func (s *LedgerService) GoalWithdraw(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*Movement, error) {
	action := &actions.GoalWithdraw{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		Description: description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	g := goalFromStorage(action.Goal)
	return &Movement{
		Account:     accountFromStorage(action.Account),
		Goal:        &g,
		Transaction: transactionFromStorage(action.Transaction),
	}, nil
}

// RecordTransaction stores a transaction and applies its effect.
func (s *LedgerService) RecordTransaction(ctx context.Context, userID uuid.UUID, create TransactionCreate) (*Transaction, error) {
	action := &actions.RecordTransaction{
		UserID:          userID,
		AccountID:       create.AccountID,
		Type:            create.Type,
		Amount:          create.Amount,
		GoalID:          create.GoalID,
		CategoryID:      create.CategoryID,
		BudgetID:        create.BudgetID,
		Description:     create.Description,
		TransactionDate: create.TransactionDate,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	tx := transactionFromStorage(action.Transaction)
	return &tx, nil
}
