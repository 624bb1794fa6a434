package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

// CategoryService manages the categories transactions can be filed under.
type CategoryService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

func NewCategoryService(store *storage.Storage, processor ActionProcessor) *CategoryService {
	return &CategoryService{storage: store, processor: processor}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType ledger.TransactionType) (*Category, error) {
	action := &actions.CreateCategory{UserID: userID, Name: name, Type: categoryType}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	c := categoryFromStorage(action.Category)
	return &c, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	rows, err := s.storage.Reader.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = categoryFromStorage(row)
	}
	return converted, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	row, err := s.storage.Reader.Categories.FindByID(ctx, id, rowlock.None)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	c := categoryFromStorage(row)
	return &c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, update CategoryUpdate) (*Category, error) {
	action := &actions.UpdateCategory{
		UserID:     userID,
		CategoryID: id,
		Name:       update.Name,
		Type:       update.Type,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	c := categoryFromStorage(action.Category)
	return &c, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteCategory{UserID: userID, CategoryID: id})
}

// BudgetService manages spending budgets.
type BudgetService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

func NewBudgetService(store *storage.Storage, processor ActionProcessor) *BudgetService {
	return &BudgetService{storage: store, processor: processor}
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, name string, periodStart, periodEnd time.Time, total decimal.Decimal) (*Budget, error) {
	action := &actions.CreateBudget{
		UserID:      userID,
		Name:        name,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TotalAmount: total,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	b := budgetFromStorage(action.Budget)
	return &b, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	rows, err := s.storage.Reader.Budgets.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	converted := make([]Budget, len(rows))
	for i, row := range rows {
		converted[i] = budgetFromStorage(row)
	}
	return converted, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	row, err := s.storage.Reader.Budgets.FindByID(ctx, id, rowlock.None)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	b := budgetFromStorage(row)
	return &b, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID, id uuid.UUID, update BudgetUpdate) (*Budget, error) {
	action := &actions.UpdateBudget{
		UserID:      userID,
		BudgetID:    id,
		Name:        update.Name,
		PeriodStart: update.PeriodStart,
		PeriodEnd:   update.PeriodEnd,
		TotalAmount: update.TotalAmount,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	b := budgetFromStorage(action.Budget)
	return &b, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteBudget{UserID: userID, BudgetID: id})
}
