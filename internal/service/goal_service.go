package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

// GoalService handles savings goals.
type GoalService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewGoalService creates a new GoalService.
func NewGoalService(store *storage.Storage, processor ActionProcessor) *GoalService {
	return &GoalService{storage: store, processor: processor}
}

func (s *GoalService) CreateGoal(ctx context.Context, userID, accountID uuid.UUID, name string, target decimal.Decimal, deadline time.Time) (*Goal, error) {
	action := &actions.CreateGoal{
		UserID:       userID,
		AccountID:    accountID,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	g := goalFromStorage(action.Goal)
	return &g, nil
}

func (s *GoalService) GetGoal(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	row, err := s.storage.Reader.Goals.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	g := goalFromStorage(row)
	return &g, nil
}

// ListGoals returns a page of the user's goals, optionally only those of one account.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID, cursor *GoalCursor) ([]Goal, *GoalCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Reader.Goals.List(ctx, &goal.GoalFilter{
		UserID:    userID,
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *GoalCursor
	rows, more := pageOf(rows, limit)
	if more {
		nextCursor = &GoalCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Goal, len(rows))
	for i, row := range rows {
		converted[i] = goalFromStorage(row)
	}
	return converted, nextCursor, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, id uuid.UUID, update GoalUpdate) (*Goal, error) {
	action := &actions.UpdateGoal{
		UserID:       userID,
		GoalID:       id,
		Name:         update.Name,
		TargetAmount: update.TargetAmount,
		Deadline:     update.Deadline,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	g := goalFromStorage(action.Goal)
	return &g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteGoal{UserID: userID, GoalID: id})
}
