package goal

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockGoalService struct {
	mock.Mock
}

func (m *mockGoalService) CreateGoal(ctx context.Context, userID, accountID uuid.UUID, name string, target decimal.Decimal, deadline time.Time) (*service.Goal, error) {
	args := m.Called(ctx, userID, accountID, name, target, deadline)
	g, _ := args.Get(0).(*service.Goal)
	return g, args.Error(1)
}

func (m *mockGoalService) GetGoal(ctx context.Context, userID, id uuid.UUID) (*service.Goal, error) {
	args := m.Called(ctx, userID, id)
	g, _ := args.Get(0).(*service.Goal)
	return g, args.Error(1)
}

func (m *mockGoalService) ListGoals(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID, cursor *service.GoalCursor) ([]service.Goal, *service.GoalCursor, error) {
	args := m.Called(ctx, userID, accountID, cursor)
	goals, _ := args.Get(0).([]service.Goal)
	next, _ := args.Get(1).(*service.GoalCursor)
	return goals, next, args.Error(2)
}

func (m *mockGoalService) UpdateGoal(ctx context.Context, userID, id uuid.UUID, update service.GoalUpdate) (*service.Goal, error) {
	args := m.Called(ctx, userID, id, update)
	g, _ := args.Get(0).(*service.Goal)
	return g, args.Error(1)
}

func (m *mockGoalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type mockGoalFunder struct {
	mock.Mock
}

func (m *mockGoalFunder) GoalDeposit(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error) {
	args := m.Called(ctx, userID, goalID, amount, description)
	moved, _ := args.Get(0).(*service.Movement)
	return moved, args.Error(1)
}

func (m *mockGoalFunder) GoalWithdraw(ctx context.Context, userID, goalID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error) {
	args := m.Called(ctx, userID, goalID, amount, description)
	moved, _ := args.Get(0).(*service.Movement)
	return moved, args.Error(1)
}

func newTestAPI(t *testing.T) (humatest.TestAPI, *mockGoalService, *mockGoalFunder) {
	t.Helper()
	goals := new(mockGoalService)
	funder := new(mockGoalFunder)
	_, api := humatest.New(t)
	NewHandler(goals, funder).Register(api)
	t.Cleanup(func() {
		goals.AssertExpectations(t)
		funder.AssertExpectations(t)
	})
	return api, goals, funder
}

func userHeader(id uuid.UUID) string {
	return httpio.UserHeader + ": " + id.String()
}

func sampleGoal(accountID uuid.UUID) *service.Goal {
	return &service.Goal{
		ID:              uuid.Must(uuid.NewV4()),
		AccountID:       accountID,
		Name:            "Bike",
		TargetAmount:    decimal.RequireFromString("1000"),
		CurrentAmount:   decimal.RequireFromString("200"),
		ProgressPercent: decimal.RequireFromString("20"),
		Deadline:        time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
	}
}

func TestHTTP_CreateGoal(t *testing.T) {
	api, goals, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	created := sampleGoal(accountID)
	deadline := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

	goals.On("CreateGoal", mock.Anything, userID, accountID, "Bike",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(1000)) }),
		deadline).Return(created, nil)

	resp := api.Post("/v1/goal", userHeader(userID), CreateGoalBody{
		AccountID:    accountID.String(),
		Name:         "Bike",
		TargetAmount: "1000",
		Deadline:     "2026-12-24",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body httpio.Goal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "20.00", body.ProgressPercent)
	assert.Equal(t, "2026-12-24", body.Deadline)
}

func TestHTTP_CreateGoal_InvalidTarget(t *testing.T) {
	api, goals, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	goals.On("CreateGoal", mock.Anything, userID, accountID, "Bike", mock.Anything, time.Time{}).
		Return(nil, ledger.ErrInvalidAmount)

	resp := api.Post("/v1/goal", userHeader(userID), CreateGoalBody{
		AccountID:    accountID.String(),
		Name:         "Bike",
		TargetAmount: "-5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_UpdateGoal_OnlySetFields(t *testing.T) {
	api, goals, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	updated := sampleGoal(uuid.Must(uuid.NewV4()))

	goals.On("UpdateGoal", mock.Anything, userID, updated.ID, mock.MatchedBy(func(u service.GoalUpdate) bool {
		target, ok := u.TargetAmount.Get()
		return ok && target.Equal(decimal.NewFromInt(1500)) && u.Name.IsUnset() && u.Deadline.IsUnset()
	})).Return(updated, nil)

	target := "1500"
	resp := api.Patch("/v1/goal/"+updated.ID.String(), userHeader(userID), UpdateGoalBody{TargetAmount: &target})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHTTP_ListGoals_ByAccount(t *testing.T) {
	api, goals, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	goals.On("ListGoals", mock.Anything, userID, &accountID, (*service.GoalCursor)(nil)).
		Return([]service.Goal{*sampleGoal(accountID)}, nil, nil)

	resp := api.Get("/v1/goals?accountID="+accountID.String(), userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListGoalsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Goals, 1)
	assert.Nil(t, body.NextCursor)
}

func TestHTTP_GoalWithdraw_Insufficient(t *testing.T) {
	api, _, funder := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	goalID := uuid.Must(uuid.NewV4())

	funder.On("GoalWithdraw", mock.Anything, userID, goalID, mock.Anything, "").Return(nil, ledger.ErrInsufficientGoalFunds)

	resp := api.Post("/v1/goal/"+goalID.String()+"/withdraw", userHeader(userID), MovementBody{Amount: "5000"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_GoalDeposit(t *testing.T) {
	api, _, funder := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	g := sampleGoal(uuid.Must(uuid.NewV4()))

	funder.On("GoalDeposit", mock.Anything, userID, g.ID, mock.Anything, "bonus").Return(&service.Movement{
		Account:     service.Account{ID: g.AccountID, Balance: decimal.RequireFromString("300")},
		Goal:        g,
		Transaction: service.Transaction{ID: uuid.Must(uuid.NewV4()), Type: ledger.TransactionTypeExpense, GoalID: uuid.NullUUID{UUID: g.ID, Valid: true}},
	}, nil)

	resp := api.Post("/v1/goal/"+g.ID.String()+"/deposit", userHeader(userID), MovementBody{Amount: "200", Description: "bonus"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body httpio.Movement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Goal)
	assert.Equal(t, "200.00", body.Goal.CurrentAmount)
	assert.Equal(t, "300.00", body.Account.Balance)
	assert.Equal(t, g.ID.String(), body.Transaction.GoalID)
}

func TestHTTP_DeleteGoal_NotOwner(t *testing.T) {
	api, goals, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	goalID := uuid.Must(uuid.NewV4())

	goals.On("DeleteGoal", mock.Anything, userID, goalID).Return(ledger.ErrNotOwner)

	resp := api.Delete("/v1/goal/"+goalID.String(), userHeader(userID))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
