package account

import (
	"context"
	"encoding/json"
	"errors"
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

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, userID uuid.UUID, name string, startingBalance decimal.Decimal) (*service.Account, error) {
	args := m.Called(ctx, userID, name, startingBalance)
	acc, _ := args.Get(0).(*service.Account)
	return acc, args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, userID, id)
	acc, _ := args.Get(0).(*service.Account)
	return acc, args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, userID uuid.UUID, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error) {
	args := m.Called(ctx, userID, cursor)
	accounts, _ := args.Get(0).([]service.Account)
	next, _ := args.Get(1).(*service.AccountCursor)
	return accounts, next, args.Error(2)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockAccountService) Reconcile(ctx context.Context, userID, id uuid.UUID) (*service.Reconciliation, error) {
	args := m.Called(ctx, userID, id)
	rec, _ := args.Get(0).(*service.Reconciliation)
	return rec, args.Error(1)
}

type mockMoneyMover struct {
	mock.Mock
}

func (m *mockMoneyMover) Deposit(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error) {
	args := m.Called(ctx, userID, accountID, amount, description)
	moved, _ := args.Get(0).(*service.Movement)
	return moved, args.Error(1)
}

func (m *mockMoneyMover) Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal, description string) (*service.Movement, error) {
	args := m.Called(ctx, userID, accountID, amount, description)
	moved, _ := args.Get(0).(*service.Movement)
	return moved, args.Error(1)
}

func newTestAPI(t *testing.T) (humatest.TestAPI, *mockAccountService, *mockMoneyMover) {
	t.Helper()
	accounts := new(mockAccountService)
	mover := new(mockMoneyMover)
	_, api := humatest.New(t)
	NewHandler(accounts, mover).Register(api)
	t.Cleanup(func() {
		accounts.AssertExpectations(t)
		mover.AssertExpectations(t)
	})
	return api, accounts, mover
}

func userHeader(id uuid.UUID) string {
	return httpio.UserHeader + ": " + id.String()
}

func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestHTTP_CreateAccount(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	created := &service.Account{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Checking",
		Balance:   decimal.RequireFromString("100"),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	accounts.On("CreateAccount", mock.Anything, userID, "Checking", decEq("100.00")).Return(created, nil)

	resp := api.Post("/v1/account", userHeader(userID), CreateAccountBody{Name: "Checking", StartingBalance: "100.00"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body httpio.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "100.00", body.Balance)
	assert.Equal(t, "2026-01-02T03:04:05Z", body.CreatedAt)
}

func TestHTTP_CreateAccount_DefaultsToZero(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())

	accounts.On("CreateAccount", mock.Anything, userID, "Cash", decEq("0")).
		Return(&service.Account{ID: uuid.Must(uuid.NewV4()), Name: "Cash"}, nil)

	resp := api.Post("/v1/account", userHeader(userID), CreateAccountBody{Name: "Cash"})
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHTTP_CreateAccount_BadInput(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())

	resp := api.Post("/v1/account", userHeader(userID), CreateAccountBody{Name: "Cash", StartingBalance: "lots"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.Post("/v1/account", httpio.UserHeader+": not-a-uuid", CreateAccountBody{Name: "Cash"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	accounts.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_GetAccount_Errors(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	foreign := uuid.Must(uuid.NewV4())
	missing := uuid.Must(uuid.NewV4())

	accounts.On("GetAccount", mock.Anything, userID, foreign).Return(nil, ledger.ErrNotOwner)
	accounts.On("GetAccount", mock.Anything, userID, missing).Return(nil, ledger.ErrNotFound)

	resp := api.Get("/v1/account/"+foreign.String(), userHeader(userID))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = api.Get("/v1/account/"+missing.String(), userHeader(userID))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/v1/account/garbage", userHeader(userID))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListAccounts(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())

	accounts.On("ListAccounts", mock.Anything, userID, &service.AccountCursor{Position: 2, Limit: 2}).
		Return([]service.Account{{ID: uuid.Must(uuid.NewV4()), Name: "a"}, {ID: uuid.Must(uuid.NewV4()), Name: "b"}},
			&service.AccountCursor{Position: 4, Limit: 2}, nil)

	resp := api.Get("/v1/accounts?position=2&limit=2", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Accounts, 2)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 4, body.NextCursor.Position)
}

func TestHTTP_ListAccounts_ServiceError(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())

	accounts.On("ListAccounts", mock.Anything, userID, (*service.AccountCursor)(nil)).
		Return(nil, nil, errors.New("database unavailable"))

	resp := api.Get("/v1/accounts", userHeader(userID))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_DeleteAccount(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	accounts.On("DeleteAccount", mock.Anything, userID, accountID).Return(nil)

	resp := api.Delete("/v1/account/"+accountID.String(), userHeader(userID))
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHTTP_Deposit(t *testing.T) {
	api, _, mover := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())

	mover.On("Deposit", mock.Anything, userID, accountID, decEq("50"), "salary").Return(&service.Movement{
		Account: service.Account{ID: accountID, Balance: decimal.RequireFromString("150")},
		Transaction: service.Transaction{
			ID:        txID,
			AccountID: accountID,
			Type:      ledger.TransactionTypeIncome,
			Amount:    decimal.RequireFromString("50"),
		},
	}, nil)

	resp := api.Post("/v1/account/"+accountID.String()+"/deposit", userHeader(userID), MovementBody{Amount: "50", Description: "salary"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body httpio.Movement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "150.00", body.Account.Balance)
	assert.Equal(t, txID.String(), body.Transaction.ID)
	assert.Equal(t, "income", body.Transaction.Type)
	assert.Nil(t, body.Goal)
}

func TestHTTP_Withdraw_Rejections(t *testing.T) {
	api, _, mover := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mover.On("Withdraw", mock.Anything, userID, accountID, decEq("200"), "").Return(nil, ledger.ErrInsufficientFunds)
	mover.On("Withdraw", mock.Anything, userID, accountID, decEq("0.001"), "").Return(nil, ledger.ErrInvalidAmount)

	resp := api.Post("/v1/account/"+accountID.String()+"/withdraw", userHeader(userID), MovementBody{Amount: "200"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = api.Post("/v1/account/"+accountID.String()+"/withdraw", userHeader(userID), MovementBody{Amount: "0.001"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Reconcile(t *testing.T) {
	api, accounts, _ := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	accounts.On("Reconcile", mock.Anything, userID, accountID).Return(&service.Reconciliation{
		AccountID:      accountID,
		StoredBalance:  decimal.RequireFromString("10"),
		DerivedBalance: decimal.RequireFromString("10"),
		Drift:          decimal.Zero,
	}, nil)

	resp := api.Get("/v1/account/"+accountID.String()+"/reconcile", userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ReconcileResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0.00", body.Drift)
}
