package budget

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

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, name string, periodStart, periodEnd time.Time, total decimal.Decimal) (*service.Budget, error) {
	args := m.Called(ctx, userID, name, periodStart, periodEnd, total)
	b, _ := args.Get(0).(*service.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]service.Budget, error) {
	args := m.Called(ctx, userID)
	budgets, _ := args.Get(0).([]service.Budget)
	return budgets, args.Error(1)
}

func (m *mockBudgetService) GetBudget(ctx context.Context, userID, id uuid.UUID) (*service.Budget, error) {
	args := m.Called(ctx, userID, id)
	b, _ := args.Get(0).(*service.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, userID, id uuid.UUID, update service.BudgetUpdate) (*service.Budget, error) {
	args := m.Called(ctx, userID, id, update)
	b, _ := args.Get(0).(*service.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func newTestAPI(t *testing.T) (humatest.TestAPI, *mockBudgetService) {
	t.Helper()
	budgets := new(mockBudgetService)
	_, api := humatest.New(t)
	NewHandler(budgets).Register(api)
	t.Cleanup(func() { budgets.AssertExpectations(t) })
	return api, budgets
}

func TestHTTP_CreateBudget(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	created := &service.Budget{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        "January",
		PeriodStart: start,
		PeriodEnd:   end,
		TotalAmount: decimal.NewFromInt(800),
	}

	budgets.On("CreateBudget", mock.Anything, userID, "January", start, end, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(800))
	})).Return(created, nil)

	resp := api.Post("/v1/budget", httpio.UserHeader+": "+userID.String(), CreateBudgetBody{
		Name:        "January",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		TotalAmount: "800",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body httpio.Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2026-01-01", body.PeriodStart)
	assert.Equal(t, "800.00", body.TotalAmount)
}

func TestHTTP_CreateBudget_InvalidPeriod(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())

	budgets.On("CreateBudget", mock.Anything, userID, "Backwards", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ledger.ErrInvalidPeriod)

	resp := api.Post("/v1/budget", httpio.UserHeader+": "+userID.String(), CreateBudgetBody{
		Name:        "Backwards",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-01-01",
		TotalAmount: "10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateBudget_BadDate(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Post("/v1/budget", httpio.UserHeader+": "+uuid.Must(uuid.NewV4()).String(), CreateBudgetBody{
		Name:        "Bad",
		PeriodStart: "first of may",
		PeriodEnd:   "2026-05-31",
		TotalAmount: "10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListAndDeleteBudgets(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	budgets.On("ListBudgets", mock.Anything, userID).Return([]service.Budget{{ID: id, Name: "May"}}, nil)
	budgets.On("DeleteBudget", mock.Anything, userID, id).Return(nil)

	resp := api.Get("/v1/budgets", httpio.UserHeader+": "+userID.String())
	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Budgets []httpio.Budget `json:"budgets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Budgets, 1)
	assert.Equal(t, id.String(), body.Budgets[0].ID)

	resp = api.Delete("/v1/budget/"+id.String(), httpio.UserHeader+": "+userID.String())
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHTTP_GetBudget(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	found := &service.Budget{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        "March",
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(250),
	}

	budgets.On("GetBudget", mock.Anything, userID, found.ID).Return(found, nil)

	resp := api.Get("/v1/budget/"+found.ID.String(), httpio.UserHeader+": "+userID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body httpio.Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "March", body.Name)
	assert.Equal(t, "2026-03-31", body.PeriodEnd)
}

func TestHTTP_UpdateBudget(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	updated := &service.Budget{
		ID:          id,
		Name:        "Spring",
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   end,
		TotalAmount: decimal.RequireFromString("420.10"),
	}

	budgets.On("UpdateBudget", mock.Anything, userID, id, mock.MatchedBy(func(u service.BudgetUpdate) bool {
		total, totalSet := u.TotalAmount.Get()
		periodEnd, endSet := u.PeriodEnd.Get()
		return u.Name.IsUnset() && u.PeriodStart.IsUnset() &&
			totalSet && total.Equal(decimal.RequireFromString("420.10")) &&
			endSet && periodEnd.Equal(end)
	})).Return(updated, nil)

	resp := api.Patch("/v1/budget/"+id.String(), httpio.UserHeader+": "+userID.String(), UpdateBudgetBody{
		PeriodEnd:   ptr("2026-04-30"),
		TotalAmount: ptr("420.10"),
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body httpio.Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "420.10", body.TotalAmount)
}

func TestHTTP_UpdateBudget_Rejections(t *testing.T) {
	api, budgets := newTestAPI(t)
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	header := httpio.UserHeader + ": " + userID.String()

	resp := api.Patch("/v1/budget/"+id.String(), header, UpdateBudgetBody{PeriodStart: ptr("03/01/2026")})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	budgets.On("UpdateBudget", mock.Anything, userID, id, mock.Anything).Return(nil, ledger.ErrInvalidPeriod)
	resp = api.Patch("/v1/budget/"+id.String(), header, UpdateBudgetBody{PeriodEnd: ptr("2020-01-01")})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func ptr(s string) *string {
	return &s
}
