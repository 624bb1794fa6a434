package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) AuditAccounts(ctx context.Context) (*service.AuditReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*service.AuditReport)
	return report, args.Error(1)
}

func bufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logging.SetupLogging("info")
	logger.Out = buf
	return logger
}

func TestRunOnce_LogsDrift(t *testing.T) {
	var buf bytes.Buffer
	auditor := new(mockAuditor)
	accountID := uuid.Must(uuid.NewV4())
	auditor.On("AuditAccounts", mock.Anything).Return(&service.AuditReport{
		Checked: 2,
		Drifted: []service.Reconciliation{{
			AccountID:      accountID,
			StoredBalance:  decimal.NewFromInt(10),
			DerivedBalance: decimal.NewFromInt(7),
			Drift:          decimal.NewFromInt(3),
		}},
	}, nil)

	NewScheduler(auditor, bufferedLogger(&buf)).RunOnce()

	out := buf.String()
	assert.Contains(t, out, "Audit.RunOnce.drift")
	assert.Contains(t, out, accountID.String())
	assert.Contains(t, out, `"checked":2`)
	auditor.AssertExpectations(t)
}

func TestRunOnce_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	auditor := new(mockAuditor)
	auditor.On("AuditAccounts", mock.Anything).Return(nil, errors.New("db down"))

	NewScheduler(auditor, bufferedLogger(&buf)).RunOnce()

	assert.Contains(t, buf.String(), "Audit.RunOnce.failed")
	assert.NotContains(t, buf.String(), "Audit.RunOnce.complete")
}

func TestStart_InvalidSchedule(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(new(mockAuditor), bufferedLogger(&buf))

	assert.Error(t, s.Start("every now and then"))
}

func TestStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(new(mockAuditor), bufferedLogger(&buf))

	require.NoError(t, s.Start("@daily"))
	s.Stop()
}
