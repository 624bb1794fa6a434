package service

import (
	"context"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const auditBatchSize = 200

// AuditService checks every stored balance against the transaction log.
type AuditService struct {
	storage *storage.Storage
}

func NewAuditService(store *storage.Storage) *AuditService {
	return &AuditService{storage: store}
}

// AuditReport lists the accounts whose stored balance drifted from the log.
type AuditReport struct {
	Checked int
	Drifted []Reconciliation
}

// AuditAccounts reconciles all accounts of all users in batches. Each batch
// is read from one snapshot so a write committing mid-audit can not show up
// as drift. Accounts created while the audit runs may be skipped.
func (s *AuditService) AuditAccounts(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}
	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		more, err := s.auditBatch(ctx, report, offset)
		if err != nil {
			return report, err
		}
		if !more {
			return report, nil
		}
		offset += auditBatchSize
	}
}

func (s *AuditService) auditBatch(ctx context.Context, report *AuditReport, offset int) (more bool, err error) {
	snap, err := s.storage.Snapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() {
		if releaseErr := snap.Release(ctx); err == nil && releaseErr != nil {
			err = releaseErr
		}
	}()

	rows, err := snap.Accounts.List(ctx, &account.AccountFilter{
		AllUsers: true,
		Limit:    auditBatchSize,
		Offset:   offset,
	})
	if err != nil {
		return false, fmt.Errorf("list accounts: %w", err)
	}
	rows, more = pageOf(rows, auditBatchSize)

	for _, row := range rows {
		rec, err := reconcile(ctx, snap.Tables, row)
		if err != nil {
			return false, err
		}
		report.Checked++
		if !rec.Drift.IsZero() {
			report.Drifted = append(report.Drifted, *rec)
		}
	}
	return more, nil
}
