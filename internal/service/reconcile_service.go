package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/settlement"
)

// Drift is a document whose stored settlement disagrees with its allocations.
type Drift struct {
	TenantID       uuid.UUID             `json:"tenant_id"`
	DocumentID     uuid.UUID             `json:"document_id"`
	DocumentNumber string                `json:"document_number"`
	StoredPaid     decimal.Decimal       `json:"stored_paid"`
	AllocatedPaid  decimal.Decimal       `json:"allocated_paid"`
	StoredStatus   domain.DocumentStatus `json:"stored_status"`
	DerivedStatus  domain.DocumentStatus `json:"derived_status"`
	Fixed          bool                  `json:"fixed"`
}

// ReconcileReport summarises a reconciliation run.
type ReconcileReport struct {
	Scanned int     `json:"scanned"`
	Drifts  []Drift `json:"drifts"`
}

// ReconcileService recomputes amount_paid, balance_due and status from the
// allocation table for every document.
type ReconcileService interface {
	Run(ctx context.Context, fix bool, batchSize int) (*ReconcileReport, error)
}

type reconcileService struct {
	tx  port.Transactor
	log logrus.FieldLogger
}

// NewReconcileService creates a new ReconcileService implementation.
func NewReconcileService(tx port.Transactor, log logrus.FieldLogger) ReconcileService {
	return &reconcileService{tx: tx, log: log}
}

func (s *reconcileService) Run(ctx context.Context, fix bool, batchSize int) (*ReconcileReport, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	report := &ReconcileReport{}
	after := uuid.Nil

	for {
		var batch []domain.Document
		err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
			var err error
			batch, err = repos.Documents.ListAfter(ctx, after, batchSize)
			return err
		})
		if err != nil {
			return report, err
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			drift, err := s.check(ctx, batch[i].TenantID, batch[i].ID, fix)
			if err != nil {
				logger.LogError(s.log, "reconcile", "Run", "checking document",
					logrus.Fields{"tenant_id": batch[i].TenantID, "document_id": batch[i].ID}, err)
				return report, err
			}
			report.Scanned++
			if drift != nil {
				report.Drifts = append(report.Drifts, *drift)
			}
		}

		after = batch[len(batch)-1].ID
		s.log.WithFields(logrus.Fields{"scanned": report.Scanned, "drifts": len(report.Drifts)}).Debug("reconcile progress")
	}

	s.log.WithFields(logrus.Fields{"scanned": report.Scanned, "drifts": len(report.Drifts), "fix": fix}).Info("reconcile complete")
	return report, nil
}

// check re-derives one document under its row lock so a concurrent payment
// cannot interleave with the repair.
func (s *reconcileService) check(ctx context.Context, tenantID, docID uuid.UUID, fix bool) (*Drift, error) {
	var drift *Drift
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		doc, err := repos.Documents.GetForUpdate(ctx, tenantID, docID)
		if err != nil {
			return err
		}
		paid, err := repos.Allocations.SumByDocument(ctx, tenantID, docID)
		if err != nil {
			return err
		}

		derived := *doc
		settlement.Settle(&derived, paid)
		if derived.AmountPaid.Equal(doc.AmountPaid) &&
			derived.BalanceDue.Equal(doc.BalanceDue) &&
			derived.Status == doc.Status {
			return nil
		}

		drift = &Drift{
			TenantID:       tenantID,
			DocumentID:     docID,
			DocumentNumber: doc.DocumentNumber,
			StoredPaid:     doc.AmountPaid,
			AllocatedPaid:  derived.AmountPaid,
			StoredStatus:   doc.Status,
			DerivedStatus:  derived.Status,
		}
		if !fix {
			return nil
		}
		if err := repos.Documents.UpdateSettlement(ctx, &derived); err != nil {
			return err
		}
		drift.Fixed = true
		return nil
	})
	return drift, err
}
