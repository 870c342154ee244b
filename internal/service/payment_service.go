package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/currency"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/settlement"
)

// CreatePaymentInput is the DTO for recording a payment and allocating it.
type CreatePaymentInput struct {
	TenantID       uuid.UUID               `json:"-"`
	CreatedBy      uuid.UUID               `json:"-"`
	IdempotencyKey string                  `json:"-" validate:"max=128"`
	Direction      domain.PaymentDirection `json:"direction" validate:"required,oneof=received made"`
	PartyID        uuid.UUID               `json:"party_id"`
	PaymentDate    time.Time               `json:"payment_date"`
	Mode           string                  `json:"mode" validate:"max=50"`
	Reference      string                  `json:"reference" validate:"max=100"`
	currency.Input
	Allocations []settlement.Entry `json:"allocations" validate:"dive"`
}

// PaymentService defines the payment contract.
type PaymentService interface {
	Create(ctx context.Context, input *CreatePaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error)
	// Delete reverses every allocation of the payment and removes it.
	Delete(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*domain.Document, error)
}

type paymentService struct {
	tx        port.Transactor
	sequences SequenceService
	engine    *settlement.Engine
	guard     port.IdempotencyGuard
	log       logrus.FieldLogger
}

// NewPaymentService creates a new PaymentService implementation. guard may be
// nil, in which case idempotency keys are ignored.
func NewPaymentService(
	tx port.Transactor,
	sequences SequenceService,
	engine *settlement.Engine,
	guard port.IdempotencyGuard,
	log logrus.FieldLogger,
) PaymentService {
	return &paymentService{tx: tx, sequences: sequences, engine: engine, guard: guard, log: log}
}

func (s *paymentService) Create(ctx context.Context, input *CreatePaymentInput) (*domain.Payment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.PartyID == uuid.Nil {
		return nil, domain.ErrMissingParty
	}
	if input.PaymentDate.IsZero() {
		return nil, domain.NewValidationError("payment_date", "is required")
	}

	if s.guard == nil || input.IdempotencyKey == "" {
		return s.create(ctx, input)
	}

	var created *domain.Payment
	id, replayed, err := s.guard.Do(ctx, input.TenantID, input.IdempotencyKey, func(ctx context.Context) (uuid.UUID, error) {
		p, err := s.create(ctx, input)
		if err != nil {
			return uuid.Nil, err
		}
		created = p
		return p.ID, nil
	})
	if err != nil {
		return nil, err
	}
	if !replayed {
		return created, nil
	}
	s.log.WithFields(logrus.Fields{"tenant_id": input.TenantID, "payment_id": id}).Info("replaying idempotent payment")
	return s.Get(ctx, input.TenantID, id)
}

func (s *paymentService) create(ctx context.Context, input *CreatePaymentInput) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		company, err := repos.Companies.GetByTenant(ctx, input.TenantID)
		if err != nil {
			return err
		}
		if _, err := repos.Parties.GetByID(ctx, input.TenantID, input.PartyID); err != nil {
			return err
		}
		money, err := currency.Normalize(company.BaseCurrency, input.Input)
		if err != nil {
			return err
		}
		number, err := s.sequences.Issue(ctx, repos, input.TenantID, input.Direction.Series())
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			ID:             uuid.New(),
			TenantID:       input.TenantID,
			Direction:      input.Direction,
			PaymentNumber:  number,
			PartyID:        input.PartyID,
			PaymentDate:    input.PaymentDate,
			Mode:           input.Mode,
			Reference:      input.Reference,
			Amount:         money.Amount,
			OriginalAmount: money.OriginalAmount,
			CurrencyCode:   money.CurrencyCode,
			ExchangeRate:   money.ExchangeRate,
			ExcessAmount:   money.Amount,
			CreatedBy:      input.CreatedBy,
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		_, err = s.engine.Apply(ctx, repos, payment, input.Allocations)
		return err
	})
	if err != nil {
		logger.LogError(s.log, "payment", "Create", "recording payment",
			logrus.Fields{"tenant_id": input.TenantID, "party_id": input.PartyID, "direction": input.Direction}, err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id":      payment.TenantID,
		"payment_id":     payment.ID,
		"payment_number": payment.PaymentNumber,
		"amount":         payment.Amount.StringFixed(2),
		"excess_amount":  payment.ExcessAmount.StringFixed(2),
	}).Info("payment recorded")
	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		payment, err = repos.Payments.GetByID(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		payment.Allocations, err = repos.Allocations.ListByPayment(ctx, tenantID, paymentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*domain.Document, error) {
	var touched []*domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		payment, err := repos.Payments.GetForUpdate(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		touched, err = s.engine.Reverse(ctx, repos, payment)
		return err
	})
	if err != nil {
		logger.LogError(s.log, "payment", "Delete", "reversing payment",
			logrus.Fields{"tenant_id": tenantID, "payment_id": paymentID}, err)
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"payment_id": paymentID,
		"documents":  len(touched),
	}).Info("payment reversed")
	return touched, nil
}
