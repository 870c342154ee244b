package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
)

const maxPaddingDigits = 12

// ConfigureSequenceInput is the DTO for creating or reconfiguring a counter.
type ConfigureSequenceInput struct {
	TenantID      uuid.UUID         `json:"-"`
	Series        domain.SeriesType `json:"series" validate:"required"`
	Prefix        string            `json:"prefix" validate:"required,max=20"`
	Separator     string            `json:"separator" validate:"max=3"`
	PaddingDigits int               `json:"padding_digits" validate:"min=0,max=12"`
	NextNumber    int64             `json:"next_number" validate:"min=1"`
}

// SequenceService issues human-readable document and payment numbers.
type SequenceService interface {
	// Next issues a number in its own transaction.
	Next(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error)
	// Peek returns the number Next would issue without consuming it.
	Peek(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error)
	Configure(ctx context.Context, input *ConfigureSequenceInput) (*domain.SequenceCounter, error)
	// Issue issues a number inside the caller's transaction, so a rollback
	// also returns the number.
	Issue(ctx context.Context, repos port.Repositories, tenantID uuid.UUID, series domain.SeriesType) (string, error)
}

type sequenceService struct {
	tx  port.Transactor
	cfg config.NumberingConfig
	log logrus.FieldLogger
}

// NewSequenceService creates a new SequenceService implementation.
func NewSequenceService(tx port.Transactor, cfg config.NumberingConfig, log logrus.FieldLogger) SequenceService {
	return &sequenceService{tx: tx, cfg: cfg, log: log}
}

func (s *sequenceService) Next(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	if !series.Valid() {
		return "", domain.ErrInvalidSeries
	}
	var number string
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		number, err = s.Issue(ctx, repos, tenantID, series)
		return err
	})
	if err != nil {
		logger.LogError(s.log, "sequence", "Next", "issuing number", logrus.Fields{"tenant_id": tenantID, "series": series}, err)
		return "", err
	}
	return number, nil
}

func (s *sequenceService) Peek(ctx context.Context, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	if !series.Valid() {
		return "", domain.ErrInvalidSeries
	}
	var number string
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		counter, err := repos.Sequences.Get(ctx, tenantID, series)
		if err == nil {
			number = format(counter.Prefix, counter.Separator, counter.PaddingDigits, counter.NextNumber)
			return nil
		}
		if !errors.Is(err, domain.ErrSequenceNotFound) {
			return err
		}
		number, err = s.fallback(ctx, repos, tenantID, series)
		return err
	})
	return number, err
}

func (s *sequenceService) Configure(ctx context.Context, input *ConfigureSequenceInput) (*domain.SequenceCounter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Series.Valid() {
		return nil, domain.ErrInvalidSeries
	}

	counter := &domain.SequenceCounter{
		TenantID:      input.TenantID,
		Series:        input.Series,
		Prefix:        input.Prefix,
		Separator:     input.Separator,
		PaddingDigits: input.PaddingDigits,
		NextNumber:    input.NextNumber,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Sequences.Upsert(ctx, counter)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"tenant_id":   input.TenantID,
		"series":      input.Series,
		"next_number": input.NextNumber,
	}).Info("sequence counter configured")
	return counter, nil
}

// Issue takes the next number from the series counter. A series without a
// counter row is numbered from the count of existing records instead, and no
// counter row is created for it; that path is not safe against concurrent
// issuers and relies on the unique number index to reject a collision.
func (s *sequenceService) Issue(ctx context.Context, repos port.Repositories, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	counter, err := repos.Sequences.IssueNext(ctx, tenantID, series)
	if err == nil {
		return format(counter.Prefix, counter.Separator, counter.PaddingDigits, counter.NextNumber), nil
	}
	if !errors.Is(err, domain.ErrSequenceNotFound) {
		return "", err
	}
	return s.fallback(ctx, repos, tenantID, series)
}

func (s *sequenceService) fallback(ctx context.Context, repos port.Repositories, tenantID uuid.UUID, series domain.SeriesType) (string, error) {
	var (
		n   int64
		err error
	)
	switch series {
	case domain.SeriesPaymentReceived:
		n, err = repos.Payments.CountByDirection(ctx, tenantID, domain.PaymentReceived)
	case domain.SeriesPaymentMade:
		n, err = repos.Payments.CountByDirection(ctx, tenantID, domain.PaymentMade)
	default:
		n, err = repos.Documents.CountByType(ctx, tenantID, domain.DocumentType(series))
	}
	if err != nil {
		return "", err
	}
	return format(domain.DefaultSeriesPrefix[series], s.cfg.FallbackSeparator, s.cfg.FallbackPadding, n+1), nil
}

func format(prefix, separator string, padding int, n int64) string {
	if padding > maxPaddingDigits {
		padding = maxPaddingDigits
	}
	return fmt.Sprintf("%s%s%0*d", prefix, separator, padding, n)
}
