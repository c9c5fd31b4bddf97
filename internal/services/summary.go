package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"insurance-system/internal/dto"
	"insurance-system/internal/entities"
	"insurance-system/internal/repositories"
	apperrors "insurance-system/pkg/errors"
)

type SummaryService struct {
	storage     *pgxpool.Pool
	summaryRepo repositories.SummaryRepositoryInterface
	offerRepo   repositories.OfferRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	logger      *zap.Logger
}

func NewSummaryService(
	storage *pgxpool.Pool,
	summaryRepo repositories.SummaryRepositoryInterface,
	offerRepo repositories.OfferRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		storage:     storage,
		summaryRepo: summaryRepo,
		offerRepo:   offerRepo,
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// GenerateSummary пересобирает сводку из текущего набора предложений.
func (s *SummaryService) GenerateSummary(ctx context.Context, requestID uint64) (*dto.SummaryDTO, error) {
	if _, err := s.requestRepo.FindRequest(ctx, requestID); err != nil {
		return nil, err
	}

	offers, err := s.offerRepo.GetOffersByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	summary := entities.Summary{
		RequestID:   requestID,
		OffersCount: uint64(len(offers)),
	}
	for _, o := range offers {
		if !o.Premium.Valid {
			continue
		}
		if !summary.MinPremium.Valid || o.Premium.Float64 < summary.MinPremium.Float64 {
			summary.MinPremium = null.Float64From(o.Premium.Float64)
		}
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		return s.summaryRepo.Upsert(ctx, tx, summary)
	})
	if err != nil {
		s.logger.Error("ошибка сохранения сводки", zap.Error(err), zap.Uint64("requestId", requestID))
		return nil, err
	}

	return s.FindSummary(ctx, requestID)
}

func (s *SummaryService) FindSummary(ctx context.Context, requestID uint64) (*dto.SummaryDTO, error) {
	summary, err := s.summaryRepo.FindByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	res := dto.NewSummaryDTO(*summary)
	return &res, nil
}

// ChooseOffer фиксирует выбранное предложение в сводке.
func (s *SummaryService) ChooseOffer(ctx context.Context, requestID uint64, d dto.ChooseOfferDTO) (*dto.SummaryDTO, error) {
	offer, err := s.offerRepo.FindOffer(ctx, d.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.RequestID != requestID {
		return nil, apperrors.NewBadRequestError("Предложение относится к другой заявке")
	}

	offers, err := s.offerRepo.GetOffersByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	summary := entities.Summary{
		RequestID:     requestID,
		OffersCount:   uint64(len(offers)),
		ChosenOfferID: null.Uint64From(d.OfferID),
	}
	for _, o := range offers {
		if !o.Premium.Valid {
			continue
		}
		if !summary.MinPremium.Valid || o.Premium.Float64 < summary.MinPremium.Float64 {
			summary.MinPremium = null.Float64From(o.Premium.Float64)
		}
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		return s.summaryRepo.Upsert(ctx, tx, summary)
	})
	if err != nil {
		return nil, err
	}

	return s.FindSummary(ctx, requestID)
}

// MarkSent отмечает, что сводка ушла лизингополучателю.
func (s *SummaryService) MarkSent(ctx context.Context, requestID uint64) (*dto.SummaryDTO, error) {
	if err := s.summaryRepo.MarkSent(ctx, requestID); err != nil {
		return nil, err
	}
	return s.FindSummary(ctx, requestID)
}
