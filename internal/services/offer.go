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
)

type OfferService struct {
	storage     *pgxpool.Pool
	offerRepo   repositories.OfferRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	logger      *zap.Logger
}

func NewOfferService(
	storage *pgxpool.Pool,
	offerRepo repositories.OfferRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		storage:     storage,
		offerRepo:   offerRepo,
		requestRepo: requestRepo,
		logger:      logger,
	}
}

func (s *OfferService) CreateOffer(ctx context.Context, requestID uint64, d dto.CreateOfferDTO) (*dto.OfferDTO, error) {
	// Предложение нельзя привязать к несуществующей заявке.
	if _, err := s.requestRepo.FindRequest(ctx, requestID); err != nil {
		return nil, err
	}

	offer := entities.Offer{
		RequestID:   requestID,
		CompanyName: d.CompanyName,
	}
	if d.Premium != nil {
		offer.Premium = null.Float64From(*d.Premium)
	}
	if d.InsuranceSum != nil {
		offer.InsuranceSum = null.Float64From(*d.InsuranceSum)
	}
	if d.Comment != nil {
		offer.Comment = null.StringFrom(*d.Comment)
	}

	var newID uint64
	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		var err error
		newID, err = s.offerRepo.CreateOffer(ctx, tx, offer)
		return err
	})
	if err != nil {
		s.logger.Error("ошибка создания предложения", zap.Error(err), zap.Uint64("requestId", requestID))
		return nil, err
	}

	created, err := s.offerRepo.FindOffer(ctx, newID)
	if err != nil {
		return nil, err
	}

	res := dto.NewOfferDTO(*created)
	return &res, nil
}

func (s *OfferService) GetOffers(ctx context.Context, requestID uint64) ([]dto.OfferDTO, error) {
	offers, err := s.offerRepo.GetOffersByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.OfferDTO, 0, len(offers))
	for _, o := range offers {
		result = append(result, dto.NewOfferDTO(o))
	}
	return result, nil
}

func (s *OfferService) DeleteOffer(ctx context.Context, id uint64) error {
	return s.offerRepo.DeleteOffer(ctx, id)
}
