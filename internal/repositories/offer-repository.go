package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"insurance-system/internal/entities"
	apperrors "insurance-system/pkg/errors"
)

type OfferRepositoryInterface interface {
	GetOffersByRequest(ctx context.Context, requestID uint64) ([]entities.Offer, error)
	FindOffer(ctx context.Context, id uint64) (*entities.Offer, error)
	CreateOffer(ctx context.Context, q Querier, offer entities.Offer) (uint64, error)
	DeleteOffer(ctx context.Context, id uint64) error
}

type OfferRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOfferRepository(storage *pgxpool.Pool, logger *zap.Logger) OfferRepositoryInterface {
	return &OfferRepository{storage: storage, logger: logger}
}

func scanOffer(row pgx.Row) (*entities.Offer, error) {
	var o entities.Offer
	err := row.Scan(
		&o.ID, &o.RequestID, &o.CompanyName, &o.Premium, &o.InsuranceSum, &o.Comment,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования offer: %w", err)
	}
	return &o, nil
}

func (r *OfferRepository) GetOffersByRequest(ctx context.Context, requestID uint64) ([]entities.Offer, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"o.id", "o.request_id", "o.company_name", "o.premium", "o.insurance_sum", "o.comment",
		"o.created_at", "o.updated_at",
	).From("offers AS o").Where(sq.Eq{"o.request_id": requestID}).OrderBy("o.id")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]entities.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}

	return offers, nil
}

func (r *OfferRepository) FindOffer(ctx context.Context, id uint64) (*entities.Offer, error) {
	query := `
		SELECT o.id, o.request_id, o.company_name, o.premium, o.insurance_sum, o.comment,
			o.created_at, o.updated_at
		FROM offers AS o
		WHERE o.id = $1
	`
	return scanOffer(r.storage.QueryRow(ctx, query, id))
}

func (r *OfferRepository) CreateOffer(ctx context.Context, q Querier, offer entities.Offer) (uint64, error) {
	query := `
		INSERT INTO offers (request_id, company_name, premium, insurance_sum, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := q.QueryRow(ctx, query,
		offer.RequestID, offer.CompanyName, offer.Premium, offer.InsuranceSum, offer.Comment,
	).Scan(&newID)

	return newID, err
}

func (r *OfferRepository) DeleteOffer(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
