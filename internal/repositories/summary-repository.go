package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"insurance-system/internal/entities"
	apperrors "insurance-system/pkg/errors"
)

type SummaryRepositoryInterface interface {
	FindByRequest(ctx context.Context, requestID uint64) (*entities.Summary, error)
	Upsert(ctx context.Context, q Querier, summary entities.Summary) error
	MarkSent(ctx context.Context, requestID uint64) error
}

type SummaryRepository struct {
	storage *pgxpool.Pool
}

func NewSummaryRepository(storage *pgxpool.Pool) SummaryRepositoryInterface {
	return &SummaryRepository{storage: storage}
}

func (r *SummaryRepository) FindByRequest(ctx context.Context, requestID uint64) (*entities.Summary, error) {
	query := `
		SELECT s.id, s.request_id, s.offers_count, s.min_premium, s.chosen_offer_id, s.sent_at,
			s.created_at, s.updated_at
		FROM summaries AS s
		WHERE s.request_id = $1
	`
	var s entities.Summary
	err := r.storage.QueryRow(ctx, query, requestID).Scan(
		&s.ID, &s.RequestID, &s.OffersCount, &s.MinPremium, &s.ChosenOfferID, &s.SentAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования summary: %w", err)
	}
	return &s, nil
}

// Upsert пересобирает сводку по заявке: одна заявка - одна строка.
func (r *SummaryRepository) Upsert(ctx context.Context, q Querier, summary entities.Summary) error {
	query := `
		INSERT INTO summaries (request_id, offers_count, min_premium, chosen_offer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (request_id)
		DO UPDATE SET
			offers_count = EXCLUDED.offers_count,
			min_premium = EXCLUDED.min_premium,
			chosen_offer_id = COALESCE(EXCLUDED.chosen_offer_id, summaries.chosen_offer_id),
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		summary.RequestID, summary.OffersCount, summary.MinPremium, summary.ChosenOfferID,
	)
	return err
}

func (r *SummaryRepository) MarkSent(ctx context.Context, requestID uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE summaries SET sent_at = NOW(), updated_at = NOW() WHERE request_id = $1`, requestID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
