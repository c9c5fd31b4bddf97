package dto

import (
	"time"

	"insurance-system/internal/entities"
)

type ChooseOfferDTO struct {
	OfferID uint64 `json:"offer_id" validate:"required"`
}

type SummaryDTO struct {
	RequestID     uint64   `json:"request_id"`
	OffersCount   uint64   `json:"offers_count"`
	MinPremium    *float64 `json:"min_premium"`
	ChosenOfferID *uint64  `json:"chosen_offer_id"`
	SentAt        *string  `json:"sent_at"`
}

func NewSummaryDTO(e entities.Summary) SummaryDTO {
	d := SummaryDTO{
		RequestID:   e.RequestID,
		OffersCount: e.OffersCount,
	}
	if e.MinPremium.Valid {
		d.MinPremium = &e.MinPremium.Float64
	}
	if e.ChosenOfferID.Valid {
		d.ChosenOfferID = &e.ChosenOfferID.Uint64
	}
	if e.SentAt.Valid {
		v := e.SentAt.Time.Format(time.RFC3339)
		d.SentAt = &v
	}
	return d
}
