package dto

import (
	"time"

	"insurance-system/internal/entities"
)

type CreateOfferDTO struct {
	CompanyName  string   `json:"company_name" validate:"required"`
	Premium      *float64 `json:"premium" validate:"omitempty,gt=0"`
	InsuranceSum *float64 `json:"insurance_sum" validate:"omitempty,gt=0"`
	Comment      *string  `json:"comment"`
}

type OfferDTO struct {
	ID           uint64   `json:"id"`
	RequestID    uint64   `json:"request_id"`
	CompanyName  string   `json:"company_name"`
	Premium      *float64 `json:"premium"`
	InsuranceSum *float64 `json:"insurance_sum"`
	Comment      *string  `json:"comment"`
	CreatedAt    string   `json:"created_at"`
}

func NewOfferDTO(e entities.Offer) OfferDTO {
	d := OfferDTO{
		ID:          e.ID,
		RequestID:   e.RequestID,
		CompanyName: e.CompanyName,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.Premium.Valid {
		d.Premium = &e.Premium.Float64
	}
	if e.InsuranceSum.Valid {
		d.InsuranceSum = &e.InsuranceSum.Float64
	}
	if e.Comment.Valid {
		d.Comment = &e.Comment.String
	}
	return d
}
