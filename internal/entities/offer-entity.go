package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Offer - предложение страховой компании по заявке.
type Offer struct {
	ID           uint64
	RequestID    uint64
	CompanyName  string
	Premium      null.Float64
	InsuranceSum null.Float64
	Comment      null.String
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
