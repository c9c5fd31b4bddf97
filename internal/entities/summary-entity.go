package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Summary - сводка по предложениям страховых для одной заявки.
// Пересобирается из текущего набора предложений.
type Summary struct {
	ID            uint64
	RequestID     uint64
	OffersCount   uint64
	MinPremium    null.Float64
	ChosenOfferID null.Uint64
	SentAt        null.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
