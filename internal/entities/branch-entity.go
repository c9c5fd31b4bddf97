package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Branch - филиал лизинговой компании (справочник).
type Branch struct {
	ID        uint64
	Name      string
	ShortName string
	Email     null.String
	CreatedAt time.Time
	UpdatedAt time.Time
}
