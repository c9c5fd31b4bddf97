package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID           uint64
	Login        string
	FIO          string
	Email        null.String
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
