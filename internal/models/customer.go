package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an account provisioned during checkout, keyed by email.
type Customer struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Cellphone    string
	TaxID        string
	PasswordHash string
	CreatedAt    time.Time
}
