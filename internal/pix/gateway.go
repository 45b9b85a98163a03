// Package pix abstracts the PIX payment provider behind a small gateway
// interface so a simulated backend can replace the real one in development
// and tests without touching the orchestration code.
package pix

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fotofocinho-backend/internal/models"
)

// ChargeRequest describes a charge to create. Amounts are BRL cents.
type ChargeRequest struct {
	OrderID       uuid.UUID
	AmountCents   int64
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerTaxID string
	ExpiresIn     time.Duration
}

// Charge is the provider's view of a freshly created charge.
type Charge struct {
	PixID        string
	BRCode       string
	BRCodeBase64 string
	ExpiresAt    time.Time
}

type Gateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)

	// GetChargeStatus reports the provider-side status. The provider is the
	// source of truth for charge transitions.
	GetChargeStatus(ctx context.Context, pixID string) (models.ChargeStatus, error)

	// SimulatePayment force-transitions a charge to PAID without a real
	// payment. Only the simulated gateway supports it; real gateways return
	// an error.
	SimulatePayment(ctx context.Context, pixID string) error
}
