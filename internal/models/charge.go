package models

import (
	"time"

	"github.com/google/uuid"
)

// ChargeStatus mirrors the payment gateway's view of a PIX charge. The
// gateway is the source of truth; this side only observes.
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "PENDING"
	ChargeStatusPaid      ChargeStatus = "PAID"
	ChargeStatusExpired   ChargeStatus = "EXPIRED"
	ChargeStatusCancelled ChargeStatus = "CANCELLED"
)

func (s ChargeStatus) Terminal() bool {
	return s == ChargeStatusPaid || s == ChargeStatusExpired || s == ChargeStatusCancelled
}

// PixCharge is a time-boxed PIX payment request linked to an order. At most
// one non-terminal charge may exist per order (enforced by a partial unique
// index on pix_charges).
type PixCharge struct {
	PixID        string
	OrderID      uuid.UUID
	BRCode       string
	BRCodeBase64 string
	AmountCents  int64
	Status       ChargeStatus
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Active reports whether the charge can still be paid.
func (c *PixCharge) Active(now time.Time) bool {
	return c.Status == ChargeStatusPending && now.Before(c.ExpiresAt)
}
