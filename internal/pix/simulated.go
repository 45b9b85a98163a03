package pix

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fotofocinho-backend/internal/models"
)

// SimulatedGateway is an in-memory gateway for development and tests. It
// issues placeholder charges that stay PENDING until SimulatePayment is
// called or the expiry window elapses.
type SimulatedGateway struct {
	mu      sync.Mutex
	charges map[string]*simulatedCharge
}

type simulatedCharge struct {
	paid      bool
	expiresAt time.Time
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{
		charges: map[string]*simulatedCharge{},
	}
}

func (g *SimulatedGateway) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	pixID := "SIM-" + uuid.New().String()
	expiresAt := time.Now().Add(req.ExpiresIn)

	// Shaped like an EMV payload for UI purposes; not a scannable code.
	brCode := fmt.Sprintf(
		"00020126580014br.gov.bcb.pix0136%s5204000053039865802BR5911FOTOFOCINHO6009SAO PAULO62070503***6304%04X",
		strings.TrimPrefix(pixID, "SIM-"), req.AmountCents%0x10000)

	g.mu.Lock()
	g.charges[pixID] = &simulatedCharge{expiresAt: expiresAt}
	g.mu.Unlock()

	return &Charge{
		PixID:        pixID,
		BRCode:       brCode,
		BRCodeBase64: base64.StdEncoding.EncodeToString([]byte(brCode)),
		ExpiresAt:    expiresAt,
	}, nil
}

func (g *SimulatedGateway) GetChargeStatus(ctx context.Context, pixID string) (models.ChargeStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	charge, ok := g.charges[pixID]
	if !ok {
		return "", fmt.Errorf("simulated charge %q not found", pixID)
	}

	if charge.paid {
		return models.ChargeStatusPaid, nil
	}
	if time.Now().After(charge.expiresAt) {
		return models.ChargeStatusExpired, nil
	}
	return models.ChargeStatusPending, nil
}

func (g *SimulatedGateway) SimulatePayment(ctx context.Context, pixID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	charge, ok := g.charges[pixID]
	if !ok {
		return fmt.Errorf("simulated charge %q not found", pixID)
	}
	if time.Now().After(charge.expiresAt) {
		return fmt.Errorf("simulated charge %q already expired", pixID)
	}

	charge.paid = true
	return nil
}
