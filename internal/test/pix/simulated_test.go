package pix_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/pix"
)

func TestSimulatedGateway_Lifecycle(t *testing.T) {
	gateway := pix.NewSimulatedGateway()
	ctx := context.Background()

	charge, err := gateway.CreateCharge(ctx, pix.ChargeRequest{
		OrderID:     uuid.New(),
		AmountCents: 4990,
		ExpiresIn:   30 * time.Minute,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, charge.PixID)
	assert.NotEmpty(t, charge.BRCode)
	assert.NotEmpty(t, charge.BRCodeBase64)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), charge.ExpiresAt, time.Minute)

	status, err := gateway.GetChargeStatus(ctx, charge.PixID)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPending, status)

	require.NoError(t, gateway.SimulatePayment(ctx, charge.PixID))

	status, err = gateway.GetChargeStatus(ctx, charge.PixID)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPaid, status)
}

func TestSimulatedGateway_Expiry(t *testing.T) {
	gateway := pix.NewSimulatedGateway()
	ctx := context.Background()

	charge, err := gateway.CreateCharge(ctx, pix.ChargeRequest{
		OrderID:     uuid.New(),
		AmountCents: 4990,
		ExpiresIn:   -time.Minute,
	})
	require.NoError(t, err)

	status, err := gateway.GetChargeStatus(ctx, charge.PixID)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusExpired, status)

	// An expired charge can no longer be paid, not even in simulation.
	assert.Error(t, gateway.SimulatePayment(ctx, charge.PixID))
}

func TestSimulatedGateway_UnknownCharge(t *testing.T) {
	gateway := pix.NewSimulatedGateway()
	ctx := context.Background()

	_, err := gateway.GetChargeStatus(ctx, "SIM-missing")
	assert.Error(t, err)
	assert.Error(t, gateway.SimulatePayment(ctx, "SIM-missing"))
}

func TestSimulatedGateway_UniquePixIDs(t *testing.T) {
	gateway := pix.NewSimulatedGateway()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		charge, err := gateway.CreateCharge(ctx, pix.ChargeRequest{
			OrderID:     uuid.New(),
			AmountCents: 100,
			ExpiresIn:   time.Minute,
		})
		require.NoError(t, err)
		assert.False(t, seen[charge.PixID])
		seen[charge.PixID] = true
	}
}
