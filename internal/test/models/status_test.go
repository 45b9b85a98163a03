package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fotofocinho-backend/internal/models"
)

func TestGenerationStatusTransitions(t *testing.T) {
	assert.True(t, models.GenerationStatusGenerating.CanTransition(models.GenerationStatusCompleted))
	assert.True(t, models.GenerationStatusGenerating.CanTransition(models.GenerationStatusFailed))

	// Terminal states accept nothing.
	assert.False(t, models.GenerationStatusCompleted.CanTransition(models.GenerationStatusFailed))
	assert.False(t, models.GenerationStatusFailed.CanTransition(models.GenerationStatusCompleted))
	assert.False(t, models.GenerationStatusCompleted.CanTransition(models.GenerationStatusGenerating))
}

func TestOrderStatusTransitions(t *testing.T) {
	valid := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusPendingPayment, models.OrderStatusPaid},
		{models.OrderStatusPendingPayment, models.OrderStatusCancelled},
		{models.OrderStatusPaid, models.OrderStatusProcessing},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tc := range valid {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	invalid := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusPaid, models.OrderStatusPendingPayment},
		{models.OrderStatusPaid, models.OrderStatusCancelled},
		{models.OrderStatusCancelled, models.OrderStatusPaid},
		{models.OrderStatusDelivered, models.OrderStatusShipped},
		{models.OrderStatusPendingPayment, models.OrderStatusShipped},
	}
	for _, tc := range invalid {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestChargeStatusTerminal(t *testing.T) {
	assert.False(t, models.ChargeStatusPending.Terminal())
	assert.True(t, models.ChargeStatusPaid.Terminal())
	assert.True(t, models.ChargeStatusExpired.Terminal())
	assert.True(t, models.ChargeStatusCancelled.Terminal())
}

func TestPixChargeActive(t *testing.T) {
	now := time.Now()
	charge := &models.PixCharge{
		Status:    models.ChargeStatusPending,
		ExpiresAt: now.Add(time.Minute),
	}
	assert.True(t, charge.Active(now))
	assert.False(t, charge.Active(now.Add(2*time.Minute)))

	charge.Status = models.ChargeStatusPaid
	assert.False(t, charge.Active(now))
}

func TestProductType(t *testing.T) {
	assert.True(t, models.ProductDigital.Valid())
	assert.True(t, models.ProductPrint.Valid())
	assert.True(t, models.ProductCanvas.Valid())
	assert.False(t, models.ProductType("poster").Valid())

	assert.False(t, models.ProductDigital.RequiresShipping())
	assert.True(t, models.ProductPrint.RequiresShipping())
	assert.True(t, models.ProductCanvas.RequiresShipping())
}

func TestAddressComplete(t *testing.T) {
	addr := models.Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		Zip:          "01000-000",
	}
	assert.True(t, addr.Complete())

	// Complement is the only optional field.
	addr.Complement = "Apto 12"
	assert.True(t, addr.Complete())

	addr.City = ""
	assert.False(t, addr.Complete())
}
