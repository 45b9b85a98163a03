package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/pix"
)

// PaymentService reconciles local charge and order state against the gateway.
// It is driven by frontend polling, so every step must be safe to repeat: the
// paid transition is applied at most once via a conditional update, and
// concurrent polls for the same charge converge on the same terminal state.
type PaymentService struct {
	store           Store
	gateway         pix.Gateway
	events          EventPublisher
	allowSimulation bool
}

func NewPaymentService(store Store, gateway pix.Gateway, events EventPublisher, allowSimulation bool) *PaymentService {
	return &PaymentService{
		store:           store,
		gateway:         gateway,
		events:          events,
		allowSimulation: allowSimulation,
	}
}

// CheckStatus returns the charge status for (pixID, orderID), settling local
// state when the gateway reports a terminal status. A stored terminal status
// is served without calling the gateway, but the order transition is still
// re-applied: if a previous poll settled the charge and then crashed before
// the order write, the next poll finishes the job.
func (s *PaymentService) CheckStatus(ctx context.Context, pixID string, orderID uuid.UUID, simulate bool) (models.ChargeStatus, error) {
	charge, err := s.store.GetPixCharge(pixID)
	if err != nil {
		return "", err
	}
	if charge.OrderID != orderID {
		return "", apperr.New(apperr.ErrValidation, "Cobrança não pertence a este pedido")
	}

	if charge.Status.Terminal() {
		if err := s.settle(charge, charge.Status); err != nil {
			return "", err
		}
		return charge.Status, nil
	}

	if simulate && s.allowSimulation {
		if err := s.gateway.SimulatePayment(ctx, pixID); err != nil {
			log.Printf("[payment] simulation failed pix_id=%s err=%v", pixID, err)
		}
	}

	status, err := s.gateway.GetChargeStatus(ctx, pixID)
	if err != nil {
		log.Printf("[payment] gateway status check failed pix_id=%s err=%v", pixID, err)
		return "", apperr.New(apperr.ErrUpstream, "Erro ao consultar status do pagamento")
	}

	// The gateway may still answer PENDING right after the expiry instant;
	// trust the local clock for expiry.
	if status == models.ChargeStatusPending && time.Now().After(charge.ExpiresAt) {
		status = models.ChargeStatusExpired
	}

	if err := s.settle(charge, status); err != nil {
		return "", err
	}

	return status, nil
}

func (s *PaymentService) settle(charge *models.PixCharge, status models.ChargeStatus) error {
	switch status {
	case models.ChargeStatusPaid:
		return s.settlePaid(charge)
	case models.ChargeStatusExpired, models.ChargeStatusCancelled:
		return s.settleLapsed(charge, status)
	}
	return nil
}

// settlePaid settles the charge and flips the order to paid. The conditional
// order update decides the winner when two polls race: only the winner runs
// the paid side effects.
func (s *PaymentService) settlePaid(charge *models.PixCharge) error {
	if _, err := s.store.SettlePixCharge(charge.PixID, models.ChargeStatusPaid); err != nil {
		return err
	}

	flipped, err := s.store.MarkOrderPaid(charge.OrderID)
	if err != nil {
		return err
	}
	if !flipped {
		return nil
	}

	log.Printf("[payment] order paid order_id=%s pix_id=%s amount_cents=%d", charge.OrderID, charge.PixID, charge.AmountCents)
	if s.events != nil {
		if err := s.events.PublishOrderEvent(charge.OrderID, string(models.OrderStatusPaid)); err != nil {
			log.Printf("[payment] event publish failed order_id=%s err=%v", charge.OrderID, err)
		}
	}
	return nil
}

func (s *PaymentService) settleLapsed(charge *models.PixCharge, status models.ChargeStatus) error {
	if _, err := s.store.SettlePixCharge(charge.PixID, status); err != nil {
		return err
	}

	cancelled, err := s.store.CancelOrder(charge.OrderID)
	if err != nil {
		return err
	}
	if !cancelled {
		return nil
	}

	log.Printf("[payment] order cancelled order_id=%s pix_id=%s charge_status=%s", charge.OrderID, charge.PixID, status)
	if s.events != nil {
		if err := s.events.PublishOrderEvent(charge.OrderID, string(models.OrderStatusCancelled)); err != nil {
			log.Printf("[payment] event publish failed order_id=%s err=%v", charge.OrderID, err)
		}
	}
	return nil
}
