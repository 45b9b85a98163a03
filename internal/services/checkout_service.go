package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/pix"
	"fotofocinho-backend/internal/pricing"
)

// CheckoutService turns a completed generation into an order with a PIX
// charge attached. Prices always come from the server-side table, never from
// the request.
type CheckoutService struct {
	store     Store
	gateway   pix.Gateway
	chargeTTL time.Duration
}

func NewCheckoutService(store Store, gateway pix.Gateway, chargeTTL time.Duration) *CheckoutService {
	return &CheckoutService{
		store:     store,
		gateway:   gateway,
		chargeTTL: chargeTTL,
	}
}

type CheckoutResult struct {
	Order  *models.Order
	Charge *models.PixCharge
}

// CreateOrder validates the request, provisions the customer, persists the
// order in pending_payment and creates a PIX charge for it. Validation is
// fail-fast: nothing is written until the whole request checks out.
//
// With an idempotency key, a replayed request returns the original order; a
// fresh charge is only issued if the stored one is no longer active.
func (s *CheckoutService) CreateOrder(ctx context.Context, req *models.CheckoutRequest, idempotencyKey string) (*CheckoutResult, error) {
	product := models.ProductType(req.ProductType)
	if !product.Valid() {
		return nil, apperr.Newf(apperr.ErrValidation, "Produto desconhecido: %q", req.ProductType)
	}

	generationID, err := uuid.Parse(req.GenerationID)
	if err != nil {
		return nil, apperr.New(apperr.ErrValidation, "ID de geração inválido")
	}

	if req.Customer.Name == "" || req.Customer.Email == "" || req.Customer.Cellphone == "" || req.Customer.TaxID == "" {
		return nil, apperr.New(apperr.ErrValidation, "Dados do cliente incompletos")
	}
	if len(req.Password) < 6 {
		return nil, apperr.New(apperr.ErrValidation, "A senha deve ter pelo menos 6 caracteres")
	}

	if product.RequiresShipping() {
		if req.ShippingAddress == nil || !req.ShippingAddress.Complete() {
			return nil, apperr.New(apperr.ErrValidation, "Endereço de entrega incompleto")
		}
	}

	priceCents, err := pricing.PriceCents(product, req.Size)
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		existing, err := s.store.GetOrderByIdempotencyKey(idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.resultForExistingOrder(ctx, existing, req)
		}
	}

	gen, err := s.store.GetGeneration(generationID)
	if err != nil {
		return nil, err
	}
	if gen.Status != models.GenerationStatusCompleted {
		return nil, apperr.New(apperr.ErrConflict, "A geração ainda não foi concluída")
	}

	customer, err := s.provisionCustomer(&req.Customer, req.Password)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		GenerationID: generationID,
		ProductType:  product,
		PriceCents:   priceCents,
		Status:       models.OrderStatusPendingPayment,
	}
	if req.Size != "" {
		order.Size = sql.NullString{String: req.Size, Valid: true}
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = sql.NullString{String: idempotencyKey, Valid: true}
	}
	if product.RequiresShipping() {
		addr, err := json.Marshal(req.ShippingAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal shipping address: %w", err)
		}
		order.ShippingAddress = addr
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, err
	}

	charge, err := s.issueCharge(ctx, order, &req.Customer)
	if err != nil {
		// The order stays in pending_payment; a retried checkout with the
		// same idempotency key will issue a new charge for it.
		return nil, err
	}

	log.Printf("[checkout] order created id=%s product=%s amount_cents=%d", order.ID, product, priceCents)
	return &CheckoutResult{Order: order, Charge: charge}, nil
}

// resultForExistingOrder serves an idempotent replay. The stored order is
// returned as-is; if its charge lapsed and the order is still payable, a new
// charge is issued.
func (s *CheckoutService) resultForExistingOrder(ctx context.Context, order *models.Order, req *models.CheckoutRequest) (*CheckoutResult, error) {
	var charge *models.PixCharge
	if order.Status == models.OrderStatusPendingPayment {
		var err error
		charge, err = s.issueCharge(ctx, order, &req.Customer)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("[checkout] idempotent replay order_id=%s", order.ID)
	return &CheckoutResult{Order: order, Charge: charge}, nil
}

// provisionCustomer reuses the customer with the given email or creates one.
func (s *CheckoutService) provisionCustomer(info *models.CustomerInfo, password string) (*models.Customer, error) {
	existing, err := s.store.GetCustomerByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         info.Name,
		Email:        info.Email,
		Cellphone:    info.Cellphone,
		TaxID:        info.TaxID,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CheckoutService) issueCharge(ctx context.Context, order *models.Order, customer *models.CustomerInfo) (*models.PixCharge, error) {
	// An order never carries two open charges at once. A PENDING row that
	// lapsed without ever being polled must be settled before a new insert,
	// or the one-pending-per-order index rejects the replacement.
	pending, err := s.store.PendingPixChargeForOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if pending.Active(time.Now()) {
			return pending, nil
		}
		if _, err := s.store.SettlePixCharge(pending.PixID, models.ChargeStatusExpired); err != nil {
			return nil, err
		}
	}

	created, err := s.gateway.CreateCharge(ctx, pix.ChargeRequest{
		OrderID:       order.ID,
		AmountCents:   order.PriceCents,
		Description:   fmt.Sprintf("Retrato pet - pedido %s", order.ID),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerTaxID: customer.TaxID,
		ExpiresIn:     s.chargeTTL,
	})
	if err != nil {
		log.Printf("[checkout] charge creation failed order_id=%s err=%v", order.ID, err)
		return nil, apperr.New(apperr.ErrUpstream, "Erro ao gerar pagamento PIX")
	}

	charge := &models.PixCharge{
		PixID:        created.PixID,
		OrderID:      order.ID,
		BRCode:       created.BRCode,
		BRCodeBase64: created.BRCodeBase64,
		AmountCents:  order.PriceCents,
		Status:       models.ChargeStatusPending,
		ExpiresAt:    created.ExpiresAt,
	}
	if err := s.store.CreatePixCharge(charge); err != nil {
		return nil, err
	}
	return charge, nil
}
