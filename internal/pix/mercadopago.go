package pix

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"fotofocinho-backend/internal/models"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway creates PIX charges through the Mercado Pago payments
// API. The PIX copy-and-paste code and the QR image come back on the payment
// response as qr_code / qr_code_base64.
type MercadoPagoGateway struct {
	client payment.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create mercado pago config: %w", err)
	}

	log.Printf("[pix][gateway] mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	expiresAt := time.Now().Add(req.ExpiresIn)
	firstName, lastName := splitName(req.CustomerName)

	request := payment.Request{
		TransactionAmount: float64(req.AmountCents) / 100,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.OrderID.String(),
		DateOfExpiration:  &expiresAt,
		Payer: &payment.PayerRequest{
			Email:     req.CustomerEmail,
			FirstName: firstName,
			LastName:  lastName,
			Identification: &payment.IdentificationRequest{
				Type:   "CPF",
				Number: req.CustomerTaxID,
			},
		},
	}

	resp, err := g.client.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create pix charge: %w", err)
	}

	brCode := resp.PointOfInteraction.TransactionData.QRCode
	brCodeBase64 := resp.PointOfInteraction.TransactionData.QRCodeBase64
	if brCode == "" || brCodeBase64 == "" {
		return nil, fmt.Errorf("pix charge %d missing qr code data in response", resp.ID)
	}

	log.Printf("[pix][gateway] charge created pix_id=%d order_id=%s amount_cents=%d", resp.ID, req.OrderID, req.AmountCents)

	return &Charge{
		PixID:        strconv.Itoa(resp.ID),
		BRCode:       brCode,
		BRCodeBase64: brCodeBase64,
		ExpiresAt:    expiresAt,
	}, nil
}

func (g *MercadoPagoGateway) GetChargeStatus(ctx context.Context, pixID string) (models.ChargeStatus, error) {
	id, err := strconv.Atoi(pixID)
	if err != nil {
		return "", fmt.Errorf("invalid pix id %q: %w", pixID, err)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get pix charge status: %w", err)
	}

	switch resp.Status {
	case "approved":
		return models.ChargeStatusPaid, nil
	case "cancelled", "rejected":
		// Mercado Pago cancels PIX charges when they expire.
		if !resp.DateOfExpiration.IsZero() && time.Now().After(resp.DateOfExpiration) {
			return models.ChargeStatusExpired, nil
		}
		return models.ChargeStatusCancelled, nil
	default:
		return models.ChargeStatusPending, nil
	}
}

func (g *MercadoPagoGateway) SimulatePayment(ctx context.Context, pixID string) error {
	return errors.New("payment simulation is not supported by the mercado pago gateway")
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
