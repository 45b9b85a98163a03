// Package services holds the orchestration logic between the HTTP handlers
// and the external collaborators (image generation, object storage, Postgres,
// the PIX gateway).
package services

import (
	"github.com/google/uuid"

	"fotofocinho-backend/internal/models"
)

// PortraitGenerator produces a stylized portrait from a source image. Calls
// are slow and non-idempotent; implementations must not retry.
type PortraitGenerator interface {
	GeneratePortrait(imageData []byte, mimeType, style string) ([]byte, error)
}

// ObjectStore is the bucket-scoped blob storage used for originals, generated
// images and watermarked previews.
type ObjectStore interface {
	Upload(bucket, path string, data []byte, contentType string) error
	Download(bucket, path string) ([]byte, error)
	PublicURL(bucket, path string) string
}

// EventPublisher pushes lifecycle events to the frontend. Optional; services
// tolerate a nil publisher.
type EventPublisher interface {
	PublishGenerationEvent(generationID uuid.UUID, status string) error
	PublishOrderEvent(orderID uuid.UUID, status string) error
}

// Store is the persistence surface the services need. Lookup methods that
// probe for optional rows (GetCustomerByEmail, GetOrderByIdempotencyKey,
// PendingPixChargeForOrder) return (nil, nil) when no row exists; Get-by-id
// methods return a not-found error instead.
type Store interface {
	CreateGeneration(rec *models.GenerationRecord) error
	GetGeneration(id uuid.UUID) (*models.GenerationRecord, error)
	CompleteGeneration(id uuid.UUID, generatedPath, watermarkedPath string) error
	FailGeneration(id uuid.UUID) error

	CreateCustomer(c *models.Customer) error
	GetCustomerByEmail(email string) (*models.Customer, error)

	CreateOrder(o *models.Order) error
	GetOrder(id uuid.UUID) (*models.Order, error)
	GetOrderByIdempotencyKey(key string) (*models.Order, error)
	ListOrdersByCustomer(customerID uuid.UUID) ([]models.AccountOrder, error)
	MarkOrderPaid(id uuid.UUID) (bool, error)
	CancelOrder(id uuid.UUID) (bool, error)

	CreatePixCharge(c *models.PixCharge) error
	GetPixCharge(pixID string) (*models.PixCharge, error)
	PendingPixChargeForOrder(orderID uuid.UUID) (*models.PixCharge, error)
	SettlePixCharge(pixID string, status models.ChargeStatus) (bool, error)
}
