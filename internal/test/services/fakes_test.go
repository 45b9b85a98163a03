package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/pix"
)

// fakeStore is an in-memory Store with the same absent-row conventions as the
// real database client.
type fakeStore struct {
	mu          sync.Mutex
	generations map[uuid.UUID]*models.GenerationRecord
	customers   map[string]*models.Customer
	orders      map[uuid.UUID]*models.Order
	charges     map[string]*models.PixCharge

	failCreateOrder  bool
	failMarkPaidOnce bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		generations: map[uuid.UUID]*models.GenerationRecord{},
		customers:   map[string]*models.Customer{},
		orders:      map[uuid.UUID]*models.Order{},
		charges:     map[string]*models.PixCharge{},
	}
}

func (s *fakeStore) CreateGeneration(rec *models.GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *rec
	s.generations[rec.ID] = &copied
	return nil
}

func (s *fakeStore) GetGeneration(id uuid.UUID) (*models.GenerationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.generations[id]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "Geração não encontrada")
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeStore) CompleteGeneration(id uuid.UUID, generatedPath, watermarkedPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.generations[id]
	if !ok || rec.Status != models.GenerationStatusGenerating {
		return fmt.Errorf("generation %s is not in generating state", id)
	}
	rec.Status = models.GenerationStatusCompleted
	rec.GeneratedImagePath.String = generatedPath
	rec.GeneratedImagePath.Valid = true
	rec.WatermarkedImagePath.String = watermarkedPath
	rec.WatermarkedImagePath.Valid = true
	return nil
}

func (s *fakeStore) FailGeneration(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.generations[id]
	if ok && rec.Status == models.GenerationStatusGenerating {
		rec.Status = models.GenerationStatusFailed
	}
	return nil
}

func (s *fakeStore) CreateCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.customers[c.Email] = &copied
	return nil
}

func (s *fakeStore) GetCustomerByEmail(email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[email]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *fakeStore) CreateOrder(o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateOrder {
		return fmt.Errorf("failed to create order: boom")
	}
	copied := *o
	s.orders[o.ID] = &copied
	return nil
}

func (s *fakeStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "Pedido não encontrado")
	}
	copied := *o
	return &copied, nil
}

func (s *fakeStore) GetOrderByIdempotencyKey(key string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.IdempotencyKey.Valid && o.IdempotencyKey.String == key {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListOrdersByCustomer(customerID uuid.UUID) ([]models.AccountOrder, error) {
	return nil, nil
}

func (s *fakeStore) MarkOrderPaid(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMarkPaidOnce {
		s.failMarkPaidOnce = false
		return false, fmt.Errorf("failed to mark order as paid: connection reset")
	}
	o, ok := s.orders[id]
	if !ok || o.Status != models.OrderStatusPendingPayment {
		return false, nil
	}
	o.Status = models.OrderStatusPaid
	return true, nil
}

func (s *fakeStore) CancelOrder(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != models.OrderStatusPendingPayment {
		return false, nil
	}
	o.Status = models.OrderStatusCancelled
	return true, nil
}

// CreatePixCharge enforces the same one-PENDING-per-order rule as the
// partial unique index in the schema.
func (s *fakeStore) CreatePixCharge(c *models.PixCharge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Status == models.ChargeStatusPending {
		for _, existing := range s.charges {
			if existing.OrderID == c.OrderID && existing.Status == models.ChargeStatusPending {
				return fmt.Errorf(`failed to create pix charge: pq: duplicate key value violates unique constraint "idx_pix_charges_one_pending_per_order"`)
			}
		}
	}
	copied := *c
	s.charges[c.PixID] = &copied
	return nil
}

func (s *fakeStore) GetPixCharge(pixID string) (*models.PixCharge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[pixID]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "Cobrança PIX não encontrada")
	}
	copied := *c
	return &copied, nil
}

func (s *fakeStore) PendingPixChargeForOrder(orderID uuid.UUID) (*models.PixCharge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.charges {
		if c.OrderID == orderID && c.Status == models.ChargeStatusPending {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) SettlePixCharge(pixID string, status models.ChargeStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[pixID]
	if !ok || c.Status != models.ChargeStatusPending {
		return false, nil
	}
	c.Status = status
	return true, nil
}

// fakeGateway scripts the provider's answers and records every call.
type fakeGateway struct {
	mu sync.Mutex

	createErr    error
	status       models.ChargeStatus
	statusErr    error
	createCalls  int
	statusCalls  int
	simulateCall int
}

func (g *fakeGateway) CreateCharge(ctx context.Context, req pix.ChargeRequest) (*pix.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &pix.Charge{
		PixID:        fmt.Sprintf("PIX-%d", g.createCalls),
		BRCode:       "00020126brcode",
		BRCodeBase64: "YnJjb2Rl",
		ExpiresAt:    time.Now().Add(req.ExpiresIn),
	}, nil
}

func (g *fakeGateway) GetChargeStatus(ctx context.Context, pixID string) (models.ChargeStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.status, nil
}

func (g *fakeGateway) SimulatePayment(ctx context.Context, pixID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.simulateCall++
	g.status = models.ChargeStatusPaid
	return nil
}

// fakeObjects is an in-memory ObjectStore keyed by bucket/path.
type fakeObjects struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	uploadErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{blobs: map[string][]byte{}}
}

func (o *fakeObjects) put(bucket, path string, data []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.blobs[bucket+"/"+path] = data
}

func (o *fakeObjects) Upload(bucket, path string, data []byte, contentType string) error {
	if o.uploadErr != nil {
		return o.uploadErr
	}
	o.put(bucket, path, data)
	return nil
}

func (o *fakeObjects) Download(bucket, path string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.blobs[bucket+"/"+path]
	if !ok {
		return nil, fmt.Errorf("object %s/%s not found", bucket, path)
	}
	return data, nil
}

func (o *fakeObjects) PublicURL(bucket, path string) string {
	return "https://storage.test/" + bucket + "/" + path
}

// fakeGenerator returns a fixed image or a scripted error.
type fakeGenerator struct {
	output []byte
	err    error
	calls  int
}

func (g *fakeGenerator) GeneratePortrait(imageData []byte, mimeType, style string) ([]byte, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.output, nil
}
