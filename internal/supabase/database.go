package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
)

// DatabaseClient talks straight to the Supabase Postgres instance over the
// connection pooler. All writes to order and charge status go through
// conditional UPDATEs so concurrent reconcilers cannot double-apply a
// transition.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(databaseURL string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[database] connected")
	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// DB exposes the underlying handle for the migration runner.
func (d *DatabaseClient) DB() *sql.DB {
	return d.db
}

// --- generations ---

func (d *DatabaseClient) CreateGeneration(rec *models.GenerationRecord) error {
	query := `
		INSERT INTO pets_generations (id, style, original_image_path, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := d.db.Exec(query, rec.ID, rec.Style, rec.OriginalImagePath, rec.Status)
	if err != nil {
		return fmt.Errorf("failed to create generation record: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetGeneration(id uuid.UUID) (*models.GenerationRecord, error) {
	query := `
		SELECT id, style, original_image_path, generated_image_path, watermarked_image_path,
		       status, created_at, updated_at
		FROM pets_generations
		WHERE id = $1`

	var rec models.GenerationRecord
	err := d.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.Style, &rec.OriginalImagePath, &rec.GeneratedImagePath,
		&rec.WatermarkedImagePath, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "Geração não encontrada")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation record: %w", err)
	}
	return &rec, nil
}

// CompleteGeneration records the output paths and flips the record to
// completed. The status guard keeps a late writer from resurrecting a record
// that already failed.
func (d *DatabaseClient) CompleteGeneration(id uuid.UUID, generatedPath, watermarkedPath string) error {
	query := `
		UPDATE pets_generations
		SET status = 'completed', generated_image_path = $2, watermarked_image_path = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'generating'`

	result, err := d.db.Exec(query, id, generatedPath, watermarkedPath)
	if err != nil {
		return fmt.Errorf("failed to complete generation record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("generation %s is not in generating state", id)
	}
	return nil
}

func (d *DatabaseClient) FailGeneration(id uuid.UUID) error {
	query := `
		UPDATE pets_generations
		SET status = 'failed', updated_at = NOW()
		WHERE id = $1 AND status = 'generating'`

	if _, err := d.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to mark generation as failed: %w", err)
	}
	return nil
}

// --- customers ---

func (d *DatabaseClient) CreateCustomer(c *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, cellphone, tax_id, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := d.db.Exec(query, c.ID, c.Name, c.Email, c.Cellphone, c.TaxID, c.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetCustomerByEmail returns (nil, nil) when no customer has the email.
func (d *DatabaseClient) GetCustomerByEmail(email string) (*models.Customer, error) {
	query := `
		SELECT id, name, email, cellphone, tax_id, password_hash, created_at
		FROM customers
		WHERE email = $1`

	var c models.Customer
	err := d.db.QueryRow(query, email).Scan(
		&c.ID, &c.Name, &c.Email, &c.Cellphone, &c.TaxID, &c.PasswordHash, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return &c, nil
}

// --- orders ---

func (d *DatabaseClient) CreateOrder(o *models.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, generation_id, product_type, size, price_cents,
		                    status, shipping_address, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

	_, err := d.db.Exec(query,
		o.ID, o.CustomerID, o.GenerationID, o.ProductType, o.Size, o.PriceCents,
		o.Status, o.ShippingAddress, o.IdempotencyKey,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetOrder(id uuid.UUID) (*models.Order, error) {
	query := orderSelect + ` WHERE id = $1`

	var o models.Order
	err := scanOrder(d.db.QueryRow(query, id), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "Pedido não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// GetOrderByIdempotencyKey returns (nil, nil) when the key was never used.
func (d *DatabaseClient) GetOrderByIdempotencyKey(key string) (*models.Order, error) {
	query := orderSelect + ` WHERE idempotency_key = $1`

	var o models.Order
	err := scanOrder(d.db.QueryRow(query, key), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by idempotency key: %w", err)
	}
	return &o, nil
}

func (d *DatabaseClient) ListOrdersByCustomer(customerID uuid.UUID) ([]models.AccountOrder, error) {
	query := `
		SELECT o.id, o.product_type, o.size, o.price_cents, o.status, o.tracking_code,
		       o.created_at, o.paid_at, o.shipped_at, g.style, g.watermarked_image_path
		FROM orders o
		JOIN pets_generations g ON g.id = o.generation_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`

	rows, err := d.db.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.AccountOrder{}
	for rows.Next() {
		var ao models.AccountOrder
		err := rows.Scan(
			&ao.OrderID, &ao.ProductType, &ao.Size, &ao.PriceCents, &ao.Status,
			&ao.TrackingCode, &ao.CreatedAt, &ao.PaidAt, &ao.ShippedAt,
			&ao.Style, &ao.WatermarkedImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, ao)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return orders, nil
}

// MarkOrderPaid flips pending_payment to paid. Returns false when the order
// was not in pending_payment, which means another reconciler won the race or
// the order was already cancelled.
func (d *DatabaseClient) MarkOrderPaid(id uuid.UUID) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'paid', paid_at = NOW()
		WHERE id = $1 AND status = 'pending_payment'`

	result, err := d.db.Exec(query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark order as paid: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rows == 1, nil
}

func (d *DatabaseClient) CancelOrder(id uuid.UUID) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'pending_payment'`

	result, err := d.db.Exec(query, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rows == 1, nil
}

const orderSelect = `
	SELECT id, customer_id, generation_id, product_type, size, price_cents, status,
	       shipping_address, tracking_code, idempotency_key, created_at, paid_at, shipped_at
	FROM orders`

func scanOrder(row *sql.Row, o *models.Order) error {
	return row.Scan(
		&o.ID, &o.CustomerID, &o.GenerationID, &o.ProductType, &o.Size, &o.PriceCents,
		&o.Status, &o.ShippingAddress, &o.TrackingCode, &o.IdempotencyKey,
		&o.CreatedAt, &o.PaidAt, &o.ShippedAt,
	)
}

// --- pix charges ---

func (d *DatabaseClient) CreatePixCharge(c *models.PixCharge) error {
	query := `
		INSERT INTO pix_charges (pix_id, order_id, br_code, br_code_base64, amount_cents,
		                         status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	_, err := d.db.Exec(query,
		c.PixID, c.OrderID, c.BRCode, c.BRCodeBase64, c.AmountCents, c.Status, c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pix charge: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetPixCharge(pixID string) (*models.PixCharge, error) {
	query := `
		SELECT pix_id, order_id, br_code, br_code_base64, amount_cents, status, expires_at, created_at
		FROM pix_charges
		WHERE pix_id = $1`

	var c models.PixCharge
	err := d.db.QueryRow(query, pixID).Scan(
		&c.PixID, &c.OrderID, &c.BRCode, &c.BRCodeBase64, &c.AmountCents,
		&c.Status, &c.ExpiresAt, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "Cobrança PIX não encontrada")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pix charge: %w", err)
	}
	return &c, nil
}

// PendingPixChargeForOrder returns the order's PENDING charge, expired or
// not, or (nil, nil) when there is none. The partial unique index guarantees
// at most one PENDING charge per order, so the predicate here must match the
// index exactly: callers decide whether a lapsed row is reusable.
func (d *DatabaseClient) PendingPixChargeForOrder(orderID uuid.UUID) (*models.PixCharge, error) {
	query := `
		SELECT pix_id, order_id, br_code, br_code_base64, amount_cents, status, expires_at, created_at
		FROM pix_charges
		WHERE order_id = $1 AND status = 'PENDING'`

	var c models.PixCharge
	err := d.db.QueryRow(query, orderID).Scan(
		&c.PixID, &c.OrderID, &c.BRCode, &c.BRCodeBase64, &c.AmountCents,
		&c.Status, &c.ExpiresAt, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending pix charge: %w", err)
	}
	return &c, nil
}

// SettlePixCharge moves a PENDING charge to a terminal status. Returns false
// when the charge was already settled.
func (d *DatabaseClient) SettlePixCharge(pixID string, status models.ChargeStatus) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("cannot settle pix charge to non-terminal status %q", status)
	}

	query := `
		UPDATE pix_charges
		SET status = $2
		WHERE pix_id = $1 AND status = 'PENDING'`

	result, err := d.db.Exec(query, pixID, status)
	if err != nil {
		return false, fmt.Errorf("failed to settle pix charge: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rows == 1, nil
}
