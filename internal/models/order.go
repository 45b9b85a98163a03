package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ProductType string

const (
	ProductDigital ProductType = "digital"
	ProductPrint   ProductType = "print"
	ProductCanvas  ProductType = "canvas"
)

func (p ProductType) Valid() bool {
	switch p {
	case ProductDigital, ProductPrint, ProductCanvas:
		return true
	}
	return false
}

// RequiresShipping reports whether the product is a physical item that needs
// a shipping address.
func (p ProductType) RequiresShipping() bool {
	return p == ProductPrint || p == ProductCanvas
}

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// CanTransition encodes the forward-only order lifecycle:
// pending_payment -> paid -> processing -> shipped -> delivered, plus
// pending_payment -> cancelled. Everything else is rejected, so a status
// never regresses and paid is never entered twice.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderStatusPendingPayment:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// Address is the shipping address required for physical products.
// Complement is the only optional field.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Complete reports whether every required address field is present.
func (a Address) Complete() bool {
	return a.Street != "" && a.Number != "" && a.Neighborhood != "" &&
		a.City != "" && a.State != "" && a.Zip != ""
}

type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	GenerationID    uuid.UUID
	ProductType     ProductType
	Size            sql.NullString
	PriceCents      int64
	Status          OrderStatus
	ShippingAddress json.RawMessage
	TrackingCode    sql.NullString
	IdempotencyKey  sql.NullString
	CreatedAt       time.Time
	PaidAt          sql.NullTime
	ShippedAt       sql.NullTime
}

// AccountOrder is the customer-dashboard projection of an order joined with
// its generation record.
type AccountOrder struct {
	OrderID              uuid.UUID
	ProductType          ProductType
	Size                 sql.NullString
	PriceCents           int64
	Status               OrderStatus
	TrackingCode         sql.NullString
	CreatedAt            time.Time
	PaidAt               sql.NullTime
	ShippedAt            sql.NullTime
	Style                string
	WatermarkedImagePath sql.NullString
}
