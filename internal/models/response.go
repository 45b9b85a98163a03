package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	Success     bool   `json:"success"`
	StoragePath string `json:"storagePath"`
	MimeType    string `json:"mimeType"`
	PublicURL   string `json:"publicUrl,omitempty"`
}

type GenerateResponse struct {
	Success          bool   `json:"success"`
	GenerationID     string `json:"generationId"`
	WatermarkedImage string `json:"watermarkedImage"`
}

type CheckoutResponse struct {
	Success      bool   `json:"success"`
	OrderID      string `json:"orderId"`
	PixID        string `json:"pixId"`
	BRCode       string `json:"brCode"`
	BRCodeBase64 string `json:"brCodeBase64"`
	// Amount is the server-computed price in cents.
	Amount int64 `json:"amount"`
}

type PaymentStatusResponse struct {
	Status string `json:"status"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AccountOrderResponse struct {
	OrderID      string     `json:"order_id"`
	ProductType  string     `json:"product_type"`
	Size         string     `json:"size,omitempty"`
	PriceCents   int64      `json:"price_cents"`
	Status       string     `json:"status"`
	TrackingCode string     `json:"tracking_code,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	ShippedAt    *time.Time `json:"shipped_at,omitempty"`
	Style        string     `json:"style"`
	PreviewURL   string     `json:"preview_url,omitempty"`
}

type AccountOrdersResponse struct {
	Orders []AccountOrderResponse `json:"orders"`
}
