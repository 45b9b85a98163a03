package models

type GenerateRequest struct {
	// StoragePath points at a previously uploaded original in the originals bucket.
	StoragePath string `json:"storagePath"`
	// Style is one of renaissance, baroque, victorian. Unknown values fall
	// back to the default style instead of failing.
	Style string `json:"style,omitempty"`
}

type CustomerInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Cellphone string `json:"cellphone"`
	TaxID     string `json:"taxId"`
}

type CheckoutRequest struct {
	ProductType     string       `json:"productType"`
	Size            string       `json:"size,omitempty"`
	GenerationID    string       `json:"generationId"`
	Customer        CustomerInfo `json:"customer"`
	Password        string       `json:"password"`
	ShippingAddress *Address     `json:"shippingAddress,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
