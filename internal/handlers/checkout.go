package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout godoc
// @Summary     Create an order with a PIX charge
// @Description Validates the request, creates the order in pending_payment and
// @Description returns the PIX copy-and-paste code plus the QR image. Send an
// @Description Idempotency-Key header to make retries safe.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Client-chosen key for safe retries"
// @Param       request body models.CheckoutRequest true "Product, generation and customer data"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Requisição inválida"))
		return
	}

	result, err := h.checkout.CreateOrder(c.Request.Context(), &req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.CheckoutResponse{
		Success: true,
		OrderID: result.Order.ID.String(),
		Amount:  result.Order.PriceCents,
	}
	if result.Charge != nil {
		resp.PixID = result.Charge.PixID
		resp.BRCode = result.Charge.BRCode
		resp.BRCodeBase64 = result.Charge.BRCodeBase64
	}

	c.JSON(http.StatusOK, resp)
}
