package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/services"
)

type StatusHandler struct {
	payments *services.PaymentService
}

func NewStatusHandler(payments *services.PaymentService) *StatusHandler {
	return &StatusHandler{payments: payments}
}

// PaymentStatus godoc
// @Summary     Check a PIX charge status
// @Description Polls the payment gateway for the charge status and settles the
// @Description order when the charge reaches a terminal state. The simulate
// @Description flag pays the charge without a real transfer; it is ignored in
// @Description production.
// @Tags        checkout
// @Produce     json
// @Param       pixId query string true "PIX charge id"
// @Param       orderId query string true "Order id (UUID)"
// @Param       simulate query bool false "Simulate payment (non-production only)"
// @Success     200 {object} models.PaymentStatusResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /checkout/status [get]
func (h *StatusHandler) PaymentStatus(c *gin.Context) {
	pixID := c.Query("pixId")
	if pixID == "" {
		respondError(c, apperr.New(apperr.ErrValidation, "Parâmetro pixId é obrigatório"))
		return
	}

	orderID, err := uuid.Parse(c.Query("orderId"))
	if err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Parâmetro orderId inválido"))
		return
	}

	simulate := c.Query("simulate") == "true"

	status, err := h.payments.CheckStatus(c.Request.Context(), pixID, orderID, simulate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PaymentStatusResponse{Status: string(status)})
}
