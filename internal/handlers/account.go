package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/config"
	"fotofocinho-backend/internal/middleware"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/services"
	"fotofocinho-backend/internal/supabase"
)

const tokenTTL = 24 * time.Hour

type AccountHandler struct {
	store   services.Store
	storage *supabase.StorageClient
	cfg     *config.Config
}

func NewAccountHandler(store services.Store, storage *supabase.StorageClient, cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		store:   store,
		storage: storage,
		cfg:     cfg,
	}
}

// Login godoc
// @Summary     Customer login
// @Description Exchanges email and password for a Bearer token. Accounts are
// @Description created during checkout.
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, apperr.New(apperr.ErrValidation, "Email e senha são obrigatórios"))
		return
	}

	customer, err := h.store.GetCustomerByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	// Same answer for unknown email and wrong password.
	if customer == nil {
		respondError(c, apperr.New(apperr.ErrUnauthorized, "Email ou senha incorretos"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, apperr.New(apperr.ErrUnauthorized, "Email ou senha incorretos"))
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": customer.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		log.Printf("[account] token signing failed customer_id=%s err=%v", customer.ID, err)
		respondError(c, apperr.New(apperr.ErrUpstream, "Falha ao gerar token"))
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: signed})
}

// ListOrders godoc
// @Summary     List the customer's orders
// @Tags        account
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AccountOrdersResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /account/orders [get]
func (h *AccountHandler) ListOrders(c *gin.Context) {
	customerID, ok := customerIDFromContext(c)
	if !ok {
		respondError(c, apperr.New(apperr.ErrUnauthorized, "Sessão inválida"))
		return
	}

	orders, err := h.store.ListOrdersByCustomer(customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.AccountOrdersResponse{Orders: make([]models.AccountOrderResponse, 0, len(orders))}
	for _, o := range orders {
		item := models.AccountOrderResponse{
			OrderID:     o.OrderID.String(),
			ProductType: string(o.ProductType),
			PriceCents:  o.PriceCents,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt,
			Style:       o.Style,
		}
		if o.Size.Valid {
			item.Size = o.Size.String
		}
		if o.TrackingCode.Valid {
			item.TrackingCode = o.TrackingCode.String
		}
		if o.PaidAt.Valid {
			t := o.PaidAt.Time
			item.PaidAt = &t
		}
		if o.ShippedAt.Valid {
			t := o.ShippedAt.Time
			item.ShippedAt = &t
		}
		if o.WatermarkedImagePath.Valid {
			item.PreviewURL = h.storage.PublicURL(supabase.BucketWatermarked, o.WatermarkedImagePath.String)
		}
		resp.Orders = append(resp.Orders, item)
	}

	c.JSON(http.StatusOK, resp)
}

// Download godoc
// @Summary     Download the clean portrait
// @Description Streams the unwatermarked image for a paid order owned by the
// @Description logged-in customer.
// @Tags        account
// @Produce     image/jpeg
// @Security    Bearer
// @Param       orderId query string true "Order id (UUID)"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /account/download [get]
func (h *AccountHandler) Download(c *gin.Context) {
	customerID, ok := customerIDFromContext(c)
	if !ok {
		respondError(c, apperr.New(apperr.ErrUnauthorized, "Sessão inválida"))
		return
	}

	orderID, err := uuid.Parse(c.Query("orderId"))
	if err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Parâmetro orderId inválido"))
		return
	}

	order, err := h.store.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	// Don't leak other customers' order ids.
	if order.CustomerID != customerID {
		respondError(c, apperr.New(apperr.ErrNotFound, "Pedido não encontrado"))
		return
	}
	if order.Status == models.OrderStatusPendingPayment || order.Status == models.OrderStatusCancelled {
		respondError(c, apperr.New(apperr.ErrConflict, "O pedido ainda não foi pago"))
		return
	}

	gen, err := h.store.GetGeneration(order.GenerationID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !gen.GeneratedImagePath.Valid {
		respondError(c, apperr.New(apperr.ErrNotFound, "Imagem não encontrada"))
		return
	}

	data, err := h.storage.Download(supabase.BucketGenerated, gen.GeneratedImagePath.String)
	if err != nil {
		log.Printf("[account] clean image download failed order_id=%s err=%v", orderID, err)
		respondError(c, apperr.New(apperr.ErrUpstream, "Falha ao baixar a imagem"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="retrato-`+orderID.String()+`.jpg"`)
	c.Data(http.StatusOK, "image/jpeg", data)
}

func customerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.CustomerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
