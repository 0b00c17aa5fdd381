// Package checkout expose le passage de commande : COD direct, ou paiement en
// ligne en trois temps (ordre de paiement, widget côté client, vérification).
package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/payment"
	"storefront_back_end/internal/service"
)

type Handler struct {
	checkout *service.Checkout
	gateway  payment.Gateway
}

func NewHandler(checkout *service.Checkout, gateway payment.Gateway) *Handler {
	return &Handler{checkout: checkout, gateway: gateway}
}

type placeInput struct {
	Items         []models.CartItem    `json:"items"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	DeliveryInfo  models.DeliveryInfo  `json:"deliveryInfo"`
}

func (in placeInput) request(c *gin.Context, userID string) service.PlaceRequest {
	return service.PlaceRequest{
		UserID:   userID,
		Email:    c.GetString(middleware.CtxEmail),
		Method:   in.PaymentMethod,
		Delivery: in.DeliveryInfo,
		Items:    in.Items,
	}
}

// POST /api/orders
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input placeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}
	order, err := h.checkout.PlaceCOD(c.Request.Context(), input.request(c, userID))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderId": order.ID})
}

// POST /api/payments/orders {amount}
func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
		return
	}
	intent, err := h.checkout.CreatePaymentOrder(c.Request.Context(), userID, c.GetString(middleware.CtxEmail), input.Amount)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paymentOrderId": intent.Ref,
		"clientSecret":   intent.ClientSecret,
		"amount":         decimal.New(intent.Amount, -2),
		"currency":       intent.Currency,
		"publicKey":      h.gateway.PublicKey(),
	})
}

// POST /api/payments/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input struct {
		placeInput
		PaymentOrderID string `json:"paymentOrderId" binding:"required"`
		ClientSecret   string `json:"clientSecret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preuve de paiement manquante"})
		return
	}
	order, err := h.checkout.VerifyAndPlace(c.Request.Context(), service.VerifyRequest{
		PlaceRequest: input.request(c, userID),
		PaymentRef:   input.PaymentOrderID,
		ClientSecret: input.ClientSecret,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": order.ID})
}

// POST /api/payments/webhook
func (h *Handler) Webhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}
	event, err := h.gateway.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.L().Warn("❌ Webhook rejeté", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}
	logger.L().Info("📥 Événement paiement reçu", zap.String("type", event.Type))
	if err := h.checkout.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
