package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/orderstate"
	"storefront_back_end/internal/service"
)

// OrderHandler : commandes vues par le client
type OrderHandler struct {
	lifecycle *service.Lifecycle
}

func NewOrderHandler(lifecycle *service.Lifecycle) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle}
}

// GET /api/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	orders, err := h.lifecycle.ListForUser(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	order, err := h.lifecycle.Get(c.Request.Context(), userID, c.Param("id"), false)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/:id/receipt
func (h *OrderHandler) Receipt(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	url, html, err := h.lifecycle.Receipt(c.Request.Context(), userID, c.Param("id"), false)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if url != "" {
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// POST /api/orders/returns {orderId, reason}
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input struct {
		OrderID string `json:"orderId" binding:"required"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId requis"})
		return
	}
	order, err := h.lifecycle.RequestReturn(c.Request.Context(), userID, input.OrderID, input.Reason)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /api/orders/:id/return/cancel
func (h *OrderHandler) CancelReturn(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	order, err := h.lifecycle.CloseReturn(c.Request.Context(), userID, c.Param("id"), orderstate.ActionCancelReturn, false)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
