package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/orderstate"
	"storefront_back_end/internal/service"
)

// OrderHandler : gestion des commandes, routes protégées par RequireAdmin
type OrderHandler struct {
	lifecycle *service.Lifecycle
}

func NewOrderHandler(lifecycle *service.Lifecycle) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle}
}

// GET /api/admin/orders?q=&status=
func (h *OrderHandler) List(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusShipped, models.StatusDelivered:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}
	list, err := h.lifecycle.ListAll(c.Request.Context(), service.ListQuery{Query: c.Query("q"), Status: status})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/admin/orders/:id/approve
func (h *OrderHandler) Approve(c *gin.Context) {
	h.advance(c, orderstate.ActionApprove)
}

// PUT /api/admin/orders/:id/ship
func (h *OrderHandler) Ship(c *gin.Context) {
	h.advance(c, orderstate.ActionShip)
}

// PUT /api/admin/orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.advance(c, orderstate.ActionDeliver)
}

// PUT /api/admin/orders/:id/return/approve
func (h *OrderHandler) ApproveReturn(c *gin.Context) {
	h.closeReturn(c, orderstate.ActionApproveReturn)
}

// PUT /api/admin/orders/:id/return/deny
func (h *OrderHandler) DenyReturn(c *gin.Context) {
	h.closeReturn(c, orderstate.ActionDenyReturn)
}

// DELETE /api/admin/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.lifecycle.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}

func (h *OrderHandler) advance(c *gin.Context, action orderstate.Action) {
	order, err := h.lifecycle.Advance(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) closeReturn(c *gin.Context, action orderstate.Action) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	order, err := h.lifecycle.CloseReturn(c.Request.Context(), userID, c.Param("id"), action, true)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
