package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/audit"
	"storefront_back_end/internal/handlers/admin"
	"storefront_back_end/internal/handlers/checkout"
	"storefront_back_end/internal/handlers/user"
	"storefront_back_end/internal/middleware"
)

type Handlers struct {
	Auth       *user.AuthHandler
	Cart       *user.CartHandler
	CartSync   *user.CartSync
	Orders     *user.OrderHandler
	Checkout   *checkout.Handler
	AdminOrder *admin.OrderHandler
	Audit      audit.Store
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret []byte, limiter *middleware.RateLimiter) {
	api := r.Group("/api")

	// Public
	api.POST("/auth/login", limiter.Login(), h.Auth.Login)
	// Stripe signe le body, pas de JWT ici
	api.POST("/payments/webhook", h.Checkout.Webhook)

	authed := api.Group("", middleware.AuthRequired(jwtSecret))
	authed.GET("/users/me", h.Auth.Me)

	// Panier
	cart := authed.Group("/cart")
	cart.GET("", h.Cart.Get)
	cart.GET("/ws", h.CartSync.Serve)
	cart.POST("", limiter.Cart(), h.Cart.Add)
	cart.PATCH("/:itemId", limiter.Cart(), h.Cart.ChangeQuantity)
	cart.DELETE("/:itemId", limiter.Cart(), h.Cart.Remove)

	// Checkout
	authed.POST("/orders", h.Checkout.PlaceOrder)
	authed.POST("/payments/orders", h.Checkout.CreatePaymentOrder)
	authed.POST("/payments/verify", h.Checkout.VerifyPayment)

	// Commandes client
	authed.GET("/orders", h.Orders.ListMine)
	authed.GET("/orders/:id", h.Orders.Get)
	authed.GET("/orders/:id/receipt", h.Orders.Receipt)
	authed.POST("/orders/returns", h.Orders.RequestReturn)
	authed.PUT("/orders/:id/return/cancel", h.Orders.CancelReturn)

	// Admin
	adm := authed.Group("/admin", middleware.RequireAdmin, audit.Middleware(h.Audit))
	adm.GET("/orders", h.AdminOrder.List)
	adm.PUT("/orders/:id/approve", h.AdminOrder.Approve)
	adm.PUT("/orders/:id/ship", h.AdminOrder.Ship)
	adm.PUT("/orders/:id/deliver", h.AdminOrder.Deliver)
	adm.PUT("/orders/:id/return/approve", h.AdminOrder.ApproveReturn)
	adm.PUT("/orders/:id/return/deny", h.AdminOrder.DenyReturn)
	adm.DELETE("/orders/:id", h.AdminOrder.Delete)
}
