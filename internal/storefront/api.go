// Package storefront est le cœur client de la boutique : panier local
// synchronisé, passage de commande (COD ou paiement en ligne) et cycle de vie
// des commandes vu par le client et par l'admin.
package storefront

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

//go:generate mockgen -source=./api.go -package=storefrontmocks -destination=./mocks/api.mock.go

// API : une méthode par opération REST consommée
type API interface {
	CurrentUser(ctx context.Context) (models.User, error)

	FetchCart(ctx context.Context) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, req AddItemRequest) (models.CartItem, error)
	ChangeQuantity(ctx context.Context, itemID string, change int) (models.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID string) error

	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error)
	CreatePaymentOrder(ctx context.Context, amount decimal.Decimal) (PaymentOrder, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (string, error)

	ListAllOrders(ctx context.Context, q OrderQuery) ([]models.Order, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	ApproveOrder(ctx context.Context, orderID string) error
	ShipOrder(ctx context.Context, orderID string) error
	DeliverOrder(ctx context.Context, orderID string) error
	RequestReturn(ctx context.Context, orderID, reason string) error
	ApproveReturn(ctx context.Context, orderID string) error
	DenyReturn(ctx context.Context, orderID string) error
	CancelReturn(ctx context.Context, orderID string) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// PaymentWidget : interface de paiement hébergée (Stripe Elements côté navigateur).
// Une confirmation nil signifie que l'utilisateur a fermé le widget.
type PaymentWidget interface {
	Open(ctx context.Context, req WidgetRequest) (*PaymentConfirmation, error)
}

type AddItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type PlaceOrderRequest struct {
	Items         []models.CartItem    `json:"items"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	DeliveryInfo  models.DeliveryInfo  `json:"deliveryInfo"`
}

type PaymentOrder struct {
	ID           string          `json:"paymentOrderId"`
	ClientSecret string          `json:"clientSecret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	PublicKey    string          `json:"publicKey"`
}

type VerifyPaymentRequest struct {
	PlaceOrderRequest
	PaymentOrderID string `json:"paymentOrderId"`
	ClientSecret   string `json:"clientSecret"`
}

type OrderQuery struct {
	Query  string
	Status models.OrderStatus
}

type WidgetRequest struct {
	PublicKey    string
	ClientSecret string
	Amount       decimal.Decimal
	Currency     string
	Prefill      Prefill
}

type Prefill struct {
	Name  string
	Email string
	Phone string
}

// PaymentConfirmation : ce que le widget renvoie une fois le paiement confirmé
type PaymentConfirmation struct {
	PaymentOrderID string
	ClientSecret   string
}
