package repository

import (
	"context"

	"github.com/pkg/errors"

	"storefront_back_end/internal/models"
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=./mocks/repository.mock.go

var (
	ErrNotFound = errors.New("ressource introuvable")
	// ErrConflict : la ligne n'était plus dans l'état attendu (transition conditionnelle refusée)
	ErrConflict = errors.New("état modifié entre-temps")
)

type CartRepository interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	// Add fusionne avec une ligne existante (même produit, même taille) et retourne la ligne obtenue
	Add(ctx context.Context, userID string, item models.CartItem) (models.CartItem, error)
	// ChangeQuantity applique delta puis borne la quantité dans [1, 10]
	ChangeQuantity(ctx context.Context, userID, itemID string, delta int) (models.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type ProductRepository interface {
	Get(ctx context.Context, productID string) (models.Product, error)
}

type UserRepository interface {
	Get(ctx context.Context, userID string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
	Get(ctx context.Context, orderID string) (models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	// ClaimPaymentRef réserve une référence de paiement pour une commande.
	// Si elle est déjà prise, retourne l'ID de la commande existante et claimed=false.
	ClaimPaymentRef(ctx context.Context, paymentRef, orderID string) (existingOrderID string, claimed bool, err error)
	ReleasePaymentRef(ctx context.Context, paymentRef string) error
	// FindByPaymentRef retourne l'ID de la commande rattachée, ErrNotFound sinon
	FindByPaymentRef(ctx context.Context, paymentRef string) (string, error)
	UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus) error
	RequestReturn(ctx context.Context, orderID, reason string) error
	UpdateReturnStatus(ctx context.Context, orderID string, from, to models.ReturnStatus) error
	Delete(ctx context.Context, orderID string) error
}
