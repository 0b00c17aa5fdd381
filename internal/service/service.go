// Package service porte la logique métier des commandes : passage de commande
// (COD ou paiement en ligne vérifié) et cycle de vie côté administration / client.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"storefront_back_end/internal/models"
)

//go:generate mockgen -source=./service.go -package=svcmocks -destination=./mocks/service.mock.go

// OrderIndex : index de recherche des commandes (Elastic), optionnel
type OrderIndex interface {
	Index(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, orderID string) error
	Search(ctx context.Context, query string) ([]string, error)
}

// ReceiptStore : archive des reçus (MinIO), optionnel
type ReceiptStore interface {
	Put(ctx context.Context, orderID string, html []byte) error
	URL(ctx context.Context, orderID string) (string, error)
	Delete(ctx context.Context, orderID string) error
}

var (
	ErrEmptyCart     = errors.New("panier vide")
	ErrCartChanged   = errors.New("le panier a changé, rechargez-le")
	ErrInvalidMethod = errors.New("mode de paiement invalide")
	ErrForbidden     = errors.New("commande d'un autre utilisateur")
	ErrAmountChanged = errors.New("le montant ne correspond plus au panier")
)

// ValidationError : champs de livraison manquants
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("champs requis manquants: %s", strings.Join(e.Fields, ", "))
}

// PaymentError : la preuve de paiement n'a pas pu être validée
type PaymentError struct {
	Ref string
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("paiement %s non vérifié: %v", e.Ref, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
