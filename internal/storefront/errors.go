package storefront

import (
	"errors"
	"fmt"
	"strings"

	"storefront_back_end/internal/orderstate"
)

var (
	ErrCheckoutInProgress = errors.New("une commande est déjà en cours de validation")
	ErrPaymentAbandoned   = errors.New("paiement abandonné")
	ErrNotConfirmed       = errors.New("suppression non confirmée")
	ErrOperationInFlight  = errors.New("opération déjà en cours sur cette commande")
	ErrUnknownItem        = errors.New("article absent du panier")
	ErrEmptyCart          = errors.New("panier vide")
	ErrCartFrozen         = errors.New("panier verrouillé pendant le passage de commande")

	// Vérifiés localement avant tout appel réseau
	ErrReasonRequired = orderstate.ErrReasonRequired
	ErrNotDelivered   = orderstate.ErrNotDelivered
)

// ValidationError : informations de livraison incomplètes, aucun appel réseau émis
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "champs de livraison manquants : " + strings.Join(e.Fields, ", ")
}

// RemoteError : réponse non-2xx (Status > 0) ou échec de transport (Status == 0)
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("serveur injoignable : %v", e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("erreur serveur (%d)", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// PaymentInitError : l'ordre de paiement ou le widget n'a pas pu être initialisé.
// Rien n'a été débité.
type PaymentInitError struct {
	Err error
}

func (e *PaymentInitError) Error() string {
	return "impossible d'initialiser le paiement : " + e.Err.Error()
}

func (e *PaymentInitError) Unwrap() error {
	return e.Err
}

// PaymentVerificationError : le paiement a pu être débité mais aucune commande n'existe
type PaymentVerificationError struct {
	PaymentRef string
	Err        error
}

func (e *PaymentVerificationError) Error() string {
	return fmt.Sprintf("votre paiement (réf. %s) a peut-être été débité mais la commande n'a pas été créée, "+
		"contactez le support avant de réessayer : %v", e.PaymentRef, e.Err)
}

func (e *PaymentVerificationError) Unwrap() error {
	return e.Err
}
