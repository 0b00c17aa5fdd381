package payment

import (
	"context"

	"github.com/pkg/errors"
)

//go:generate mockgen -source=./gateway.go -package=paymentmocks -destination=./mocks/gateway.mock.go

var (
	ErrNotSucceeded   = errors.New("paiement non confirmé")
	ErrOwnerMismatch  = errors.New("paiement rattaché à un autre utilisateur")
	ErrAmountMismatch = errors.New("montant du paiement différent du total de la commande")
	ErrSecretMismatch = errors.New("signature du paiement invalide")
	ErrUnknownPayment = errors.New("paiement introuvable")
)

// Intent : vue du paiement distant, indépendante du prestataire.
// Amount est exprimé en unités mineures (centimes / paise).
type Intent struct {
	Ref          string
	ClientSecret string
	Amount       int64
	Currency     string
	Succeeded    bool
	UserID       string
	Email        string
}

type CreateRequest struct {
	Amount int64
	UserID string
	Email  string
}

// Event : événement webhook déjà authentifié
type Event struct {
	Type   string
	Intent Intent
}

type Gateway interface {
	CreatePaymentOrder(ctx context.Context, req CreateRequest) (Intent, error)
	Retrieve(ctx context.Context, ref string) (Intent, error)
	ParseWebhook(payload []byte, signature string) (Event, error)
	PublicKey() string
	Currency() string
}

// Check valide la preuve de paiement renvoyée par le widget contre l'état distant.
func (i Intent) Check(userID string, amount int64, clientSecret string) error {
	switch {
	case !i.Succeeded:
		return ErrNotSucceeded
	case i.UserID != userID:
		return ErrOwnerMismatch
	case i.ClientSecret == "" || i.ClientSecret != clientSecret:
		return ErrSecretMismatch
	case i.Amount != amount:
		return ErrAmountMismatch
	}
	return nil
}
