package payment

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
)

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// StripeGateway crée et relit des PaymentIntent Stripe
type StripeGateway struct {
	publicKey     string
	webhookSecret string
	currency      string
}

func NewStripeGateway(secretKey, publicKey, webhookSecret, currency string) *StripeGateway {
	stripe.Key = secretKey
	if webhookSecret == "" {
		logger.L().Warn("⚠️ Pas de STRIPE_WEBHOOK_SECRET, webhook désactivé")
	}
	return &StripeGateway{publicKey: publicKey, webhookSecret: webhookSecret, currency: currency}
}

func (g *StripeGateway) PublicKey() string { return g.publicKey }
func (g *StripeGateway) Currency() string  { return g.currency }

func (g *StripeGateway) CreatePaymentOrder(ctx context.Context, req CreateRequest) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id": req.UserID,
			"email":   req.Email,
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, errors.Wrap(err, "création PaymentIntent")
	}
	logger.L().Info("💳 PaymentIntent créé",
		zap.String("payment_ref", pi.ID),
		zap.Int64("amount", pi.Amount),
		zap.String("user_id", req.UserID))
	return toIntent(pi), nil
}

func (g *StripeGateway) Retrieve(ctx context.Context, ref string) (Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(ref, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return Intent{}, ErrUnknownPayment
		}
		return Intent{}, errors.Wrap(err, "lecture PaymentIntent")
	}
	return toIntent(pi), nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (Event, error) {
	if g.webhookSecret == "" {
		return Event{}, errors.New("webhook non configuré")
	}
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return Event{}, errors.Wrap(err, "signature Stripe invalide")
	}

	out := Event{Type: string(event.Type)}
	if event.Type != EventPaymentSucceeded && event.Type != EventPaymentFailed {
		return out, nil
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return Event{}, errors.Wrap(err, "décodage PaymentIntent")
	}
	out.Intent = toIntent(&pi)
	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) Intent {
	return Intent{
		Ref:          pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Succeeded:    pi.Status == stripe.PaymentIntentStatusSucceeded,
		UserID:       pi.Metadata["user_id"],
		Email:        pi.Metadata["email"],
	}
}
