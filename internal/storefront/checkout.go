package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/pricing"
)

type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateValidating
	StatePlacingOrder
	StateCreatingRemotePaymentOrder
	StateAwaitingPaymentHandshake
	StateVerifyingPayment
	StateCompleted
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StatePlacingOrder:
		return "PlacingOrder"
	case StateCreatingRemotePaymentOrder:
		return "CreatingRemotePaymentOrder"
	case StateAwaitingPaymentHandshake:
		return "AwaitingPaymentHandshake"
	case StateVerifyingPayment:
		return "VerifyingPayment"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// CheckoutSession transforme le panier en commande, une seule fois par action
// utilisateur. Le panier local n'est vidé qu'après la réponse positive du
// serveur à l'appel qui crée la commande.
type CheckoutSession struct {
	api     API
	cart    *CartStore
	session *Session
	widget  PaymentWidget

	mu      sync.Mutex
	state   CheckoutState
	orderID string
	lastErr error
}

func NewCheckoutSession(api API, cart *CartStore, session *Session, widget PaymentWidget) *CheckoutSession {
	return &CheckoutSession{api: api, cart: cart, session: session, widget: widget}
}

func (c *CheckoutSession) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OrderID : commande créée, vide tant que la session n'est pas Completed
func (c *CheckoutSession) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

func (c *CheckoutSession) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Reset repasse une session Completed à Idle
func (c *CheckoutSession) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateCompleted {
		c.state = StateIdle
		c.orderID = ""
		c.lastErr = nil
	}
}

// PlaceOrder passe la commande. Un appel pendant qu'un autre est en cours
// retourne ErrCheckoutInProgress sans aucun appel réseau.
func (c *CheckoutSession) PlaceOrder(ctx context.Context, method models.PaymentMethod, delivery models.DeliveryInfo) (string, error) {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateCompleted {
		c.mu.Unlock()
		return "", ErrCheckoutInProgress
	}
	c.state = StateValidating
	c.orderID = ""
	c.lastErr = nil
	c.mu.Unlock()

	if missing := delivery.MissingFields(); len(missing) > 0 {
		return c.fail(&ValidationError{Fields: missing})
	}
	if !method.Valid() {
		return c.fail(&ValidationError{Fields: []string{"paymentMethod"}})
	}

	// Plus aucune mutation jusqu'à la fin : l'instantané envoyé doit rester celui du serveur.
	// Les +/- déjà en file doivent l'avoir atteint avant la lecture.
	c.cart.freeze()
	if err := c.cart.Flush(ctx); err != nil {
		return c.fail(err)
	}
	items := c.cart.Items()
	if len(items) == 0 {
		return c.fail(ErrEmptyCart)
	}
	order := PlaceOrderRequest{Items: items, PaymentMethod: method, DeliveryInfo: delivery}

	if method == models.PaymentCOD {
		return c.placeCOD(ctx, order)
	}
	return c.payOnline(ctx, order)
}

func (c *CheckoutSession) placeCOD(ctx context.Context, order PlaceOrderRequest) (string, error) {
	c.setState(StatePlacingOrder)
	orderID, err := c.api.PlaceOrder(ctx, order)
	if err != nil {
		return c.fail(err)
	}
	return c.complete(orderID)
}

// payOnline : ordre de paiement, widget hébergé, puis vérification serveur
func (c *CheckoutSession) payOnline(ctx context.Context, order PlaceOrderRequest) (string, error) {
	c.setState(StateCreatingRemotePaymentOrder)
	amount := pricing.Calculate(order.Items).FinalAmount.Round(2)
	po, err := c.api.CreatePaymentOrder(ctx, amount)
	if err != nil {
		return c.fail(&PaymentInitError{Err: err})
	}

	c.setState(StateAwaitingPaymentHandshake)
	confirmation, err := c.widget.Open(ctx, WidgetRequest{
		PublicKey:    po.PublicKey,
		ClientSecret: po.ClientSecret,
		Amount:       po.Amount,
		Currency:     po.Currency,
		Prefill:      c.prefill(ctx, order.DeliveryInfo),
	})
	if err != nil {
		return c.fail(&PaymentInitError{Err: err})
	}
	if confirmation == nil {
		return c.fail(ErrPaymentAbandoned)
	}

	c.setState(StateVerifyingPayment)
	orderID, err := c.api.VerifyPayment(ctx, VerifyPaymentRequest{
		PlaceOrderRequest: order,
		PaymentOrderID:    confirmation.PaymentOrderID,
		ClientSecret:      confirmation.ClientSecret,
	})
	if err != nil {
		logger.L().Error("❌ Paiement non vérifié, commande non créée",
			zap.String("payment_order_id", confirmation.PaymentOrderID), zap.Error(err))
		return c.fail(&PaymentVerificationError{PaymentRef: confirmation.PaymentOrderID, Err: err})
	}
	return c.complete(orderID)
}

// prefill : nom et téléphone saisis, e-mail du profil si disponible
func (c *CheckoutSession) prefill(ctx context.Context, delivery models.DeliveryInfo) Prefill {
	p := Prefill{Name: delivery.FullName, Phone: delivery.Phone}
	if c.session == nil {
		return p
	}
	user, err := c.session.User(ctx)
	if err != nil {
		logger.L().Warn("⚠️ Profil indisponible pour le pré-remplissage", zap.Error(err))
		return p
	}
	p.Email = user.Email
	return p
}

func (c *CheckoutSession) setState(state CheckoutState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *CheckoutSession) fail(err error) (string, error) {
	c.cart.unfreeze()
	c.mu.Lock()
	c.state = StateIdle
	c.lastErr = err
	c.mu.Unlock()
	return "", err
}

func (c *CheckoutSession) complete(orderID string) (string, error) {
	c.cart.Clear()
	c.cart.unfreeze()
	c.mu.Lock()
	c.state = StateCompleted
	c.orderID = orderID
	c.mu.Unlock()
	logger.L().Info("✅ Commande passée", zap.String("order_id", orderID))
	return orderID, nil
}
