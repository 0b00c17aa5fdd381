package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/notify"
	"storefront_back_end/internal/payment"
	"storefront_back_end/internal/pricing"
	"storefront_back_end/internal/repository"
)

const sideEffectTimeout = 10 * time.Second

type Deps struct {
	Orders   repository.OrderRepository
	Carts    repository.CartRepository
	Users    repository.UserRepository
	Gateway  payment.Gateway
	Locker   cache.Locker
	Index    OrderIndex
	Receipts ReceiptStore
	Notifier notify.Notifier
}

// Checkout transforme le panier serveur en commande. Le panier Redis fait foi :
// les prix et le total sont recalculés ici, jamais repris du client.
type Checkout struct {
	Deps
	now func() time.Time
}

func NewCheckout(deps Deps) *Checkout {
	return &Checkout{Deps: deps, now: time.Now}
}

type PlaceRequest struct {
	UserID   string
	Email    string
	Method   models.PaymentMethod
	Delivery models.DeliveryInfo
	// Instantané du panier vu par le client ; nil = ne pas comparer
	Items []models.CartItem
}

type VerifyRequest struct {
	PlaceRequest
	PaymentRef   string
	ClientSecret string
}

func (r PlaceRequest) validate(method models.PaymentMethod) error {
	if missing := r.Delivery.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if r.Method != method {
		return ErrInvalidMethod
	}
	return nil
}

// PlaceCOD : commande à payer à la livraison
func (s *Checkout) PlaceCOD(ctx context.Context, req PlaceRequest) (models.Order, error) {
	if err := req.validate(models.PaymentCOD); err != nil {
		return models.Order{}, err
	}
	unlock, err := s.Locker.Lock(ctx, cache.LockKey("checkout", req.UserID))
	if err != nil {
		return models.Order{}, err
	}
	defer unlock()

	items, err := s.snapshot(ctx, req.UserID, req.Items)
	if err != nil {
		return models.Order{}, err
	}
	order := s.newOrder(req, items)
	if err := s.Orders.Create(ctx, order); err != nil {
		return models.Order{}, err
	}
	logger.L().Info("✅ Commande COD créée",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	s.finish(ctx, order, req.Email)
	return order, nil
}

// CreatePaymentOrder ouvre le paiement distant pour le total du panier serveur.
// amount est le total affiché au client : il doit correspondre.
func (s *Checkout) CreatePaymentOrder(ctx context.Context, userID, email string, amount decimal.Decimal) (payment.Intent, error) {
	items, err := s.Carts.Get(ctx, userID)
	if err != nil {
		return payment.Intent{}, err
	}
	if len(items) == 0 {
		return payment.Intent{}, ErrEmptyCart
	}
	total := pricing.Calculate(items).FinalAmount
	if !amount.Round(2).Equal(total.Round(2)) {
		return payment.Intent{}, ErrAmountChanged
	}
	return s.Gateway.CreatePaymentOrder(ctx, payment.CreateRequest{
		Amount: pricing.MinorUnits(total),
		UserID: userID,
		Email:  email,
	})
}

// VerifyAndPlace vérifie la preuve de paiement puis crée la commande.
// Une référence déjà rattachée à une commande renvoie cette commande.
func (s *Checkout) VerifyAndPlace(ctx context.Context, req VerifyRequest) (models.Order, error) {
	if err := req.validate(models.PaymentOnline); err != nil {
		return models.Order{}, err
	}
	if req.PaymentRef == "" {
		return models.Order{}, &PaymentError{Err: payment.ErrUnknownPayment}
	}
	unlock, err := s.Locker.Lock(ctx, cache.LockKey("checkout", req.UserID))
	if err != nil {
		return models.Order{}, err
	}
	defer unlock()

	if order, found, err := s.existingForRef(ctx, req.UserID, req.PaymentRef); err != nil || found {
		return order, err
	}

	intent, err := s.Gateway.Retrieve(ctx, req.PaymentRef)
	if err != nil {
		return models.Order{}, &PaymentError{Ref: req.PaymentRef, Err: err}
	}
	items, err := s.snapshot(ctx, req.UserID, req.Items)
	if err != nil {
		return models.Order{}, err
	}
	expected := pricing.MinorUnits(pricing.Calculate(items).FinalAmount)
	if err := intent.Check(req.UserID, expected, req.ClientSecret); err != nil {
		logger.L().Warn("❌ Paiement refusé à la vérification",
			zap.String("payment_ref", req.PaymentRef),
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return models.Order{}, &PaymentError{Ref: req.PaymentRef, Err: err}
	}

	order := s.newOrder(req.PlaceRequest, items)
	paid := models.PaymentPaid
	order.PaymentStatus = &paid
	order.PaymentRef = req.PaymentRef

	existingID, claimed, err := s.Orders.ClaimPaymentRef(ctx, req.PaymentRef, order.ID)
	if err != nil {
		return models.Order{}, err
	}
	if !claimed {
		logger.L().Info("🔁 Paiement déjà rattaché", zap.String("order_id", existingID))
		return s.Orders.Get(ctx, existingID)
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		if rerr := s.Orders.ReleasePaymentRef(ctx, req.PaymentRef); rerr != nil {
			logger.L().Error("❌ Libération référence paiement", zap.String("payment_ref", req.PaymentRef), zap.Error(rerr))
		}
		return models.Order{}, err
	}
	logger.L().Info("✅ Commande payée créée",
		zap.String("order_id", order.ID),
		zap.String("payment_ref", order.PaymentRef),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	s.finish(ctx, order, req.Email)
	return order, nil
}

// HandlePaymentEvent journalise les paiements encaissés sans commande rattachée
func (s *Checkout) HandlePaymentEvent(ctx context.Context, event payment.Event) error {
	switch event.Type {
	case payment.EventPaymentSucceeded:
		orderID, err := s.Orders.FindByPaymentRef(ctx, event.Intent.Ref)
		if errors.Is(err, repository.ErrNotFound) {
			logger.L().Warn("💸 Paiement encaissé sans commande",
				zap.String("payment_ref", event.Intent.Ref),
				zap.String("user_id", event.Intent.UserID),
				zap.Int64("amount", event.Intent.Amount))
			return nil
		}
		if err != nil {
			return err
		}
		logger.L().Info("✅ Paiement confirmé par webhook", zap.String("order_id", orderID))
	case payment.EventPaymentFailed:
		logger.L().Info("❌ Paiement échoué", zap.String("payment_ref", event.Intent.Ref))
	default:
		logger.L().Debug("ℹ️ Événement ignoré", zap.String("type", event.Type))
	}
	return nil
}

func (s *Checkout) existingForRef(ctx context.Context, userID, ref string) (models.Order, bool, error) {
	orderID, err := s.Orders.FindByPaymentRef(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Order{}, false, nil
	}
	if err != nil {
		return models.Order{}, false, err
	}
	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, false, err
	}
	if order.UserID != userID {
		return models.Order{}, false, &PaymentError{Ref: ref, Err: payment.ErrOwnerMismatch}
	}
	return order, true, nil
}

// snapshot lit le panier serveur et vérifie qu'il correspond à ce que le client a vu
func (s *Checkout) snapshot(ctx context.Context, userID string, submitted []models.CartItem) ([]models.CartItem, error) {
	items, err := s.Carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if submitted != nil && !sameLines(items, submitted) {
		return nil, ErrCartChanged
	}
	return models.CloneItems(items), nil
}

func sameLines(a, b []models.CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	qty := make(map[string]int, len(a))
	for _, item := range a {
		qty[item.ID] = item.Quantity
	}
	for _, item := range b {
		if q, ok := qty[item.ID]; !ok || q != item.Quantity {
			return false
		}
	}
	return true
}

func (s *Checkout) newOrder(req PlaceRequest, items []models.CartItem) models.Order {
	return models.Order{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Items:         items,
		TotalAmount:   pricing.Calculate(items).FinalAmount,
		PaymentMethod: req.Method,
		DeliveryInfo:  req.Delivery,
		Status:        models.StatusPending,
		CreatedAt:     s.now().UTC(),
	}
}

// finish vide le panier puis déclenche indexation, archivage du reçu et e-mail.
// La commande existe déjà : aucun de ces échecs n'est remonté.
func (s *Checkout) finish(ctx context.Context, order models.Order, email string) {
	if err := s.Carts.Clear(ctx, order.UserID); err != nil {
		logger.L().Error("❌ Vidage panier après commande", zap.String("user_id", order.UserID), zap.Error(err))
	} else {
		logger.L().Info("🧹 Panier vidé", zap.String("user_id", order.UserID))
	}
	go publish(ctx, s.Index, s.Receipts, order)

	if s.Notifier != nil && email != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.Notifier.OrderPlaced(ctx, order, email); err != nil {
				logger.L().Warn("⚠️ E-mail de confirmation non envoyé", zap.String("order_id", order.ID), zap.Error(err))
			}
		}()
	}
}

// publish met à jour l'index de recherche et le reçu archivé en parallèle.
// Lancé hors de la requête : ni le verrou ni la réponse n'attendent Elastic ou MinIO.
func publish(ctx context.Context, index OrderIndex, receipts ReceiptStore, order models.Order) {
	if index == nil && receipts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	var eg errgroup.Group
	if index != nil {
		eg.Go(func() error {
			return errors.Wrap(index.Index(ctx, order), "indexation")
		})
	}
	if receipts != nil {
		eg.Go(func() error {
			html, err := notify.RenderReceipt(order)
			if err != nil {
				return err
			}
			return errors.Wrap(receipts.Put(ctx, order.ID, []byte(html)), "archivage reçu")
		})
	}
	if err := eg.Wait(); err != nil {
		logger.L().Warn("⚠️ Publication commande incomplète", zap.String("order_id", order.ID), zap.Error(err))
	}
}
