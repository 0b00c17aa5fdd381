package storefront

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/orderstate"
)

const opDelete = orderstate.Action("delete")

// ConfirmFunc demande confirmation avant une suppression
type ConfirmFunc func(orderID string) bool

type opKey struct {
	orderID string
	action  orderstate.Action
}

// OrderLifecycle tient les copies locales des commandes. Chaque transition
// envoie exactement une requête et n'est reflétée en local qu'après succès,
// sans relire la commande.
type OrderLifecycle struct {
	api API

	mu       sync.Mutex
	orders   []models.Order
	inflight map[opKey]struct{}
}

func NewOrderLifecycle(api API) *OrderLifecycle {
	return &OrderLifecycle{api: api, inflight: make(map[opKey]struct{})}
}

// LoadAll : vue admin
func (l *OrderLifecycle) LoadAll(ctx context.Context, q OrderQuery) error {
	orders, err := l.api.ListAllOrders(ctx, q)
	if err != nil {
		return err
	}
	l.replace(orders)
	return nil
}

// LoadMine : commandes du client connecté
func (l *OrderLifecycle) LoadMine(ctx context.Context) error {
	orders, err := l.api.ListMyOrders(ctx)
	if err != nil {
		return err
	}
	l.replace(orders)
	return nil
}

func (l *OrderLifecycle) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = o.Clone()
	}
	return out
}

func (l *OrderLifecycle) Order(orderID string) (models.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(orderID); i >= 0 {
		return l.orders[i].Clone(), true
	}
	return models.Order{}, false
}

func (l *OrderLifecycle) Approve(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionApprove, l.api.ApproveOrder, setStatus(models.StatusApproved))
}

func (l *OrderLifecycle) MarkShipped(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionShip, l.api.ShipOrder, setStatus(models.StatusShipped))
}

func (l *OrderLifecycle) MarkDelivered(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionDeliver, l.api.DeliverOrder, setStatus(models.StatusDelivered))
}

func (l *OrderLifecycle) ApproveReturn(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionApproveReturn, l.api.ApproveReturn, setReturn(models.ReturnApproved))
}

func (l *OrderLifecycle) DenyReturn(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionDenyReturn, l.api.DenyReturn, setReturn(models.ReturnDenied))
}

func (l *OrderLifecycle) CancelReturn(ctx context.Context, orderID string) error {
	return l.transition(ctx, orderID, orderstate.ActionCancelReturn, l.api.CancelReturn, setReturn(models.ReturnCancelled))
}

// RequestReturn : motif vide ou commande connue non livrée sont refusés sans appel réseau
func (l *OrderLifecycle) RequestReturn(ctx context.Context, orderID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if order, ok := l.Order(orderID); ok {
		if _, err := orderstate.RequestReturn(order, reason); err != nil {
			return err
		}
	}
	send := func(ctx context.Context, id string) error {
		return l.api.RequestReturn(ctx, id, reason)
	}
	return l.transition(ctx, orderID, orderstate.ActionRequestReturn, send, func(o *models.Order) {
		rs := models.ReturnRequested
		o.ReturnStatus = &rs
		o.ReturnReason = &reason
	})
}

// DeleteOrder est destructif : sans confirmation explicite rien n'est envoyé
func (l *OrderLifecycle) DeleteOrder(ctx context.Context, orderID string, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(orderID) {
		return ErrNotConfirmed
	}
	return l.transition(ctx, orderID, opDelete, l.api.DeleteOrder, nil)
}

// transition : apply == nil retire la commande de la liste locale
func (l *OrderLifecycle) transition(ctx context.Context, orderID string, action orderstate.Action,
	send func(context.Context, string) error, apply func(*models.Order)) error {
	key := opKey{orderID: orderID, action: action}
	l.mu.Lock()
	if _, busy := l.inflight[key]; busy {
		l.mu.Unlock()
		return ErrOperationInFlight
	}
	l.inflight[key] = struct{}{}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.inflight, key)
		l.mu.Unlock()
	}()

	if err := send(ctx, orderID); err != nil {
		logger.L().Warn("❌ Transition refusée",
			zap.String("order_id", orderID),
			zap.String("action", string(action)),
			zap.Error(err))
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(orderID)
	if i < 0 {
		return nil
	}
	if apply == nil {
		l.orders = append(l.orders[:i], l.orders[i+1:]...)
		return nil
	}
	apply(&l.orders[i])
	return nil
}

func (l *OrderLifecycle) replace(orders []models.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = make([]models.Order, len(orders))
	for i, o := range orders {
		l.orders[i] = o.Clone()
	}
}

func (l *OrderLifecycle) indexOf(orderID string) int {
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

func setStatus(status models.OrderStatus) func(*models.Order) {
	return func(o *models.Order) {
		o.Status = status
	}
}

func setReturn(status models.ReturnStatus) func(*models.Order) {
	return func(o *models.Order) {
		o.ReturnStatus = &status
	}
}
