package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/notify"
	"storefront_back_end/internal/orderstate"
)

// Lifecycle applique les transitions de commande. Chaque transition est validée
// par orderstate puis écrite de façon conditionnelle (IF status = ...) : si la
// commande a bougé entre-temps, repository.ErrConflict remonte.
type Lifecycle struct {
	Deps
	now func() time.Time
}

func NewLifecycle(deps Deps) *Lifecycle {
	return &Lifecycle{Deps: deps, now: time.Now}
}

type ListQuery struct {
	Query  string
	Status models.OrderStatus
}

type OrderList struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
}

func (s *Lifecycle) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// ListAll : vue admin. Liste, comptage et recherche plein texte partent en parallèle.
func (s *Lifecycle) ListAll(ctx context.Context, q ListQuery) (OrderList, error) {
	var (
		orders  []models.Order
		total   int64
		matched map[string]struct{}
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		orders, err = s.Orders.ListAll(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.Orders.Count(ctx)
		return err
	})
	if q.Query != "" && s.Index != nil {
		eg.Go(func() error {
			ids, err := s.Index.Search(ctx, q.Query)
			if err != nil {
				return err
			}
			matched = make(map[string]struct{}, len(ids))
			for _, id := range ids {
				matched[id] = struct{}{}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return OrderList{}, err
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if matched != nil {
			if _, ok := matched[o.ID]; !ok {
				continue
			}
		}
		filtered = append(filtered, o)
	}
	return OrderList{Orders: filtered, Total: total}, nil
}

// Get : un client ne voit que ses commandes
func (s *Lifecycle) Get(ctx context.Context, userID, orderID string, admin bool) (models.Order, error) {
	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !admin && order.UserID != userID {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}

// Advance : approve / ship / deliver (admin)
func (s *Lifecycle) Advance(ctx context.Context, orderID string, action orderstate.Action) (models.Order, error) {
	return s.withOrder(ctx, orderID, string(action), func(order models.Order) (models.Order, error) {
		next, err := orderstate.NextStatus(action, order.Status)
		if err != nil {
			return order, err
		}
		if err := s.Orders.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
			return order, err
		}
		order.Status = next
		return order, nil
	})
}

// RequestReturn : le client demande un retour sur une commande expédiée ou livrée
func (s *Lifecycle) RequestReturn(ctx context.Context, userID, orderID, reason string) (models.Order, error) {
	return s.withOrder(ctx, orderID, string(orderstate.ActionRequestReturn), func(order models.Order) (models.Order, error) {
		if order.UserID != userID {
			return order, ErrForbidden
		}
		reason, err := orderstate.RequestReturn(order, reason)
		if err != nil {
			return order, err
		}
		if err := s.Orders.RequestReturn(ctx, orderID, reason); err != nil {
			return order, err
		}
		rs := models.ReturnRequested
		order.ReturnStatus = &rs
		order.ReturnReason = &reason
		return order, nil
	})
}

// CloseReturn : approve_return / deny_return (admin) ou cancel_return (client propriétaire)
func (s *Lifecycle) CloseReturn(ctx context.Context, userID, orderID string, action orderstate.Action, admin bool) (models.Order, error) {
	return s.withOrder(ctx, orderID, string(action), func(order models.Order) (models.Order, error) {
		if action == orderstate.ActionCancelReturn && order.UserID != userID {
			return order, ErrForbidden
		}
		if action != orderstate.ActionCancelReturn && !admin {
			return order, ErrForbidden
		}
		next, err := orderstate.NextReturnStatus(action, order.ReturnStatus)
		if err != nil {
			return order, err
		}
		if err := s.Orders.UpdateReturnStatus(ctx, orderID, *order.ReturnStatus, next); err != nil {
			return order, err
		}
		order.ReturnStatus = &next
		return order, nil
	})
}

func (s *Lifecycle) Delete(ctx context.Context, orderID string) error {
	unlock, err := s.Locker.Lock(ctx, cache.LockKey("order", orderID))
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.Orders.Delete(ctx, orderID); err != nil {
		return err
	}
	logger.L().Info("🗑️ Commande supprimée", zap.String("order_id", orderID))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if s.Index != nil {
		if err := s.Index.Delete(ctx, orderID); err != nil {
			logger.L().Warn("⚠️ Suppression index", zap.String("order_id", orderID), zap.Error(err))
		}
	}
	if s.Receipts != nil {
		if err := s.Receipts.Delete(ctx, orderID); err != nil {
			logger.L().Warn("⚠️ Suppression reçu", zap.String("order_id", orderID), zap.Error(err))
		}
	}
	return nil
}

// Receipt retourne une URL signée si l'archive est configurée, sinon le HTML du reçu
func (s *Lifecycle) Receipt(ctx context.Context, userID, orderID string, admin bool) (url, html string, err error) {
	order, err := s.Get(ctx, userID, orderID, admin)
	if err != nil {
		return "", "", err
	}
	if s.Receipts != nil {
		if url, err = s.Receipts.URL(ctx, orderID); err == nil {
			return url, "", nil
		}
		logger.L().Warn("⚠️ URL reçu indisponible, rendu direct", zap.String("order_id", orderID), zap.Error(err))
	}
	html, err = notify.RenderReceipt(order)
	return "", html, errors.Wrap(err, "rendu reçu")
}

// withOrder verrouille la commande, lit son état courant et applique apply.
// En cas de succès la commande mise à jour est publiée et le client prévenu.
func (s *Lifecycle) withOrder(ctx context.Context, orderID, op string,
	apply func(models.Order) (models.Order, error)) (models.Order, error) {
	unlock, err := s.Locker.Lock(ctx, cache.LockKey("order", orderID))
	if err != nil {
		return models.Order{}, err
	}
	defer unlock()

	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	updated, err := apply(order.Clone())
	if err != nil {
		return models.Order{}, err
	}
	now := s.now().UTC()
	updated.UpdatedAt = &now

	logger.L().Info("🔄 Transition commande",
		zap.String("order_id", orderID),
		zap.String("op", op),
		zap.String("status", string(updated.Status)))

	go publish(ctx, s.Index, nil, updated)
	s.notify(updated)
	return updated, nil
}

func (s *Lifecycle) notify(order models.Order) {
	if s.Notifier == nil || s.Users == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		user, err := s.Users.Get(ctx, order.UserID)
		if err != nil {
			logger.L().Warn("⚠️ Client introuvable pour notification", zap.String("user_id", order.UserID), zap.Error(err))
			return
		}
		if err := s.Notifier.OrderUpdated(ctx, order, user.Email); err != nil {
			logger.L().Warn("⚠️ E-mail de statut non envoyé", zap.String("order_id", order.ID), zap.Error(err))
		}
	}()
}
