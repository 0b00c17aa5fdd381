package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

const orderColumns = `order_id, user_id, items, total_amount, payment_method, delivery_info,
	status, payment_status, payment_ref, return_status, return_reason, created_at, updated_at`

// OrderScylla : tables orders, orders_by_user et orders_by_payment_ref (scripts/scylladb_init.cql).
// Les transitions de statut sont des LWT (IF status = ?) : une transition ne s'applique
// que depuis l'état contre lequel elle a été validée.
type OrderScylla struct {
	session *gocql.Session
}

func NewOrderScylla(session *gocql.Session) *OrderScylla {
	return &OrderScylla{session: session}
}

func (r *OrderScylla) Create(ctx context.Context, order models.Order) error {
	id, err := gocql.ParseUUID(order.ID)
	if err != nil {
		return errors.Wrap(err, "ID commande invalide")
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "sérialisation items")
	}
	delivery, err := json.Marshal(order.DeliveryInfo)
	if err != nil {
		return errors.Wrap(err, "sérialisation livraison")
	}

	var paymentStatus *string
	if order.PaymentStatus != nil {
		s := string(*order.PaymentStatus)
		paymentStatus = &s
	}

	batch := r.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, order.UserID, string(items), order.TotalAmount.String(), string(order.PaymentMethod), string(delivery),
		string(order.Status), paymentStatus, order.PaymentRef, nil, nil, order.CreatedAt, nil)
	batch.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
		order.UserID, order.CreatedAt, id)
	return errors.Wrap(r.session.ExecuteBatch(batch), "insertion commande")
}

func (r *OrderScylla) Get(ctx context.Context, orderID string) (models.Order, error) {
	id, err := gocql.ParseUUID(orderID)
	if err != nil {
		return models.Order{}, ErrNotFound
	}
	iter := r.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).WithContext(ctx).Iter()
	orders, err := scanOrders(iter)
	if err != nil {
		return models.Order{}, err
	}
	if len(orders) == 0 {
		return models.Order{}, ErrNotFound
	}
	return orders[0], nil
}

func (r *OrderScylla) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var ids []gocql.UUID
	iter := r.session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).WithContext(ctx).Iter()
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "lecture orders_by_user")
	}
	if len(ids) == 0 {
		return []models.Order{}, nil
	}

	orders, err := scanOrders(r.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id IN ?`, ids).WithContext(ctx).Iter())
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(orders)
	return orders, nil
}

// ListAll : attention, parcourt toute la table (vue admin)
func (r *OrderScylla) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := scanOrders(r.session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter())
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(orders)
	return orders, nil
}

func (r *OrderScylla) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.session.Query(`SELECT COUNT(*) FROM orders`).WithContext(ctx).Scan(&n)
	return n, errors.Wrap(err, "comptage commandes")
}

func (r *OrderScylla) ClaimPaymentRef(ctx context.Context, paymentRef, orderID string) (string, bool, error) {
	id, err := gocql.ParseUUID(orderID)
	if err != nil {
		return "", false, errors.Wrap(err, "ID commande invalide")
	}
	prev := map[string]interface{}{}
	applied, err := r.session.Query(`INSERT INTO orders_by_payment_ref (payment_ref, order_id) VALUES (?, ?) IF NOT EXISTS`,
		paymentRef, id).WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return "", false, errors.Wrap(err, "réservation référence paiement")
	}
	if applied {
		return orderID, true, nil
	}
	if existing, ok := prev["order_id"].(gocql.UUID); ok {
		return existing.String(), false, nil
	}
	return "", false, ErrConflict
}

func (r *OrderScylla) ReleasePaymentRef(ctx context.Context, paymentRef string) error {
	err := r.session.Query(`DELETE FROM orders_by_payment_ref WHERE payment_ref = ?`, paymentRef).WithContext(ctx).Exec()
	return errors.Wrap(err, "libération référence paiement")
}

func (r *OrderScylla) FindByPaymentRef(ctx context.Context, paymentRef string) (string, error) {
	var id gocql.UUID
	err := r.session.Query(`SELECT order_id FROM orders_by_payment_ref WHERE payment_ref = ?`, paymentRef).
		WithContext(ctx).Scan(&id)
	if errors.Is(err, gocql.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "lecture référence paiement")
	}
	return id.String(), nil
}

func (r *OrderScylla) UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus) error {
	id, err := gocql.ParseUUID(orderID)
	if err != nil {
		return ErrNotFound
	}
	return r.cas(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ? IF status = ?`, id,
		string(to), time.Now().UTC(), id, string(from))
}

func (r *OrderScylla) RequestReturn(ctx context.Context, orderID, reason string) error {
	id, err := gocql.ParseUUID(orderID)
	if err != nil {
		return ErrNotFound
	}
	return r.cas(ctx, `UPDATE orders SET return_status = ?, return_reason = ?, updated_at = ? WHERE order_id = ? IF return_status = null AND status IN (?, ?)`, id,
		string(models.ReturnRequested), reason, time.Now().UTC(), id,
		string(models.StatusShipped), string(models.StatusDelivered))
}

func (r *OrderScylla) UpdateReturnStatus(ctx context.Context, orderID string, from, to models.ReturnStatus) error {
	id, err := gocql.ParseUUID(orderID)
	if err != nil {
		return ErrNotFound
	}
	return r.cas(ctx, `UPDATE orders SET return_status = ?, updated_at = ? WHERE order_id = ? IF return_status = ?`, id,
		string(to), time.Now().UTC(), id, string(from))
}

func (r *OrderScylla) Delete(ctx context.Context, orderID string) error {
	order, err := r.Get(ctx, orderID)
	if err != nil {
		return err
	}
	id, _ := gocql.ParseUUID(orderID)

	batch := r.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`DELETE FROM orders WHERE order_id = ?`, id)
	batch.Query(`DELETE FROM orders_by_user WHERE user_id = ? AND created_at = ? AND order_id = ?`, order.UserID, order.CreatedAt, id)
	if order.PaymentRef != "" {
		batch.Query(`DELETE FROM orders_by_payment_ref WHERE payment_ref = ?`, order.PaymentRef)
	}
	return errors.Wrap(r.session.ExecuteBatch(batch), "suppression commande")
}

// cas exécute une mise à jour conditionnelle. Non appliquée : ErrNotFound si la ligne
// n'existe pas, ErrConflict sinon.
func (r *OrderScylla) cas(ctx context.Context, stmt string, id gocql.UUID, args ...interface{}) error {
	applied, err := r.session.Query(stmt, args...).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return errors.Wrap(err, "mise à jour conditionnelle")
	}
	if applied {
		return nil
	}
	var exists gocql.UUID
	err = r.session.Query(`SELECT order_id FROM orders WHERE order_id = ?`, id).WithContext(ctx).Scan(&exists)
	if errors.Is(err, gocql.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "lecture commande")
	}
	return ErrConflict
}

func scanOrders(iter *gocql.Iter) ([]models.Order, error) {
	var (
		orders                                  []models.Order
		id                                      gocql.UUID
		userID, items, total, method, delivery  string
		status, paymentRef                      string
		paymentStatus, returnStatus, returnText *string
		createdAt                               time.Time
		updatedAt                               *time.Time
	)

	for iter.Scan(&id, &userID, &items, &total, &method, &delivery, &status, &paymentStatus,
		&paymentRef, &returnStatus, &returnText, &createdAt, &updatedAt) {
		order := models.Order{
			ID:            id.String(),
			UserID:        userID,
			PaymentMethod: models.PaymentMethod(method),
			Status:        models.OrderStatus(status),
			PaymentRef:    paymentRef,
			CreatedAt:     createdAt,
		}
		if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
			return nil, errors.Wrap(err, "décodage items commande")
		}
		if err := json.Unmarshal([]byte(delivery), &order.DeliveryInfo); err != nil {
			return nil, errors.Wrap(err, "décodage livraison")
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, errors.Wrap(err, "décodage montant")
		}
		order.TotalAmount = amount
		if paymentStatus != nil && *paymentStatus != "" {
			ps := models.PaymentStatus(*paymentStatus)
			order.PaymentStatus = &ps
		}
		if returnStatus != nil && *returnStatus != "" {
			rs := models.ReturnStatus(*returnStatus)
			order.ReturnStatus = &rs
		}
		if returnText != nil {
			reason := *returnText
			order.ReturnReason = &reason
		}
		if updatedAt != nil && !updatedAt.IsZero() {
			u := *updatedAt
			order.UpdatedAt = &u
		}
		orders = append(orders, order)

		paymentStatus, returnStatus, returnText, updatedAt = nil, nil, nil, nil
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "lecture commandes")
	}
	return orders, nil
}

func sortByCreatedDesc(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
