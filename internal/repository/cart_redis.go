package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/models"
)

const (
	CartTTL = 30 * 24 * time.Hour // 30 jours

	cartTxRetries = 5
)

// CartKey : clé Redis du panier, aussi utilisée comme canal pub/sub
func CartKey(userID string) string {
	return "cart:" + userID
}

// CartRedis stocke le panier en JSON sous cart:<userID>. Chaque écriture passe par
// WATCH/MULTI pour ne pas perdre une mise à jour concurrente, puis publie "updated".
type CartRedis struct {
	rdb *redis.Client
}

func NewCartRedis(rdb *redis.Client) *CartRedis {
	return &CartRedis{rdb: rdb}
}

func (r *CartRedis) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	return readCart(ctx, r.rdb, CartKey(userID))
}

func (r *CartRedis) Add(ctx context.Context, userID string, item models.CartItem) (models.CartItem, error) {
	var result models.CartItem
	err := r.update(ctx, userID, func(cart []models.CartItem) ([]models.CartItem, error) {
		for i := range cart {
			if cart[i].ProductID == item.ProductID && cart[i].Size == item.Size {
				cart[i].Quantity = models.ClampQuantity(cart[i].Quantity + item.Quantity)
				result = cart[i]
				return cart, nil
			}
		}
		item.ID = uuid.NewString()
		item.Quantity = models.ClampQuantity(item.Quantity)
		result = item
		return append(cart, item), nil
	})
	return result, err
}

func (r *CartRedis) ChangeQuantity(ctx context.Context, userID, itemID string, delta int) (models.CartItem, error) {
	var result models.CartItem
	err := r.update(ctx, userID, func(cart []models.CartItem) ([]models.CartItem, error) {
		for i := range cart {
			if cart[i].ID == itemID {
				cart[i].Quantity = models.ClampQuantity(cart[i].Quantity + delta)
				result = cart[i]
				return cart, nil
			}
		}
		return nil, ErrNotFound
	})
	return result, err
}

func (r *CartRedis) Remove(ctx context.Context, userID, itemID string) error {
	return r.update(ctx, userID, func(cart []models.CartItem) ([]models.CartItem, error) {
		newCart := make([]models.CartItem, 0, len(cart))
		found := false
		for _, item := range cart {
			if item.ID == itemID {
				found = true
				continue
			}
			newCart = append(newCart, item)
		}
		if !found {
			return nil, ErrNotFound
		}
		return newCart, nil
	})
}

func (r *CartRedis) Clear(ctx context.Context, userID string) error {
	key := CartKey(userID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.Publish(ctx, key, "cleared")
	_, err := pipe.Exec(ctx)
	return errors.Wrap(err, "vidage panier")
}

func (r *CartRedis) update(ctx context.Context, userID string, mutate func([]models.CartItem) ([]models.CartItem, error)) error {
	key := CartKey(userID)
	txf := func(tx *redis.Tx) error {
		cart, err := readCart(ctx, tx, key)
		if err != nil {
			return err
		}
		cart, err = mutate(cart)
		if err != nil {
			return err
		}
		data, err := json.Marshal(cart)
		if err != nil {
			return errors.Wrap(err, "sérialisation panier")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(cart) == 0 {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, data, CartTTL)
			}
			pipe.Publish(ctx, key, "updated")
			return nil
		})
		return err
	}

	for i := 0; i < cartTxRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return errors.Wrap(redis.TxFailedErr, "panier modifié en parallèle")
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readCart(ctx context.Context, c stringGetter, key string) ([]models.CartItem, error) {
	data, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "lecture panier")
	}
	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, errors.Wrap(err, "décodage panier")
	}
	return cart, nil
}
