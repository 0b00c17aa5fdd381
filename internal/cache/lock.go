package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
)

// ErrLocked : une opération identique est déjà en cours
var ErrLocked = errors.New("opération déjà en cours")

// Locker pose des verrous « en vol » : une clé par opération (checkout d'un
// utilisateur, transition d'une commande).
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Ne supprime le verrou que s'il nous appartient encore (TTL expiré puis repris)
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func LockKey(parts ...string) string {
	key := "lock"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "pose verrou")
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// le contexte de la requête peut déjà être annulé
		if err := unlockScript.Run(context.Background(), l.rdb, []string{key}, token).Err(); err != nil {
			logger.L().Warn("⚠️ Libération verrou échouée", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
