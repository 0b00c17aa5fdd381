package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/models"
)

const UserCacheTTL = 5 * time.Minute

// UserScylla lit users / users_by_email ; les profils (sans mot de passe) sont cachés
// dans Redis sous user:<id>.
type UserScylla struct {
	session *gocql.Session
	rdb     *redis.Client
}

func NewUserScylla(session *gocql.Session, rdb *redis.Client) *UserScylla {
	return &UserScylla{session: session, rdb: rdb}
}

func (r *UserScylla) Get(ctx context.Context, userID string) (models.User, error) {
	key := "user:" + userID

	// 1. Essayer le cache Redis
	if data, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	user, err := r.load(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	// 3. Mettre en cache
	if data, err := json.Marshal(user); err == nil {
		r.rdb.Set(ctx, key, data, UserCacheTTL)
	}
	return user, nil
}

// GetByEmail renvoie aussi le hash du mot de passe : jamais mis en cache
func (r *UserScylla) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var id gocql.UUID
	err := r.session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))).WithContext(ctx).Scan(&id)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "lecture users_by_email")
	}
	return r.load(ctx, id.String())
}

func (r *UserScylla) load(ctx context.Context, userID string) (models.User, error) {
	id, err := gocql.ParseUUID(userID)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	user := models.User{ID: userID}
	err = r.session.Query(`SELECT email, password, name, role, phone, address FROM users WHERE user_id = ?`, id).
		WithContext(ctx).Scan(&user.Email, &user.Password, &user.Name, &user.Role, &user.Phone, &user.Address)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "lecture utilisateur")
	}
	return user, nil
}
