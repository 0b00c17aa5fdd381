package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute

	// Max mutations de panier par minute et par utilisateur
	CartMaxRequests = 60
	CartWindow      = time.Minute
)

// RateLimiter : compteurs Redis à fenêtre fixe
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Login limite les tentatives de connexion par email
func (l *RateLimiter) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if l.rdb.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := l.rdb.TTL(ctx, cooldownKey).Val()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		attempts, _ := l.rdb.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			l.rdb.Set(ctx, cooldownKey, "1", LoginCooldown)
			l.rdb.Del(ctx, key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			pipe := l.rdb.Pipeline()
			pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, LoginCooldown)
			_, _ = pipe.Exec(ctx)
		case http.StatusOK:
			l.rdb.Del(ctx, key, cooldownKey)
		}
	}
}

// Cart limite les mutations du panier (anti-spam des boutons +/-)
func (l *RateLimiter) Cart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "cart_mutations:" + userID

		requests, _ := l.rdb.Get(ctx, key).Int()
		if requests >= CartMaxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de modifications du panier. Ralentissez un peu",
				"retry_after": int(CartWindow.Seconds()),
			})
			return
		}

		pipe := l.rdb.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, CartWindow)
		_, _ = pipe.Exec(ctx)

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", CartMaxRequests-requests-1))
		c.Next()
	}
}
