package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/pricing"
	"storefront_back_end/internal/repository"
)

const wsPingInterval = 30 * time.Second

// CartSync pousse le panier serveur à chaque écriture (canal pub/sub cart:<userID>).
// Le client s'en sert pour se réaligner après un échec de mutation.
type CartSync struct {
	carts    repository.CartRepository
	rdb      *redis.Client
	upgrader websocket.Upgrader
}

func NewCartSync(carts repository.CartRepository, rdb *redis.Client, allowedOrigins []string) *CartSync {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &CartSync{
		carts: carts,
		rdb:   rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

type cartEvent struct {
	Type string `json:"type"`
	cartResponse
}

// GET /api/cart/ws
func (h *CartSync) Serve(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("❌ Erreur upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, repository.CartKey(userID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Fermeture côté client : on arrête la boucle
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.push(c, conn, userID, "connected"); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}
			if err := h.push(c, conn, userID, "cart_updated"); err != nil {
				logger.L().Debug("❌ Erreur envoi WebSocket", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *CartSync) push(c *gin.Context, conn *websocket.Conn, userID, eventType string) error {
	items, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	return conn.WriteJSON(cartEvent{
		Type:         eventType,
		cartResponse: cartResponse{Items: items, Totals: pricing.Calculate(items).Rounded()},
	})
}
