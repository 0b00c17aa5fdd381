package audit

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/middleware"
)

// Entry : une action admin, réussie ou non
type Entry struct {
	ID         gocql.UUID
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	IPAddress  string
	UserAgent  string
	Success    bool
	ErrorMsg   string
	Timestamp  time.Time
}

type Store interface {
	Insert(ctx context.Context, e Entry) error
}

// ScyllaStore écrit dans audit_logs (keyspace users)
type ScyllaStore struct {
	session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{session: session}
}

func (s *ScyllaStore) Insert(ctx context.Context, e Entry) error {
	err := s.session.Query(`
		INSERT INTO audit_logs (
			id, user_id, action, resource, resource_id,
			ip_address, user_agent, success, error_msg, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Action, e.Resource, e.ResourceID,
		e.IPAddress, e.UserAgent, e.Success, e.ErrorMsg, e.Timestamp,
	).WithContext(ctx).Exec()
	return errors.Wrap(err, "insertion audit")
}

const writeTimeout = 5 * time.Second

// Middleware enregistre chaque requête mutante de façon asynchrone, après le handler.
// Sans store, il ne fait rien.
func Middleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if store == nil || c.Request.Method == "GET" {
			return
		}

		entry := Entry{
			ID:         gocql.TimeUUID(),
			UserID:     c.GetString(middleware.CtxUserID),
			Action:     ActionName(c.Request.Method, c.FullPath()),
			Resource:   "order",
			ResourceID: c.Param("id"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			Success:    c.Writer.Status() < 400,
			Timestamp:  time.Now().UTC(),
		}
		if len(c.Errors) > 0 {
			entry.ErrorMsg = c.Errors.String()
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			if err := store.Insert(ctx, entry); err != nil {
				logger.L().Warn("❌ Erreur enregistrement log audit", zap.String("action", entry.Action), zap.Error(err))
			}
		}()
	}
}

// ActionName : "PUT /api/admin/orders/:id/return/approve" -> "order.return.approve"
func ActionName(method, route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	var name []string
	for _, p := range parts {
		if p == "api" || p == "admin" || strings.HasPrefix(p, ":") {
			continue
		}
		name = append(name, strings.TrimSuffix(p, "s"))
	}
	if method == "DELETE" {
		name = append(name, "delete")
	}
	return strings.Join(name, ".")
}
