package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront_back_end/internal/audit"
	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/handlers/admin"
	"storefront_back_end/internal/handlers/checkout"
	"storefront_back_end/internal/handlers/user"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/notify"
	"storefront_back_end/internal/payment"
	"storefront_back_end/internal/repository"
	"storefront_back_end/internal/routes"
	"storefront_back_end/internal/search"
	"storefront_back_end/internal/service"
	"storefront_back_end/internal/storage"
)

func main() {
	defer logger.Sync()
	cfg := config.Load()

	if cfg.StripeSecretKey == "" {
		logger.L().Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripePublicKey, cfg.StripeWebhookSecret, cfg.Currency)
	logger.L().Info("✅ Stripe initialisé", zap.String("currency", cfg.Currency))

	conns, err := database.Connect(cfg)
	if err != nil {
		logger.L().Fatal("❌ Connexion aux bases impossible", zap.Error(err))
	}
	defer conns.Close()

	deps, products, err := buildDeps(cfg, conns, gateway)
	if err != nil {
		logger.L().Fatal("❌ Initialisation des dépôts", zap.Error(err))
	}
	lifecycle := service.NewLifecycle(deps)

	// Session déjà ouverte par buildDeps
	usersSession, err := conns.UsersSession()
	if err != nil {
		logger.L().Fatal("❌ Session audit", zap.Error(err))
	}

	h := routes.Handlers{
		Auth:       user.NewAuthHandler(deps.Users, []byte(cfg.JWTSecret)),
		Cart:       user.NewCartHandler(deps.Carts, products),
		CartSync:   user.NewCartSync(deps.Carts, conns.Redis, cfg.CORSOrigins),
		Orders:     user.NewOrderHandler(lifecycle),
		Checkout:   checkout.NewHandler(service.NewCheckout(deps), gateway),
		AdminOrder: admin.NewOrderHandler(lifecycle),
		Audit:      audit.NewScyllaStore(usersSession),
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(r, h, []byte(cfg.JWTSecret), middleware.NewRateLimiter(conns.Redis))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.L().Info("🚀 Serveur storefront lancé", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("❌ Arrêt du serveur", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("❌ Arrêt forcé", zap.Error(err))
	}
	logger.L().Info("👋 Serveur arrêté")
}

// buildDeps assemble les dépôts et les services optionnels.
// Un backend absent reste nil dans Deps (pas d'interface typée nil).
func buildDeps(cfg config.Config, conns *database.Connections, gateway payment.Gateway) (service.Deps, *repository.ProductScylla, error) {
	ordersSession, err := conns.OrdersSession()
	if err != nil {
		return service.Deps{}, nil, err
	}
	usersSession, err := conns.UsersSession()
	if err != nil {
		return service.Deps{}, nil, err
	}
	productsSession, err := conns.ProductsSession()
	if err != nil {
		return service.Deps{}, nil, err
	}

	deps := service.Deps{
		Orders:  repository.NewOrderScylla(ordersSession),
		Carts:   repository.NewCartRedis(conns.Redis),
		Users:   repository.NewUserScylla(usersSession, conns.Redis),
		Gateway: gateway,
		Locker:  cache.NewRedisLocker(conns.Redis, cfg.LockTTL),
	}
	if conns.Elastic != nil {
		deps.Index = search.NewElasticOrders(conns.Elastic)
	}
	if conns.MinIO != nil {
		deps.Receipts = storage.NewMinIOReceipts(conns.MinIO, cfg.MinIOBucket)
	}
	if mailer := notify.NewSMTPMailer(cfg); mailer != nil {
		deps.Notifier = mailer
	}
	return deps, repository.NewProductScylla(productsSession), nil
}
