package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/logger"
)

// --- Configuration ScyllaDB ---
type ScyllaKeyspaceConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	SSLEnabled  bool
	CACertPath  string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

type ScyllaManager struct {
	sessions map[string]*gocql.Session // keyspace → session
	configs  map[string]ScyllaKeyspaceConfig
	mu       sync.Mutex
}

// Connections regroupe les clients ouverts au démarrage. Elastic et MinIO sont optionnels (nil si absents).
type Connections struct {
	Scylla  *ScyllaManager
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client

	cfg config.Config
}

// Connect ouvre toutes les connexions. Scylla et Redis sont obligatoires.
func Connect(cfg config.Config) (*Connections, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conns := &Connections{cfg: cfg}

	// 1. ScyllaDB (multi-keyspaces)
	scylla, err := NewScyllaManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("échec initialisation ScyllaDB: %w", err)
	}
	conns.Scylla = scylla

	// 2. Redis
	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	conns.Redis = rdb

	// 3. Elasticsearch
	conns.Elastic = connectElastic(cfg)

	// 4. MinIO
	conns.MinIO = connectMinIO(ctx, cfg)

	logger.L().Info("✅ Toutes les bases de données sont connectées")
	return conns, nil
}

func (c *Connections) UsersSession() (*gocql.Session, error) {
	return c.Scylla.GetSession(c.cfg.UsersKeyspace.Keyspace)
}

func (c *Connections) ProductsSession() (*gocql.Session, error) {
	return c.Scylla.GetSession(c.cfg.ProductsKeyspace.Keyspace)
}

func (c *Connections) OrdersSession() (*gocql.Session, error) {
	return c.Scylla.GetSession(c.cfg.OrdersKeyspace.Keyspace)
}

func (c *Connections) Close() {
	c.Scylla.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

// =============================================
// SCYLLA DB (Multi-Keyspaces avec SSL & Rôles)
// =============================================

func NewScyllaManager(cfg config.Config) (*ScyllaManager, error) {
	sm := &ScyllaManager{
		sessions: make(map[string]*gocql.Session),
		configs:  loadScyllaConfigs(cfg),
	}

	for keyspace := range sm.configs {
		if _, err := sm.GetSession(keyspace); err != nil {
			return nil, fmt.Errorf("échec initialisation keyspace %s: %w", keyspace, err)
		}
	}

	// Note: les tables sont créées via scripts/scylladb_init.cql
	return sm, nil
}

func loadScyllaConfigs(cfg config.Config) map[string]ScyllaKeyspaceConfig {
	configs := make(map[string]ScyllaKeyspaceConfig)

	for _, role := range []config.ScyllaRole{cfg.ProductsKeyspace, cfg.UsersKeyspace, cfg.OrdersKeyspace} {
		if role.Keyspace == "" {
			continue
		}
		// LOCAL_QUORUM + SERIAL pour les transitions conditionnelles (IF ...)
		configs[role.Keyspace] = ScyllaKeyspaceConfig{
			Hosts:       cfg.ScyllaHosts,
			Keyspace:    role.Keyspace,
			Username:    role.Role,
			Password:    role.Password,
			SSLEnabled:  cfg.ScyllaSSL,
			CACertPath:  cfg.ScyllaCAPath,
			Timeout:     5 * time.Second,
			NumConns:    20,
			Consistency: gocql.LocalQuorum,
		}
	}
	return configs
}

func createScyllaCluster(config ScyllaKeyspaceConfig) (*gocql.ClusterConfig, error) {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.SerialConsistency = gocql.LocalSerial
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns
	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}

	if config.SSLEnabled && config.CACertPath != "" {
		caCert, err := os.ReadFile(config.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("impossible de lire le certificat CA: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("impossible de parser le certificat CA")
		}
		cluster.SslOpts = &gocql.SslOptions{
			Config:                 &tls.Config{RootCAs: caCertPool},
			EnableHostVerification: true,
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	return cluster, nil
}

// GetSession retourne une session pour un keyspace donné (recréée si invalide)
func (sm *ScyllaManager) GetSession(keyspace string) (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	config, exists := sm.configs[keyspace]
	if !exists {
		return nil, fmt.Errorf("keyspace '%s' non configuré", keyspace)
	}

	if session, exists := sm.sessions[keyspace]; exists {
		if !session.Closed() {
			return session, nil
		}
	}

	cluster, err := createScyllaCluster(config)
	if err != nil {
		return nil, fmt.Errorf("erreur configuration cluster pour %s: %w", keyspace, err)
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %w", keyspace, err)
	}

	sm.sessions[keyspace] = session
	logger.L().Info("✅ Nouvelle session ScyllaDB",
		zap.String("keyspace", keyspace), zap.String("role", config.Username))
	return session, nil
}

func (sm *ScyllaManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for keyspace, session := range sm.sessions {
		session.Close()
		logger.L().Info("🔌 Session ScyllaDB fermée", zap.String("keyspace", keyspace))
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST non configuré")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}
	logger.L().Info("✅ Connecté à Redis")
	return rdb, nil
}

// =============================================
// ELASTICSEARCH (optionnel : recherche admin des commandes)
// =============================================
func connectElastic(cfg config.Config) *elasticsearch.Client {
	if cfg.ElasticURL == "" {
		logger.L().Warn("⚠️ ELASTIC_URL absent, recherche des commandes désactivée")
		return nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		logger.L().Warn("⚠️ Erreur création client Elasticsearch", zap.Error(err))
		return nil
	}

	res, err := client.Info()
	if err != nil {
		logger.L().Warn("⚠️ Erreur connexion Elasticsearch", zap.Error(err))
		return nil
	}
	defer res.Body.Close()

	logger.L().Info("✅ Connecté à Elasticsearch")
	return client
}

// =============================================
// MINIO (optionnel : archive des reçus)
// =============================================
func connectMinIO(ctx context.Context, cfg config.Config) *minio.Client {
	if cfg.MinIOEndpoint == "" {
		logger.L().Warn("⚠️ MINIO_ENDPOINT absent, archive des reçus désactivée")
		return nil
	}
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		logger.L().Warn("⚠️ Erreur connexion MinIO", zap.Error(err))
		return nil
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		logger.L().Warn("⚠️ Erreur vérification bucket MinIO", zap.Error(err))
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			logger.L().Warn("⚠️ Erreur création bucket MinIO", zap.Error(err))
			return nil
		}
		logger.L().Info("🪣 Bucket créé", zap.String("bucket", cfg.MinIOBucket))
	}

	logger.L().Info("✅ Connecté à MinIO", zap.String("endpoint", cfg.MinIOEndpoint))
	return client
}
