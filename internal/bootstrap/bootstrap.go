// Package bootstrap opens the infrastructure selected by the configuration
// and assembles the services on top of it. The API server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VS237/momshop/internal/adapter/cartstore"
	"github.com/VS237/momshop/internal/adapter/memory"
	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/adapter/repository"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/infrastructure/database"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// OpenStore returns the store named by STORE_DRIVER. With the postgres
// driver, pending migrations are applied first when migrate is true.
func OpenStore(ctx context.Context, cfg config.Config, migrate bool, log logger.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case store.DriverMemory, "mem":
		log.Warn("using the in-memory store, data is lost on restart")
		return memory.NewStore(), nil
	case store.DriverPostgres, "":
		if migrate {
			if err := Migrate(cfg.Database); err != nil {
				return nil, err
			}
		}
		db, err := database.NewPostgresDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		log.Info("connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return repository.NewPostgresStore(db), nil
	default:
		return nil, &store.ErrUnknownDriver{Driver: cfg.Store.Driver}
	}
}

// Migrate applies every pending schema migration.
func Migrate(cfg config.Database) error {
	m, err := database.NewMigrator(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// CartStore is a cart.Store that owns a connection.
type CartStore interface {
	cart.Store
	Close() error
}

type memoryCarts struct {
	*cartstore.MemoryStore
}

func (memoryCarts) Close() error { return nil }

// OpenCartStore uses Redis when REDIS_ADDR is set and an in-process store
// otherwise.
func OpenCartStore(ctx context.Context, cfg config.Redis, log logger.Logger) (CartStore, error) {
	if cfg.Addr == "" {
		log.Warn("REDIS_ADDR not set, carts are kept in memory")
		return memoryCarts{cartstore.NewMemoryStore(cfg.CartTTL)}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	carts := cartstore.NewRedisStore(client, cfg.CartTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := carts.Ping(pingCtx); err != nil {
		carts.Close()
		return nil, fmt.Errorf("error reaching Redis at %s: %w", cfg.Addr, err)
	}
	log.Info("connected to Redis", "addr", cfg.Addr)
	return carts, nil
}

// OpenPublisher connects to RabbitMQ when AMQP_URL is set. Without a URL,
// or when the broker cannot be reached, events are only logged.
func OpenPublisher(cfg config.AMQP, log logger.Logger) messaging.Publisher {
	if cfg.URL == "" {
		return messaging.NewLogPublisher(log)
	}
	pub, err := messaging.NewRabbitPublisher(cfg.URL, cfg.Exchange, log)
	if err != nil {
		log.Error("RabbitMQ unavailable, events will only be logged", "error", err)
		return messaging.NewLogPublisher(log)
	}
	log.Info("connected to RabbitMQ", "exchange", cfg.Exchange)
	return pub
}
