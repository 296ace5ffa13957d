package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/config"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/keyring"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/logger"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/notify"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage/postgres"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage/redis"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage/sqlite"
)

// StoreKeyring selects the postgres connection string kept in the OS keyring.
const StoreKeyring = "keyring"

// StoreRedis selects the server in the config's redis section.
const StoreRedis = "redis"

func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

func IsRedisURL(target string) bool {
	return strings.HasPrefix(target, "redis://") || strings.HasPrefix(target, "rediss://")
}

// OpenStore picks a backend for cfg.Store: postgres:// URLs, "keyring",
// redis:// URLs or "redis", *.json files, and SQLite for any other path.
// Postgres URLs given on the command line or in the config file must not
// carry a password.
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	target := strings.TrimSpace(cfg.Store)
	switch {
	case target == StoreKeyring:
		connStr, err := keyring.Get(keyring.PostgresConnString)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring, use 'zonealarm keyring set postgres-connection' to store one")
			}
			return nil, err
		}
		return postgres.New(connStr), nil

	case IsPostgres(target):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store it with 'zonealarm keyring set postgres-connection' and use --store keyring, or use PGPASSWORD or .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(target), nil

	case IsRedisURL(target) || target == StoreRedis:
		password, err := keyring.Lookup(keyring.RedisPassword)
		if err != nil {
			logger.Warn("Redis password unavailable from keyring", "error", err)
		}
		if target == StoreRedis {
			if cfg.Redis.Addr == "" {
				return nil, errors.New("redis store selected but redis.addr is not configured")
			}
			return redis.NewWithAddr(cfg.Redis.Addr, cfg.Redis.DB, password, cfg.Redis.Key), nil
		}
		return redis.NewFromURL(target, cfg.Redis.Key, password)

	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return storage.NewJSONStore(target), nil

	default:
		return sqlite.NewStore(target), nil
	}
}

// OpenPublisher connects to the configured MQTT broker, or returns a no-op
// publisher when none is configured.
func OpenPublisher(cfg *config.Config) (notify.Publisher, error) {
	if cfg.MQTT.Broker == "" {
		return notify.Nop{}, nil
	}
	password, err := keyring.Lookup(keyring.MQTTPassword)
	if err != nil {
		logger.Warn("MQTT password unavailable from keyring", "error", err)
	}
	return notify.NewMQTT(notify.Options{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Username:    cfg.MQTT.Username,
		Password:    password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	})
}
