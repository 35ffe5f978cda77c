package container

import (
	"fmt"

	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/infrastructure/config"
	gormstore "github.com/chefaid/chefaid/internal/infrastructure/persistence/gorm"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/keyring"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/memory"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/postgres"
	redisstore "github.com/chefaid/chefaid/internal/infrastructure/persistence/redis"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/routed"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/sqlite"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	"github.com/chefaid/chefaid/pkg/healthcheck"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Storage is the opened settings store together with its health checks
type Storage struct {
	Store    outbound.KeyValueStore
	Checkers map[string]healthcheck.Checker

	closers []func() error
}

// Close releases every connection the store holds
func (s *Storage) Close() error {
	var result *multierror.Error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// OpenStorage opens the backend named by storage.driver and, when the
// keyring secret backend is configured, routes the API key to the keyring
func OpenStorage(cfg *config.Config, log *zap.Logger) (*Storage, error) {
	s := &Storage{Checkers: make(map[string]healthcheck.Checker)}

	var base outbound.KeyValueStore
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		base = memory.NewKVStore()
		log.Warn("Using in-memory settings store; settings are lost on restart")

	case config.DriverSQLite, "":
		db, err := sqlite.SetupDatabase(cfg.Storage.SQLitePath, gormLogLevel(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		if err := s.addGorm(db); err != nil {
			return nil, err
		}
		base = gormstore.NewKVStore(db)
		log.Info("Connected to SQLite settings store", zap.String("path", cfg.Storage.SQLitePath))

	case config.DriverPostgres:
		pg := cfg.Storage.Postgres
		db, err := postgres.Connect(postgres.ConnectionConfig{
			DSN:             pg.DSN,
			MaxOpenConns:    pg.MaxOpenConns,
			MaxIdleConns:    pg.MaxIdleConns,
			ConnMaxLifetime: pg.ConnMaxLifetime,
			ConnMaxIdleTime: pg.ConnMaxIdleTime,
			ConnectTimeout:  pg.ConnectTimeout,
			LogLevel:        gormLogLevel(cfg),
		}, log)
		if err != nil {
			return nil, err
		}
		if err := s.addGorm(db); err != nil {
			return nil, err
		}
		base = gormstore.NewKVStore(db)

	case config.DriverRedis:
		client := redisstore.NewClient(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, client.Close)
		s.Checkers["redis"] = healthcheck.NewRedisChecker(client)
		base = redisstore.NewKVStore(client, cfg.Redis.KeyPrefix, log)
		log.Info("Using Redis settings store", zap.String("addr", cfg.Redis.Addr))

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	s.Store = base
	if cfg.Storage.SecretBackend == config.SecretBackendKeyring {
		k := cfg.Storage.Keyring
		secrets, err := keyring.Open(keyring.Config{
			ServiceName:  k.ServiceName,
			Backends:     k.Backends,
			FileDir:      k.FileDir,
			FilePassword: k.FilePassword,
		}, log)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.Store = routed.NewStore(base).Route(domain.KeyAPIKey, secrets)
		log.Info("API key kept in the system keyring", zap.String("service", k.ServiceName))
	}
	if hc, ok := s.Store.(outbound.HealthChecker); ok {
		s.Checkers["settings_store"] = healthcheck.NewPingChecker("settings_store", hc)
	}

	return s, nil
}

// addGorm registers the pool behind db. On failure everything opened so far
// is released.
func (s *Storage) addGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	s.closers = append(s.closers, sqlDB.Close)
	s.Checkers["database"] = healthcheck.NewSQLChecker(sqlDB)
	return nil
}

func gormLogLevel(cfg *config.Config) gormLogger.LogLevel {
	if cfg.App.Debug {
		return gormLogger.Info
	}
	return gormLogger.Silent
}
