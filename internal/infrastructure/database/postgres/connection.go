package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Augusto140/Englife-server/internal/config"
	"github.com/Augusto140/Englife-server/internal/logger"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultConnectTimeout = 5 * time.Second

// DB is the connection provider shared by all repositories.
type DB struct {
	*gorm.DB
	connectTimeout time.Duration
}

// NewDB opens the postgres pool described by cfg. The store is not contacted
// here, so the process starts even when the database is down.
func NewDB(cfg *config.Config) (*DB, error) {
	db, err := Open(postgres.Open(cfg.Database.DSN()), cfg.Server.Environment, cfg.Database)
	if err != nil {
		return nil, err
	}

	logger.Info("Database pool configured",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_open_connections", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_connections", cfg.Database.MaxIdleConns),
		zap.Duration("connect_timeout", db.connectTimeout),
	)

	return db, nil
}

// Open wraps any gorm dialector in a DB. Tests use it with sqlite and sqlmock.
func Open(dialector gorm.Dialector, environment string, dbCfg config.DatabaseConfig) (*DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.NewGormLogger(environment),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	timeout := dbCfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	return &DB{DB: db, connectTimeout: timeout}, nil
}

type sessionKey struct{ db *DB }

// session remembers the outcome of the first connection check of a request.
type session struct {
	once sync.Once
	err  error
}

// WithSession returns a context in which the first Acquire checks the store
// and later calls reuse that outcome, so a request pings at most once.
func (d *DB) WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{db: d}, &session{})
}

// Acquire checks that a pooled connection can be obtained within the connect
// timeout and returns a handle bound to ctx. Failure is reported as
// CONNECTION_UNAVAILABLE so callers never see a raw driver error.
func (d *DB) Acquire(ctx context.Context) (*gorm.DB, error) {
	if s, ok := ctx.Value(sessionKey{db: d}).(*session); ok {
		s.once.Do(func() { s.err = d.ping(ctx) })
		if s.err != nil {
			return nil, s.err
		}
		return d.DB.WithContext(ctx), nil
	}

	if err := d.ping(ctx); err != nil {
		return nil, err
	}
	return d.DB.WithContext(ctx), nil
}

func (d *DB) ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return appErrors.Unavailable(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, d.connectTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Ctx(ctx).Error("Database unavailable",
			zap.Error(err),
			zap.Duration("timeout", d.connectTimeout),
		)
		return appErrors.Unavailable(err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health always contacts the store, ignoring any request session.
func (d *DB) Health(ctx context.Context) error {
	return d.ping(ctx)
}
