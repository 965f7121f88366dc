package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Options configures Open.
type Options struct {
	DSN         string
	ReplicaDSNs []string
	Logger      logger.Interface
	MaxOpen     int
	MaxIdle     int
}

// Open connects to PostgreSQL. Reads are spread over the replicas when any are
// given; writes and transactions always go to the primary.
func Open(opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), Config(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if len(opts.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(opts.ReplicaDSNs))
		for _, dsn := range opts.ReplicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if opts.MaxOpen > 0 {
			resolver = resolver.SetMaxOpenConns(opts.MaxOpen)
		}
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpen)
	}
	if opts.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Config is the gorm configuration shared by every dialect this service opens.
// Timestamps are always UTC and driver errors are translated into gorm's
// sentinel errors such as gorm.ErrDuplicatedKey.
func Config(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    false,
		Logger:         l,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
