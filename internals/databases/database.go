package database

import (
	"context"
	"time"

	"classroom_backend/internals/configs"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres pool. statement_timeout is part of the DSN so
// every connection gets it.
func Connect(cfg *configs.Config, logger gokitlog.Logger) (*gorm.DB, error) {
	_ = level.Info(logger).Log("msg", "connecting to postgres", "host", cfg.Database.Host, "db", cfg.Database.Name)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.DSN(cfg.AppName),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := TunePool(db, cfg.Database); err != nil {
		return nil, err
	}
	_ = level.Info(logger).Log("msg", "database connected")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.Database) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "pool")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// WarmUp pings in the background so the pool has a live connection before
// the first request.
func WarmUp(db *gorm.DB, logger gokitlog.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			_ = level.Warn(logger).Log("msg", "warm-up ping", "err", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
