// Package sqlite contains the concrete implementation of the local
// persistence layer using GORM over a single-file sqlite database. The only
// table is an opaque key-value store for blobs that must survive restarts.
package sqlite

import (
	"context"
	"log/slog"
	"os"
	"time"

	"mise/config"
	"mise/internal/domain/lifecycle"
	"mise/internal/errors"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// KVEntry is one persisted blob. Values are opaque to this layer.
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName keeps the table name stable across gorm naming strategies.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the local database and migrates the key-value table.
func New(params Params) (*gorm.DB, error) {
	if err := os.MkdirAll(params.Config.Cache.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create cache directory")
	}

	db, err := gorm.Open(sqlite.Open(params.Config.SessionDBPath()), &gorm.Config{
		Logger: newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open local database")
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, errors.Wrap(err, "migrate local database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get local sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(sqlDB.PingContext(ctx), "ping local database")
		},
		OnStop: func(context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
