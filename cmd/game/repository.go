package main

import (
	"context"
	"fmt"
	"strings"

	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/infra/persistence/memory"
	"MachiKoro/internal/game/infra/persistence/mongodb"
	"MachiKoro/internal/game/infra/persistence/sqlstore"
	"MachiKoro/internal/shared/infrastructure/db"
	sharedmongo "MachiKoro/internal/shared/infrastructure/mongo"
	"MachiKoro/internal/shared/logs"
	"MachiKoro/internal/shared/serverconfig"

	"gorm.io/gorm"
)

const (
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
	DriverMySQL   = "mysql"
	DriverSQLite  = "sqlite"
)

type closeFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// openRepository 按 persistence.driver 选择存储，返回仓储与对应的关闭函数。
func openRepository(ctx context.Context, cfg serverconfig.Config) (port.GameRepository, closeFunc, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Persistence.Driver))
	switch driver {
	case "", DriverMemory:
		return memory.NewGameRepository(), noopClose, nil
	case DriverMongoDB:
		client, err := sharedmongo.Open(ctx, cfg.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewGameRepository(client.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection)
		return repo, client.Disconnect, nil
	case DriverMySQL, DriverSQLite:
		var (
			gdb *gorm.DB
			err error
		)
		if driver == DriverMySQL {
			gdb, err = db.OpenMySQL(cfg.MySQL)
		} else {
			gdb, err = db.OpenSQLite(cfg.SQLite)
		}
		if err != nil {
			return nil, nil, err
		}
		repo := sqlstore.NewGameRepository(gdb)
		if err := repo.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		return repo, sqlCloser(gdb), nil
	default:
		return nil, nil, fmt.Errorf("unknown persistence driver %q", cfg.Persistence.Driver)
	}
}

func sqlCloser(gdb *gorm.DB) closeFunc {
	return func(context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
