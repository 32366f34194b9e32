package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MachiKoro/internal/shared/logs"
	"MachiKoro/internal/shared/serverconfig"
)

const slowThreshold = 200 * time.Millisecond

func gormConfig(showSQL bool) *gorm.Config {
	lvl := logger.Warn
	if showSQL {
		lvl = logger.Info
	}
	return &gorm.Config{Logger: logs.NewGormLogger(lvl, slowThreshold)}
}

// OpenMySQL 连接 MySQL 并设置连接池。
func OpenMySQL(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	if cfg.Host == "" || cfg.DBName == "" {
		return nil, errors.New("mysql host/dbname is empty")
	}
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	// username:password@protocol(address)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg.ShowSQL))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}

	logs.Info("open mysql success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

// OpenSQLite Path 为空时打开共享内存库，适合本地调试与测试。
func OpenSQLite(cfg serverconfig.SQLiteConfig) (*gorm.DB, error) {
	dsn := cfg.Path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(cfg.ShowSQL))
	if err != nil {
		return nil, err
	}
	// sqlite 单写
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	logs.Info("open sqlite success", zap.String("path", dsn))
	return db, nil
}
