package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/game/infra/persistence/memory"
	"MachiKoro/internal/game/infra/persistence/sqlstore"
	"MachiKoro/internal/shared/serverconfig"
)

func TestOpenRepository_默认内存(t *testing.T) {
	repo, closeFn, err := openRepository(context.Background(), serverconfig.Config{})
	if err != nil {
		t.Fatalf("期望成功, got=%v", err)
	}
	if _, ok := repo.(*memory.GameRepository); !ok {
		t.Fatalf("期望内存仓储, got=%T", repo)
	}
	if err := closeFn(context.Background()); err != nil {
		t.Fatalf("期望关闭成功, got=%v", err)
	}
}

func TestOpenRepository_sqlite建表后可读(t *testing.T) {
	cfg := serverconfig.Config{
		Persistence: serverconfig.PersistenceConfig{Driver: " SQLite "},
		SQLite:      serverconfig.SQLiteConfig{Path: filepath.Join(t.TempDir(), "game.db")},
	}
	repo, closeFn, err := openRepository(context.Background(), cfg)
	if err != nil {
		t.Fatalf("期望成功, got=%v", err)
	}
	defer func() { _ = closeFn(context.Background()) }()

	if _, ok := repo.(*sqlstore.GameRepository); !ok {
		t.Fatalf("期望 sql 仓储, got=%T", repo)
	}
	_, err = repo.LoadGame(context.Background(), entity.GameID("missing"))
	if !errors.Is(err, errs.ErrGameNotFound) {
		t.Fatalf("期望 GAME_NOT_FOUND, got=%v", err)
	}
}

func TestOpenRepository_未知驱动(t *testing.T) {
	cfg := serverconfig.Config{Persistence: serverconfig.PersistenceConfig{Driver: "redis"}}
	if _, _, err := openRepository(context.Background(), cfg); err == nil {
		t.Fatalf("期望报错")
	}
}

func TestHostPort_空主机使用通配地址(t *testing.T) {
	if got := hostPort("", 8080); got != "0.0.0.0:8080" {
		t.Fatalf("期望 0.0.0.0:8080, got=%s", got)
	}
}
