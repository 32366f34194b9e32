package memory

import (
	"context"
	"errors"
	"testing"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
)

func TestGameRepository_不存在返回GameNotFound(t *testing.T) {
	r := NewGameRepository()
	if _, err := r.LoadGame(context.Background(), "missing"); !errors.Is(err, errs.ErrGameNotFound) {
		t.Fatalf("期望 ErrGameNotFound, got=%v", err)
	}
}

func TestGameRepository_旧版本被忽略(t *testing.T) {
	r := NewGameRepository()
	ctx := context.Background()
	g := entity.CreateGame("mem")

	if err := r.Snapshot(ctx, &entity.GameSnapshot{Version: 2, Game: g}); err != nil {
		t.Fatalf("err=%v", err)
	}
	stale := g.Clone()
	stale.Name = "stale"
	if err := r.Snapshot(ctx, &entity.GameSnapshot{Version: 1, Game: stale}); err != nil {
		t.Fatalf("err=%v", err)
	}

	s, err := r.LoadGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if s.Version != 2 || s.Game.Name != "mem" {
		t.Fatalf("期望保留 version=2, got=%d name=%s", s.Version, s.Game.Name)
	}
}

func TestGameRepository_读写深拷贝(t *testing.T) {
	r := NewGameRepository()
	ctx := context.Background()
	g := entity.CreateGame("mem")
	_ = r.Snapshot(ctx, &entity.GameSnapshot{Version: 1, Game: g})

	g.Market = nil
	s, _ := r.LoadGame(ctx, g.ID)
	if len(s.Game.Market) == 0 {
		t.Fatalf("期望存储不受调用方修改影响")
	}
	s.Game.Name = "changed"
	again, _ := r.LoadGame(ctx, g.ID)
	if again.Game.Name != "mem" {
		t.Fatalf("期望读取结果互不影响, got=%s", again.Game.Name)
	}
}
