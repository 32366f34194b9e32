package mongodb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestGameDoc_BSON往返保留全部字段(t *testing.T) {
	g := entity.CreateGame("bson")
	p := entity.CreatePlayer("alice")
	p.Money = 7
	g.Players = append(g.Players, *p)
	g.Turn = entity.Turn{Phase: entity.PhaseActing, Number: 3, Roll: &entity.Roll{Dice: []int{2, 5}}}

	raw, err := bson.Marshal(snapshotToDoc(&entity.GameSnapshot{Version: 4, Game: g}))
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	var doc gameDoc
	if err = bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal err=%v", err)
	}
	s := docToSnapshot(doc)
	if s.Version != 4 || s.Game.ID != g.ID || len(s.Game.Market) != len(g.Market) {
		t.Fatalf("期望版本与市场保留, got=%d %d", s.Version, len(s.Game.Market))
	}
	got := s.Game.Players[0]
	if got.Money != 7 || len(got.Landmarks) != len(p.Landmarks) || got.Landmarks[0].ID != p.Landmarks[0].ID {
		t.Fatalf("期望玩家字段保留, got=%+v", got)
	}
	if s.Game.Turn.Roll == nil || s.Game.Turn.Roll.Sum() != 7 || s.Game.Turn.Phase != entity.PhaseActing {
		t.Fatalf("期望回合字段保留, got=%+v", s.Game.Turn)
	}
}

// 需要真实 mongodb：MACHIKORO_TEST_MONGO_URI=mongodb://localhost:27017
func TestGameRepository_集成(t *testing.T) {
	uri := os.Getenv("MACHIKORO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MACHIKORO_TEST_MONGO_URI 未设置")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect err=%v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database("machikoro_test")
	r := NewGameRepository(db, "games_"+time.Now().Format("150405.000"))
	defer func() { _ = r.coll.Drop(context.Background()) }()

	if _, err = r.LoadGame(ctx, "missing"); !errors.Is(err, errs.ErrGameNotFound) {
		t.Fatalf("期望 ErrGameNotFound, got=%v", err)
	}

	g := entity.CreateGame("mongo")
	if err = r.Snapshot(ctx, &entity.GameSnapshot{Version: 2, Game: g}); err != nil {
		t.Fatalf("snapshot err=%v", err)
	}
	stale := g.Clone()
	stale.Name = "stale"
	if err = r.Snapshot(ctx, &entity.GameSnapshot{Version: 1, Game: stale}); err != nil {
		t.Fatalf("期望旧版本静默丢弃, got=%v", err)
	}
	s, err := r.LoadGame(ctx, g.ID)
	if err != nil {
		t.Fatalf("load err=%v", err)
	}
	if s.Version != 2 || s.Game.Name != "mongo" {
		t.Fatalf("期望 version=2 name=mongo, got=%d %s", s.Version, s.Game.Name)
	}
}
