package mongodb

import (
	"context"
	"errors"
	"time"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "games"

const (
	OpLoadGame = "repo.game.mongodb.LoadGame"
	OpSnapshot = "repo.game.mongodb.Snapshot"
)

type gameDoc struct {
	ID        string       `bson:"_id"`
	Version   int64        `bson:"version"`
	Game      *entity.Game `bson:"game"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database, collection string) *GameRepository {
	if collection == "" {
		collection = defaultCollectionName
	}
	return &GameRepository{coll: db.Collection(collection)}
}

func (r *GameRepository) LoadGame(ctx context.Context, id entity.GameID) (*entity.GameSnapshot, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb game collection is nil")
	}

	var doc gameDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	switch {
	case err == nil:
		return docToSnapshot(doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, errs.ErrGameNotFound.WithData("game_id", string(id))
	default:
		return nil, errs.Wrap(OpLoadGame, errs.KindInfra, err, map[string]any{"game_id": string(id)})
	}
}

// Snapshot 以 version 作为乐观条件 upsert：库中版本不低于快照时过滤不命中，
// upsert 插入同 _id 触发唯一键冲突，视为旧快照丢弃。
func (r *GameRepository) Snapshot(ctx context.Context, s *entity.GameSnapshot) error {
	if s == nil || s.Game == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb game collection is nil")
	}

	doc := snapshotToDoc(s)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID, "version": bson.M{"$lt": doc.Version}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err == nil || mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return errs.Wrap(OpSnapshot, errs.KindInfra, err, map[string]any{"game_id": doc.ID, "version": doc.Version})
}

func snapshotToDoc(s *entity.GameSnapshot) gameDoc {
	return gameDoc{
		ID:        string(s.Game.ID),
		Version:   int64(s.Version),
		Game:      s.Game,
		UpdatedAt: time.Now().UTC(),
	}
}

func docToSnapshot(doc gameDoc) *entity.GameSnapshot {
	return &entity.GameSnapshot{Version: uint64(doc.Version), Game: doc.Game}
}
