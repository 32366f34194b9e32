package port

//go:generate mockgen -destination=mock/repository_mock.go -package=mock MachiKoro/internal/game/app/port GameRepository,Publisher

import (
	"context"

	"MachiKoro/internal/game/entity"
)

// GameRepository 不存在时返回 errs.ErrGameNotFound。
// Snapshot 只接受比已存版本更新的快照，旧版本静默丢弃。
type GameRepository interface {
	LoadGame(ctx context.Context, id entity.GameID) (*entity.GameSnapshot, error)
	Snapshot(ctx context.Context, s *entity.GameSnapshot) error
}

// Publisher 每次状态变更后推送给本局订阅者，不得阻塞调用方。
type Publisher interface {
	Publish(g *entity.Game)
}
