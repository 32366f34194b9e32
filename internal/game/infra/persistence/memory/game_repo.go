package memory

import (
	"context"
	"sync"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
)

// GameRepository 进程内存储，用于本地调试与测试。读写都做深拷贝，调用方拿到的对象互不影响。
type GameRepository struct {
	mu    sync.RWMutex
	games map[entity.GameID]entity.GameSnapshot
}

func NewGameRepository() *GameRepository {
	return &GameRepository{games: make(map[entity.GameID]entity.GameSnapshot)}
}

func (r *GameRepository) LoadGame(ctx context.Context, id entity.GameID) (*entity.GameSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.games[id]
	if !ok {
		return nil, errs.ErrGameNotFound.WithData("game_id", string(id))
	}
	return &entity.GameSnapshot{Version: s.Version, Game: s.Game.Clone()}, nil
}

func (r *GameRepository) Snapshot(ctx context.Context, s *entity.GameSnapshot) error {
	if s == nil || s.Game == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.games[s.Game.ID]; ok && cur.Version >= s.Version {
		return nil
	}
	r.games[s.Game.ID] = entity.GameSnapshot{Version: s.Version, Game: s.Game.Clone()}
	return nil
}

// Len 已存对局数。
func (r *GameRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
