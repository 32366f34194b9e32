package sqlstore

import (
	"context"
	"errors"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	OpLoadGame = "repo.game.sql.LoadGame"
	OpSnapshot = "repo.game.sql.Snapshot"
	OpMigrate  = "repo.game.sql.Migrate"
)

// GameRepository 基于 gorm，mysql 与 sqlite 共用同一份实现。
type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) WithTx(tx *gorm.DB) *GameRepository {
	return &GameRepository{db: tx}
}

func (r *GameRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&GameRow{}); err != nil {
		return errs.Wrap(OpMigrate, errs.KindInfra, err, nil)
	}
	return nil
}

func (r *GameRepository) LoadGame(ctx context.Context, id entity.GameID) (*entity.GameSnapshot, error) {
	var row GameRow
	err := r.db.WithContext(ctx).Where("id = ?", string(id)).First(&row).Error

	switch {
	case err == nil:
		return rowToSnapshot(&row), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errs.ErrGameNotFound.WithData("game_id", string(id))
	default:
		return nil, errs.Wrap(OpLoadGame, errs.KindInfra, err, map[string]any{"game_id": string(id)})
	}
}

// Snapshot 先按 version 条件更新，未命中再插入；主键已存在说明库中版本更新，丢弃本次快照。
func (r *GameRepository) Snapshot(ctx context.Context, s *entity.GameSnapshot) error {
	if s == nil || s.Game == nil {
		return nil
	}
	row := snapshotToRow(s)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&GameRow{}).
			Where("id = ? AND version < ?", row.ID, row.Version).
			Select("name", "phase", "version", "game", "updated_at").
			Updates(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	})
	if err != nil {
		return errs.Wrap(OpSnapshot, errs.KindInfra, err, map[string]any{"game_id": row.ID, "version": row.Version})
	}
	return nil
}
