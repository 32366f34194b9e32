package sqlstore

import (
	"time"

	"MachiKoro/internal/game/entity"
)

// GameRow 一局一行：整局状态以 JSON 存在 game 列，version 做乐观写入条件。
type GameRow struct {
	ID        string       `gorm:"column:id;primaryKey;size:64"`
	Name      string       `gorm:"column:name;size:128"`
	Phase     string       `gorm:"column:phase;size:32;index"`
	Version   uint64       `gorm:"column:version;not null"`
	Game      *entity.Game `gorm:"column:game;serializer:json;type:longtext"`
	CreatedAt time.Time    `gorm:"column:created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

func (GameRow) TableName() string {
	return "games"
}

func snapshotToRow(s *entity.GameSnapshot) *GameRow {
	return &GameRow{
		ID:      string(s.Game.ID),
		Name:    s.Game.Name,
		Phase:   string(s.Game.Turn.Phase),
		Version: s.Version,
		Game:    s.Game,
	}
}

func rowToSnapshot(r *GameRow) *entity.GameSnapshot {
	return &entity.GameSnapshot{Version: r.Version, Game: r.Game}
}
