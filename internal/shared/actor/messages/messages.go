package messages

import "MachiKoro/internal/game/entity"

// GameReply 会话 actor 对所有请求的统一应答。Err 非空时其余字段无意义。
type GameReply struct {
	Game   *entity.Game
	Player *entity.Player
	Roll   *entity.Roll
	Err    error
}
