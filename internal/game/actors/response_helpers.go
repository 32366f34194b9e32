package actors

import (
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/shared/actor/messages"
)

func ok(g *entity.Game) *messages.GameReply {
	return &messages.GameReply{Game: g}
}

func fail(err error) *messages.GameReply {
	return &messages.GameReply{Err: err}
}

func notInGame(id entity.PlayerID) error {
	return errs.ErrPlayerNotInGame.WithData("player_id", string(id))
}
