package handler

import (
	"context"

	"MachiKoro/internal/game/actor"
	"MachiKoro/internal/game/entity"
)

// GameService 接口层依赖的会话运行时，由 actor.Runtime 实现。
type GameService interface {
	CreateGame(ctx context.Context, name string) (*entity.Game, error)
	Join(ctx context.Context, gameID entity.GameID, name string) (*actor.JoinResult, error)
	Start(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error)
	Roll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, diceCount int, dice []int) (entity.Roll, *entity.Game, error)
	Reroll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, dice []int) (entity.Roll, *entity.Game, error)
	KeepRoll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error)
	BuyEstablishment(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, estID entity.EstablishmentID) (*entity.Game, error)
	BuyLandmark(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, landmarkID entity.LandmarkID) (*entity.Game, error)
	Trade(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, give entity.EstablishmentID, target entity.PlayerID, take entity.EstablishmentID) (*entity.Game, error)
	EndTurn(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error)
	Get(ctx context.Context, gameID entity.GameID) (*entity.Game, error)
}

var _ GameService = (*actor.Runtime)(nil)
