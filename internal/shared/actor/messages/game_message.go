package messages

import "MachiKoro/internal/game/entity"

// GameMessage 由 ManagerActor 按 GameID 路由到对应的会话 actor。
type GameMessage interface {
	GameID() entity.GameID
	PlayerID() entity.PlayerID
}

type GameBaseMessage struct {
	GameId   entity.GameID
	PlayerId entity.PlayerID
}

func (m GameBaseMessage) GameID() entity.GameID {
	return m.GameId
}

func (m GameBaseMessage) PlayerID() entity.PlayerID {
	return m.PlayerId
}

// CreateGame 由 ManagerActor 分配 GameID 后转给新会话。
type CreateGame struct {
	GameBaseMessage
	Name string
}

type JoinGame struct {
	GameBaseMessage
	Name string
}

type StartGame struct {
	GameBaseMessage
}

// RollDice Dice 非空时按给定点数结算，否则掷 DiceCount 颗。
type RollDice struct {
	GameBaseMessage
	DiceCount int
	Dice      []int
}

type Reroll struct {
	GameBaseMessage
	Dice []int
}

type KeepRoll struct {
	GameBaseMessage
}

type BuyEstablishment struct {
	GameBaseMessage
	EstablishmentId entity.EstablishmentID
}

type BuyLandmark struct {
	GameBaseMessage
	LandmarkId entity.LandmarkID
}

type Trade struct {
	GameBaseMessage
	Give   entity.EstablishmentID
	Target entity.PlayerID
	Take   entity.EstablishmentID
}

type EndTurn struct {
	GameBaseMessage
}

type GetGame struct {
	GameBaseMessage
}
