package handler

import (
	"MachiKoro/internal/game/entity"
)

type CreateGameReq struct {
	Name string `json:"name" binding:"required"`
}

type JoinReq struct {
	Name string `json:"name" binding:"required"`
}

// RollReq Dice 非空时按给定点数结算（调试与回放），否则服务端随机。
type RollReq struct {
	DiceCount int   `json:"dice_count"`
	Dice      []int `json:"dice"`
}

type RerollReq struct {
	Dice []int `json:"dice"`
}

type TradeReq struct {
	Give   string `json:"give" binding:"required"`
	Target string `json:"target" binding:"required"`
	Take   string `json:"take" binding:"required"`
}

type JoinResp struct {
	Game   *entity.Game   `json:"game"`
	Player *entity.Player `json:"player"`
	Token  string         `json:"token"`
}

type RollResp struct {
	Roll entity.Roll  `json:"roll"`
	Game *entity.Game `json:"game"`
}
