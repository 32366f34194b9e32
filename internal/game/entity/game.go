package entity

import (
	"slices"
	"time"
)

const DefaultMaxPlayers = 4

// Game 一局游戏的完整状态。所有变更操作都先 Clone 再修改，入参保持不变。
//
// Bank 为带符号的净额计数：购买时增加，银行付款时减少。银行本身无上限，永远不会拒付。
type Game struct {
	ID         GameID          `json:"id" bson:"_id"`
	Name       string          `json:"name" bson:"name"`
	Bank       int64           `json:"bank" bson:"bank"`
	Players    []Player        `json:"players" bson:"players"`
	Market     []Establishment `json:"market" bson:"market"`
	MaxPlayers int             `json:"max_players" bson:"max_players"`
	Turn       Turn            `json:"turn" bson:"turn"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	next := *g
	if g.Players != nil {
		next.Players = make([]Player, len(g.Players))
		for i, p := range g.Players {
			next.Players[i] = p.Clone()
		}
	}
	next.Market = cloneEstablishments(g.Market)
	next.Turn = g.Turn.Clone()
	return &next
}

// PlayerIndex 按 id 线性查找座位号，不存在返回 -1。
func (g *Game) PlayerIndex(id PlayerID) int {
	if g == nil {
		return -1
	}
	return slices.IndexFunc(g.Players, func(p Player) bool { return p.ID == id })
}

func (g *Game) MarketIndex(id EstablishmentID) int {
	if g == nil {
		return -1
	}
	return slices.IndexFunc(g.Market, func(e Establishment) bool { return e.ID == id })
}

// ActivePlayer 当前行动玩家，大厅阶段或无人时返回 false。
func (g *Game) ActivePlayer() (Player, bool) {
	if g == nil || g.Turn.Phase == PhaseLobby || g.Turn.Active < 0 || g.Turn.Active >= len(g.Players) {
		return Player{}, false
	}
	return g.Players[g.Turn.Active], true
}

// TotalMoney 玩家金币总和。
func (g *Game) TotalMoney() int {
	total := 0
	for _, p := range g.Players {
		total += p.Money
	}
	return total
}
