package entity

import (
	"time"

	"MachiKoro/internal/game/catalog"
)

// CreateGame 新开一局：目录中每种建筑按 count 展开成独立实例全部放入市场。
func CreateGame(name string) *Game {
	var market []Establishment
	for _, def := range catalog.Establishments() {
		for i := 0; i < def.Count; i++ {
			market = append(market, newEstablishment(def))
		}
	}
	return &Game{
		ID:         GameID(newID()),
		Name:       name,
		Players:    []Player{},
		Market:     market,
		MaxPlayers: DefaultMaxPlayers,
		Turn:       Turn{Phase: PhaseLobby},
		CreatedAt:  time.Now().UTC(),
	}
}

// CreatePlayer 新玩家：0 金币，初始建筑，四个未建成地标。
func CreatePlayer(name string) *Player {
	var owned []Establishment
	for _, def := range catalog.Establishments() {
		if def.Spawn {
			owned = append(owned, newEstablishment(def))
		}
	}
	defs := catalog.Landmarks()
	landmarks := make([]Landmark, 0, len(defs))
	for _, def := range defs {
		landmarks = append(landmarks, newLandmark(def))
	}
	return &Player{
		ID:                  PlayerID(newID()),
		Name:                name,
		Establishments:      owned,
		Landmarks:           landmarks,
		RollsAllowedPerTurn: 1,
		ExtraTurnWhen:       []Outcome{},
	}
}
