package engine

import (
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/game/ledger"
)

// 起始玩家判定的最大重掷轮数，超出后取并列中座位最靠前者。
const maxStartRounds = 16

func CreateGame(name string) *entity.Game {
	return entity.CreateGame(name)
}

func CreatePlayer(name string) *entity.Player {
	return entity.CreatePlayer(name)
}

// AddPlayer 只能在大厅阶段入座。
func AddPlayer(g *entity.Game, p entity.Player) (*entity.Game, error) {
	if g.Turn.Phase != entity.PhaseLobby {
		return nil, errs.ErrGameStarted
	}
	return ledger.AddPlayerToGame(g, p)
}

// StartGame 每位玩家掷两颗骰子，点数最高者先手，并列者之间重掷。行动顺序仍按座位。
func StartGame(g *entity.Game, roller Roller) (*entity.Game, error) {
	if g.Turn.Phase != entity.PhaseLobby {
		return nil, errs.ErrInvalidPhase.WithData("phase", string(g.Turn.Phase))
	}
	if len(g.Players) < 2 {
		return nil, errs.ErrNotEnoughPlayers.WithData("players", len(g.Players))
	}

	candidates := make([]int, len(g.Players))
	for i := range candidates {
		candidates[i] = i
	}
	for round := 0; len(candidates) > 1 && round < maxStartRounds; round++ {
		best, tied := 0, candidates[:0:0]
		for _, seat := range candidates {
			sum := entity.Roll{Dice: roller.Roll(maxDice)}.Sum()
			switch {
			case sum > best:
				best, tied = sum, append(tied[:0], seat)
			case sum == best:
				tied = append(tied, seat)
			}
		}
		candidates = tied
	}

	tx := ledger.Begin(g)
	next := tx.Game()
	next.Turn = entity.Turn{Phase: entity.PhaseAwaitingRoll, Active: candidates[0], Number: 1}
	return tx.Commit(), nil
}

// Winner 第一位四个地标全部建成的玩家。
func Winner(g *entity.Game) (entity.Player, bool) {
	for _, p := range g.Players {
		if p.AllLandmarksPurchased() {
			return p.Clone(), true
		}
	}
	return entity.Player{}, false
}

// guard 通用回合校验：玩家存在 -> 游戏已开始且未结束 -> 轮到该玩家 -> 阶段匹配。
func guard(g *entity.Game, playerID entity.PlayerID, phases ...entity.Phase) (int, error) {
	seat := g.PlayerIndex(playerID)
	if seat < 0 {
		return -1, errs.ErrPlayerNotInGame.WithData("player_id", string(playerID))
	}
	if g.Turn.Phase == entity.PhaseLobby {
		return -1, errs.ErrInvalidPhase.WithData("phase", string(g.Turn.Phase))
	}
	if _, done := Winner(g); done {
		return -1, errs.ErrGameFinished
	}
	if g.Turn.Active != seat {
		return -1, errs.ErrNotYourTurn.WithData("player_id", string(playerID))
	}
	for _, ph := range phases {
		if g.Turn.Phase == ph {
			return seat, nil
		}
	}
	return -1, errs.ErrInvalidPhase.WithData("phase", string(g.Turn.Phase))
}
