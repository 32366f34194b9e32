package engine

import (
	"slices"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/game/ledger"
)

// RollDice 掷 diceCount 颗骰子。
func RollDice(g *entity.Game, playerID entity.PlayerID, diceCount int, roller Roller) (entity.Roll, *entity.Game, error) {
	seat, err := guard(g, playerID, entity.PhaseAwaitingRoll)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	if err := validateDiceCount(diceCount, g.Players[seat].RollsAllowedPerTurn); err != nil {
		return entity.Roll{}, nil, err
	}
	roll := entity.Roll{Dice: roller.Roll(diceCount)}
	next, err := applyRoll(g, seat, roll)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	return roll, next, nil
}

// RollDiceWith 使用外部给定的点数，先校验再结算。
func RollDiceWith(g *entity.Game, playerID entity.PlayerID, roll entity.Roll) (entity.Roll, *entity.Game, error) {
	seat, err := guard(g, playerID, entity.PhaseAwaitingRoll)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	if err := validateRoll(roll, g.Players[seat].RollsAllowedPerTurn); err != nil {
		return entity.Roll{}, nil, err
	}
	roll = entity.Roll{Dice: slices.Clone(roll.Dice)}
	next, err := applyRoll(g, seat, roll)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	return roll, next, nil
}

// Reroll 消耗一次重掷机会，骰子数与上次相同。
func Reroll(g *entity.Game, playerID entity.PlayerID, roller Roller) (entity.Roll, *entity.Game, error) {
	seat, err := rerollGuard(g, playerID)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	roll := entity.Roll{Dice: roller.Roll(len(g.Turn.Roll.Dice))}
	return reroll(g, seat, roll)
}

func RerollWith(g *entity.Game, playerID entity.PlayerID, roll entity.Roll) (entity.Roll, *entity.Game, error) {
	seat, err := rerollGuard(g, playerID)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	if err := validateRoll(roll, g.Players[seat].RollsAllowedPerTurn); err != nil {
		return entity.Roll{}, nil, err
	}
	return reroll(g, seat, entity.Roll{Dice: slices.Clone(roll.Dice)})
}

// KeepRoll 放弃剩余重掷，按当前点数结算。
func KeepRoll(g *entity.Game, playerID entity.PlayerID) (*entity.Game, error) {
	seat, err := guard(g, playerID, entity.PhaseRolling)
	if err != nil {
		return nil, err
	}
	tx := ledger.Begin(g)
	if err := finalize(tx, seat); err != nil {
		return nil, err
	}
	return tx.Commit(), nil
}

// PurchaseEstablishment 行动阶段每回合限购一次。
func PurchaseEstablishment(g *entity.Game, playerID entity.PlayerID, estID entity.EstablishmentID) (*entity.Game, error) {
	if err := purchaseGuard(g, playerID); err != nil {
		return nil, err
	}
	tx := ledger.Begin(g)
	if err := tx.PurchaseEstablishment(playerID, estID); err != nil {
		return nil, err
	}
	tx.Game().Turn.Purchased = true
	return tx.Commit(), nil
}

func PurchaseLandmark(g *entity.Game, playerID entity.PlayerID, landmarkID entity.LandmarkID) (*entity.Game, error) {
	if err := purchaseGuard(g, playerID); err != nil {
		return nil, err
	}
	tx := ledger.Begin(g)
	if err := tx.PurchaseLandmark(playerID, landmarkID); err != nil {
		return nil, err
	}
	tx.Game().Turn.Purchased = true
	return tx.Commit(), nil
}

// TradeEstablishments 商业中心触发后可与另一名玩家交换一座非紫色建筑。
func TradeEstablishments(g *entity.Game, playerID entity.PlayerID, give entity.EstablishmentID, target entity.PlayerID, take entity.EstablishmentID) (*entity.Game, error) {
	if _, err := guard(g, playerID, entity.PhaseActing); err != nil {
		return nil, err
	}
	if !g.Turn.TradePending {
		return nil, errs.ErrTradeUnavailable.WithReason(errs.ReasonTradeNotPending)
	}
	tx := ledger.Begin(g)
	if err := tx.Swap(playerID, give, target, take); err != nil {
		return nil, err
	}
	tx.Game().Turn.TradePending = false
	return tx.Commit(), nil
}

// EndTurn 结束回合。Rolling 阶段先按当前点数结算；掷出额外回合条件时同一玩家继续。
func EndTurn(g *entity.Game, playerID entity.PlayerID) (*entity.Game, error) {
	seat, err := guard(g, playerID, entity.PhaseActing, entity.PhaseRolling)
	if err != nil {
		return nil, err
	}
	tx := ledger.Begin(g)
	next := tx.Game()
	if next.Turn.Phase == entity.PhaseRolling {
		if err := finalize(tx, seat); err != nil {
			return nil, err
		}
	}
	active := (seat + 1) % len(next.Players)
	if extraTurn(next.Players[seat], next.Turn.Roll) {
		active = seat
	}
	next.Turn = entity.Turn{
		Phase:  entity.PhaseAwaitingRoll,
		Active: active,
		Number: next.Turn.Number + 1,
	}
	return tx.Commit(), nil
}

func applyRoll(g *entity.Game, seat int, roll entity.Roll) (*entity.Game, error) {
	tx := ledger.Begin(g)
	next := tx.Game()
	next.Turn.Roll = &roll
	next.Turn.Phase = entity.PhaseRolling
	if next.Turn.RerollsUsed >= next.Players[seat].RerollsPerTurn {
		if err := finalize(tx, seat); err != nil {
			return nil, err
		}
	}
	return tx.Commit(), nil
}

func reroll(g *entity.Game, seat int, roll entity.Roll) (entity.Roll, *entity.Game, error) {
	tx := ledger.Begin(g)
	next := tx.Game()
	next.Turn.Roll = &roll
	next.Turn.RerollsUsed++
	if next.Turn.RerollsUsed >= next.Players[seat].RerollsPerTurn {
		if err := finalize(tx, seat); err != nil {
			return entity.Roll{}, nil, err
		}
	}
	return roll, tx.Commit(), nil
}

// finalize Rolling -> ResolvingIncome -> Acting。
func finalize(tx *ledger.Tx, seat int) error {
	next := tx.Game()
	next.Turn.Phase = entity.PhaseResolvingIncome
	payments, err := resolveIncome(tx, seat, next.Turn.Roll.Sum())
	if err != nil {
		return err
	}
	next.Turn.Payments = payments
	next.Turn.Phase = entity.PhaseActing
	return nil
}

func rerollGuard(g *entity.Game, playerID entity.PlayerID) (int, error) {
	seat, err := guard(g, playerID, entity.PhaseRolling)
	if err != nil {
		return -1, err
	}
	if g.Turn.RerollsUsed >= g.Players[seat].RerollsPerTurn || g.Turn.Roll == nil {
		return -1, errs.ErrInvalidPhase.WithReason(errs.ReasonNoReroll)
	}
	return seat, nil
}

// purchaseGuard 玩家存在的校验排在最前，与账本的校验顺序一致。
func purchaseGuard(g *entity.Game, playerID entity.PlayerID) error {
	if _, err := guard(g, playerID, entity.PhaseActing); err != nil {
		return err
	}
	if g.Turn.Purchased {
		return errs.ErrAlreadyPurchased
	}
	return nil
}

func extraTurn(p entity.Player, roll *entity.Roll) bool {
	if roll == nil {
		return false
	}
	for _, o := range roll.Outcomes() {
		if p.ExtraTurnOn(o) {
			return true
		}
	}
	return false
}
