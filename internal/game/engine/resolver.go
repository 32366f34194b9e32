package engine

import (
	"MachiKoro/internal/game/catalog"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/ledger"
)

// resolveIncome 按点数结算收入，顺序固定：
//  1. 银行收入（蓝色任意回合 + 绿色自己回合，含乘数）
//  2. 红色：非掷骰者向掷骰者收钱，按掷骰者余额封顶
//  3. 紫色：仅掷骰者自己的建筑
//
// 每一类内部按座位从掷骰者开始轮转，同一玩家内按持有顺序。
func resolveIncome(tx *ledger.Tx, roller int, sum int) ([]entity.Payment, error) {
	var (
		g        = tx.Game()
		n        = len(g.Players)
		payments []entity.Payment
	)
	seats := make([]int, n)
	for k := range seats {
		seats[k] = (roller + k) % n
	}
	rollerID := g.Players[roller].ID

	// 银行收入
	for _, seat := range seats {
		owner := g.Players[seat]
		for _, est := range owner.Establishments {
			if !est.ActivatesOn(sum) {
				continue
			}
			switch est.Activation {
			case catalog.ActivationAnyTurn:
			case catalog.ActivationOwnerTurn:
				if seat != roller {
					continue
				}
			default:
				continue
			}
			amount := bankAmount(owner, est)
			if amount <= 0 {
				continue
			}
			if err := tx.Credit(owner.ID, amount); err != nil {
				return nil, err
			}
			payments = append(payments, entity.Payment{
				To: owner.ID, Amount: amount, Requested: amount,
				EstablishmentID: est.ID, Title: est.Title,
			})
		}
	}

	// 红色
	for _, seat := range seats[1:] {
		owner := g.Players[seat]
		for _, est := range owner.Establishments {
			if est.Activation != catalog.ActivationFromRoller || !est.ActivatesOn(sum) {
				continue
			}
			amount := est.Income + owner.Bonus(est.Category)
			if amount <= 0 {
				continue
			}
			paid, err := tx.Transfer(rollerID, owner.ID, amount)
			if err != nil {
				return nil, err
			}
			payments = append(payments, entity.Payment{
				From: rollerID, To: owner.ID, Amount: paid, Requested: amount,
				EstablishmentID: est.ID, Title: est.Title,
			})
		}
	}

	// 紫色
	for _, est := range g.Players[roller].Establishments {
		if !est.IsMajor() || !est.ActivatesOn(sum) {
			continue
		}
		switch est.Action {
		case catalog.MajorStadium:
			for _, seat := range seats[1:] {
				from := g.Players[seat].ID
				paid, err := tx.Transfer(from, rollerID, est.Income)
				if err != nil {
					return nil, err
				}
				payments = append(payments, entity.Payment{
					From: from, To: rollerID, Amount: paid, Requested: est.Income,
					EstablishmentID: est.ID, Title: est.Title,
				})
			}
		case catalog.MajorTVStation:
			target, ok := richestOther(g, seats)
			if !ok {
				continue
			}
			paid, err := tx.Transfer(target, rollerID, est.Income)
			if err != nil {
				return nil, err
			}
			payments = append(payments, entity.Payment{
				From: target, To: rollerID, Amount: paid, Requested: est.Income,
				EstablishmentID: est.ID, Title: est.Title,
			})
		case catalog.MajorBusinessCenter:
			g.Turn.TradePending = true
		}
	}
	return payments, nil
}

// bankAmount (income + bonus) × 乘数分类持有数。
func bankAmount(owner entity.Player, est entity.Establishment) int {
	amount := est.Income + owner.Bonus(est.Category)
	if est.Multiplier != "" {
		amount *= owner.CountCategory(est.Multiplier)
	}
	return amount
}

// richestOther 掷骰者之外金币最多的玩家，并列时取座位靠前（从掷骰者之后数）的一位。
func richestOther(g *entity.Game, seats []int) (entity.PlayerID, bool) {
	best := -1
	for _, seat := range seats[1:] {
		if best < 0 || g.Players[seat].Money > g.Players[best].Money {
			best = seat
		}
	}
	if best < 0 {
		return "", false
	}
	return g.Players[best].ID, true
}
