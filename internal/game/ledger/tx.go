package ledger

import (
	"slices"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
)

// Tx 在一份克隆上执行多步修改，Commit 前入参 Game 不会被触碰。
// 每个方法都先完成校验再修改，失败时 Tx 内状态保持不变。
type Tx struct {
	g *entity.Game
}

func Begin(g *entity.Game) *Tx {
	return &Tx{g: g.Clone()}
}

func (tx *Tx) Game() *entity.Game {
	return tx.g
}

// Commit 返回修改后的新状态，之后不应再使用 tx。
func (tx *Tx) Commit() *entity.Game {
	g := tx.g
	tx.g = nil
	return g
}

func (tx *Tx) player(id entity.PlayerID) (*entity.Player, error) {
	i := tx.g.PlayerIndex(id)
	if i < 0 {
		return nil, errs.ErrPlayerNotInGame.WithData("player_id", string(id))
	}
	return &tx.g.Players[i], nil
}

// Credit 银行付款给玩家，银行无上限。
func (tx *Tx) Credit(to entity.PlayerID, amount int) error {
	if amount < 0 {
		return errs.ErrNegativeMoney.WithData("amount", amount)
	}
	p, err := tx.player(to)
	if err != nil {
		return err
	}
	p.Money += amount
	tx.g.Bank -= int64(amount)
	return nil
}

// Transfer 玩家之间转账，按付款方余额封顶，返回实际支付金额。
func (tx *Tx) Transfer(from, to entity.PlayerID, amount int) (int, error) {
	if amount < 0 {
		return 0, errs.ErrNegativeMoney.WithData("amount", amount)
	}
	payer, err := tx.player(from)
	if err != nil {
		return 0, err
	}
	payee, err := tx.player(to)
	if err != nil {
		return 0, err
	}
	paid := min(amount, payer.Money)
	payer.Money -= paid
	payee.Money += paid
	return paid, nil
}

// Swap 两名玩家互换各一座非紫色建筑，换来的建筑追加到持有列表末尾。
func (tx *Tx) Swap(a entity.PlayerID, give entity.EstablishmentID, b entity.PlayerID, take entity.EstablishmentID) error {
	if a == b {
		return errs.ErrTradeUnavailable.WithReason(errs.ReasonTradeSelf)
	}
	pa, err := tx.player(a)
	if err != nil {
		return err
	}
	pb, err := tx.player(b)
	if err != nil {
		return err
	}
	gi, ti := pa.EstablishmentIndex(give), pb.EstablishmentIndex(take)
	if gi < 0 || ti < 0 {
		return errs.ErrTradeUnavailable.WithReason(errs.ReasonTradeNotOwned).
			WithDataMap(map[string]any{"give": string(give), "take": string(take)})
	}
	given, taken := pa.Establishments[gi], pb.Establishments[ti]
	if given.IsMajor() || taken.IsMajor() {
		return errs.ErrTradeUnavailable.WithReason(errs.ReasonTradeMajor)
	}

	pa.Establishments = append(slices.Delete(pa.Establishments, gi, gi+1), taken)
	pb.Establishments = append(slices.Delete(pb.Establishments, ti, ti+1), given)
	return nil
}
