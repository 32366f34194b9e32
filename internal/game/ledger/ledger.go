package ledger

import (
	"slices"

	"MachiKoro/internal/game/effect"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
	"MachiKoro/modules/kit/errx"
)

// AddPlayerToGame 按入座顺序追加玩家，满员返回 ErrGameFull。
func AddPlayerToGame(g *entity.Game, p entity.Player) (*entity.Game, error) {
	limit := g.MaxPlayers
	if limit <= 0 {
		limit = entity.DefaultMaxPlayers
	}
	if len(g.Players) >= limit {
		return nil, errs.ErrGameFull.WithData("max_players", limit)
	}
	if g.PlayerIndex(p.ID) >= 0 {
		return nil, errs.ErrPlayerAlreadyInGame.WithData("player_id", string(p.ID))
	}
	tx := Begin(g)
	tx.g.Players = append(tx.g.Players, p.Clone())
	return tx.Commit(), nil
}

// FindPlayer 线性查找，不存在时 ok=false，不返回错误。
func FindPlayer(g *entity.Game, id entity.PlayerID) (entity.Player, bool) {
	i := g.PlayerIndex(id)
	if i < 0 {
		return entity.Player{}, false
	}
	return g.Players[i].Clone(), true
}

// SetMoney 直接设置金币，负数被拒绝。
func SetMoney(g *entity.Game, id entity.PlayerID, money int) (*entity.Game, error) {
	if g.PlayerIndex(id) < 0 {
		return nil, errs.ErrPlayerNotInGame.WithData("player_id", string(id))
	}
	if money < 0 {
		return nil, errs.ErrNegativeMoney.WithData("money", money)
	}
	tx := Begin(g)
	p, _ := tx.player(id)
	p.Money = money
	return tx.Commit(), nil
}

// TransferMoney 玩家间转账，按付款方余额封顶，返回新状态与实际支付金额。
func TransferMoney(g *entity.Game, from, to entity.PlayerID, amount int) (*entity.Game, int, error) {
	tx := Begin(g)
	paid, err := tx.Transfer(from, to, amount)
	if err != nil {
		return nil, 0, err
	}
	return tx.Commit(), paid, nil
}

// PayFromBank 银行付款给玩家，Bank 同步扣减。
func PayFromBank(g *entity.Game, to entity.PlayerID, amount int) (*entity.Game, error) {
	tx := Begin(g)
	if err := tx.Credit(to, amount); err != nil {
		return nil, err
	}
	return tx.Commit(), nil
}

// FindMarketEstablishment 返回市场中该建筑的副本，不存在时 ok=false。
func FindMarketEstablishment(g *entity.Game, id entity.EstablishmentID) (entity.Establishment, bool) {
	i := g.MarketIndex(id)
	if i < 0 {
		return entity.Establishment{}, false
	}
	return g.Market[i].Clone(), true
}

// PurchaseEstablishment 校验顺序：玩家 -> 市场可购 -> 金币。通过后扣钱、入手、出市场、进银行。
func PurchaseEstablishment(g *entity.Game, playerID entity.PlayerID, estID entity.EstablishmentID) (*entity.Game, error) {
	tx := Begin(g)
	if err := tx.PurchaseEstablishment(playerID, estID); err != nil {
		return nil, err
	}
	return tx.Commit(), nil
}

func (tx *Tx) PurchaseEstablishment(playerID entity.PlayerID, estID entity.EstablishmentID) error {
	p, err := tx.player(playerID)
	if err != nil {
		return err
	}
	mi := tx.g.MarketIndex(estID)
	if mi < 0 {
		return errs.ErrEstablishmentUnavailable.WithReason(errs.ReasonNotInMarket).WithData("establishment_id", string(estID))
	}
	est := tx.g.Market[mi]
	if est.IsMajor() && p.OwnsDef(est.DefID) {
		return errs.ErrEstablishmentUnavailable.WithReason(errs.ReasonMajorOwned).WithData("establishment_id", string(estID))
	}
	if p.Money < est.Cost {
		return insufficient(est.Cost, p.Money)
	}

	p.Money -= est.Cost
	p.Establishments = append(p.Establishments, est)
	tx.g.Market = slices.Delete(tx.g.Market, mi, mi+1)
	tx.g.Bank += int64(est.Cost)
	return nil
}

// PurchaseLandmark 校验顺序：玩家 -> 地标可建 -> 金币。建成后立即应用一次地标效果。
func PurchaseLandmark(g *entity.Game, playerID entity.PlayerID, landmarkID entity.LandmarkID) (*entity.Game, error) {
	tx := Begin(g)
	if err := tx.PurchaseLandmark(playerID, landmarkID); err != nil {
		return nil, err
	}
	return tx.Commit(), nil
}

func (tx *Tx) PurchaseLandmark(playerID entity.PlayerID, landmarkID entity.LandmarkID) error {
	p, err := tx.player(playerID)
	if err != nil {
		return err
	}
	li := p.LandmarkIndex(landmarkID)
	if li < 0 {
		return errs.ErrLandmarkUnavailable.WithReason(errs.ReasonLandmarkNotOwned).WithData("landmark_id", string(landmarkID))
	}
	lm := p.Landmarks[li]
	if lm.Purchased {
		return errs.ErrLandmarkUnavailable.WithReason(errs.ReasonLandmarkBuilt).WithData("landmark_id", string(landmarkID))
	}
	if p.Money < lm.Cost {
		return insufficient(lm.Cost, p.Money)
	}

	next, err := effect.Apply(lm.Effect, *p)
	if err != nil {
		return errx.ErrInternal.WithData("landmark_id", string(landmarkID)).WithCause(err)
	}
	next.Money -= lm.Cost
	next.Landmarks[li].Purchased = true
	*p = next
	tx.g.Bank += int64(lm.Cost)
	return nil
}

func insufficient(cost, money int) error {
	return errs.ErrInsufficientFunds.WithDataMap(map[string]any{"cost": cost, "money": money})
}
