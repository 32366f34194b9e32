package actors

import (
	"MachiKoro/internal/game/engine"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/ledger"
	"MachiKoro/internal/shared/actor/messages"
	"MachiKoro/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type GameHandler struct{}

// 全局实例
var GH = &GameHandler{}

func (h *GameHandler) HandleCreateGame(ctx actor.Context, p *GameActor, req *messages.CreateGame) {
	ctx.Respond(ok(p.Entity()))
}

func (h *GameHandler) HandleGetGame(ctx actor.Context, p *GameActor, req *messages.GetGame) {
	ctx.Respond(ok(p.Entity()))
}

func (h *GameHandler) HandleJoinGame(ctx actor.Context, p *GameActor, req *messages.JoinGame) {
	if req.Name == "" {
		ctx.Respond(fail(errx.ErrReqParamERR.WithData("field", "name")))
		return
	}
	player := engine.CreatePlayer(req.Name)
	next, err := engine.AddPlayer(p.Entity(), *player)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	// 初始资金由银行支付，保证 金币总额 + Bank 净额 不变
	if p.opts.StartingMoney > 0 {
		if next, err = ledger.PayFromBank(next, player.ID, p.opts.StartingMoney); err != nil {
			ctx.Respond(fail(err))
			return
		}
	}
	seated, _ := ledger.FindPlayer(next, player.ID)
	p.commit(next)
	ctx.Respond(&messages.GameReply{Game: next, Player: &seated})
}

func (h *GameHandler) HandleStartGame(ctx actor.Context, p *GameActor, req *messages.StartGame) {
	if p.Entity().PlayerIndex(req.PlayerID()) < 0 {
		ctx.Respond(fail(notInGame(req.PlayerID())))
		return
	}
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.StartGame(g, p.opts.Roller)
	})
}

func (h *GameHandler) HandleRollDice(ctx actor.Context, p *GameActor, req *messages.RollDice) {
	var (
		roll entity.Roll
		next *entity.Game
		err  error
	)
	if len(req.Dice) > 0 {
		if !p.opts.AllowFixedDice {
			ctx.Respond(fail(fixedDiceDisabled()))
			return
		}
		roll, next, err = engine.RollDiceWith(p.Entity(), req.PlayerID(), entity.Roll{Dice: req.Dice})
	} else {
		count := req.DiceCount
		if count == 0 {
			count = 1
		}
		roll, next, err = engine.RollDice(p.Entity(), req.PlayerID(), count, p.opts.Roller)
	}
	h.respondRoll(ctx, p, roll, next, err)
}

func (h *GameHandler) HandleReroll(ctx actor.Context, p *GameActor, req *messages.Reroll) {
	var (
		roll entity.Roll
		next *entity.Game
		err  error
	)
	if len(req.Dice) > 0 {
		if !p.opts.AllowFixedDice {
			ctx.Respond(fail(fixedDiceDisabled()))
			return
		}
		roll, next, err = engine.RerollWith(p.Entity(), req.PlayerID(), entity.Roll{Dice: req.Dice})
	} else {
		roll, next, err = engine.Reroll(p.Entity(), req.PlayerID(), p.opts.Roller)
	}
	h.respondRoll(ctx, p, roll, next, err)
}

func (h *GameHandler) HandleKeepRoll(ctx actor.Context, p *GameActor, req *messages.KeepRoll) {
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.KeepRoll(g, req.PlayerID())
	})
}

func (h *GameHandler) HandleBuyEstablishment(ctx actor.Context, p *GameActor, req *messages.BuyEstablishment) {
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.PurchaseEstablishment(g, req.PlayerID(), req.EstablishmentId)
	})
}

func (h *GameHandler) HandleBuyLandmark(ctx actor.Context, p *GameActor, req *messages.BuyLandmark) {
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.PurchaseLandmark(g, req.PlayerID(), req.LandmarkId)
	})
}

func (h *GameHandler) HandleTrade(ctx actor.Context, p *GameActor, req *messages.Trade) {
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.TradeEstablishments(g, req.PlayerID(), req.Give, req.Target, req.Take)
	})
}

func (h *GameHandler) HandleEndTurn(ctx actor.Context, p *GameActor, req *messages.EndTurn) {
	h.apply(ctx, p, func(g *entity.Game) (*entity.Game, error) {
		return engine.EndTurn(g, req.PlayerID())
	})
}

// apply 成功才替换状态；失败时当前状态保持不变。
func (h *GameHandler) apply(ctx actor.Context, p *GameActor, op func(*entity.Game) (*entity.Game, error)) {
	next, err := op(p.Entity())
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	p.commit(next)
	ctx.Respond(ok(next))
}

func (h *GameHandler) respondRoll(ctx actor.Context, p *GameActor, roll entity.Roll, next *entity.Game, err error) {
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	p.commit(next)
	ctx.Respond(&messages.GameReply{Game: next, Roll: &roll})
}

func fixedDiceDisabled() error {
	return errx.ErrReqParamERR.WithDataMap(map[string]any{"field": "dice", "reason": "fixed_dice_disabled"})
}
