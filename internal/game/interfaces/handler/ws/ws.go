package ws

import (
	"context"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/interfaces/handler"
	"MachiKoro/internal/shared/security"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/internal/shared/transport/ws"
	"MachiKoro/modules/kit/errx"
	"MachiKoro/modules/kit/logx"
)

type subscribeReq struct {
	GameID string `json:"game_id"`
	// Token 可选，带上后该连接可以以此座位操作
	Token string `json:"token"`
}

type rollReq struct {
	DiceCount int   `json:"dice_count"`
	Dice      []int `json:"dice"`
}

type purchaseReq struct {
	EstablishmentID string `json:"establishment_id"`
	LandmarkID      string `json:"landmark_id"`
}

type WsHandler struct {
	svc handler.GameService
	hub *ws.Hub
	log logx.Logger
}

func NewWsHandler(svc handler.GameService, hub *ws.Hub, log logx.Logger) *WsHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &WsHandler{svc: svc, hub: hub, log: log}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("game")
	g.Handle("subscribe", h.Subscribe)
	g.Handle("state", h.State)
	g.Handle("start", h.Start)
	g.Handle("roll", h.Roll)
	g.Handle("reroll", h.Reroll)
	g.Handle("keep", h.KeepRoll)
	g.Handle("buyEstablishment", h.BuyEstablishment)
	g.Handle("buyLandmark", h.BuyLandmark)
	g.Handle("trade", h.Trade)
	g.Handle("endTurn", h.EndTurn)
}

// Subscribe 订阅一局的 game.update 推送；携带令牌时把座位绑定到连接。
func (h *WsHandler) Subscribe(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req subscribeReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	if req.GameID == "" {
		h.fail(wsResp, errx.ErrReqParamERR.WithData("field", "game_id"))
		return
	}
	transport.SetGameID(ctx, req.GameID)

	g, err := h.svc.Get(ctx, entity.GameID(req.GameID))
	if err != nil {
		h.error(ctx, wsResp, "subscribe", err)
		return
	}
	if req.Token != "" {
		_, claims, err := security.ParseToken(req.Token)
		if err != nil || claims.GameID != req.GameID {
			h.fail(wsResp, errx.ErrUnauthorized.WithData("reason", "invalid_token"))
			return
		}
		wsReq.Conn.SetProperty(ws.ConnKeySeat, claims)
	}
	h.hub.Subscribe(req.GameID, wsReq.Conn)
	h.ok(wsResp, g)
}

func (h *WsHandler) State(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req subscribeReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	g, err := h.svc.Get(ctx, entity.GameID(req.GameID))
	h.reply(ctx, wsResp, "state", g, err)
}

func (h *WsHandler) Start(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	g, err := h.svc.Start(ctx, gid(seat), pid(seat))
	h.reply(ctx, wsResp, "start", g, err)
}

func (h *WsHandler) Roll(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req rollReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	roll, g, err := h.svc.Roll(ctx, gid(seat), pid(seat), req.DiceCount, req.Dice)
	if err != nil {
		h.error(ctx, wsResp, "roll", err)
		return
	}
	h.ok(wsResp, handler.RollResp{Roll: roll, Game: g})
}

func (h *WsHandler) Reroll(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req rollReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	roll, g, err := h.svc.Reroll(ctx, gid(seat), pid(seat), req.Dice)
	if err != nil {
		h.error(ctx, wsResp, "reroll", err)
		return
	}
	h.ok(wsResp, handler.RollResp{Roll: roll, Game: g})
}

func (h *WsHandler) KeepRoll(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	g, err := h.svc.KeepRoll(ctx, gid(seat), pid(seat))
	h.reply(ctx, wsResp, "keep", g, err)
}

func (h *WsHandler) BuyEstablishment(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req purchaseReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	g, err := h.svc.BuyEstablishment(ctx, gid(seat), pid(seat), entity.EstablishmentID(req.EstablishmentID))
	h.reply(ctx, wsResp, "buyEstablishment", g, err)
}

func (h *WsHandler) BuyLandmark(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req purchaseReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	g, err := h.svc.BuyLandmark(ctx, gid(seat), pid(seat), entity.LandmarkID(req.LandmarkID))
	h.reply(ctx, wsResp, "buyLandmark", g, err)
}

func (h *WsHandler) Trade(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req handler.TradeReq
	if !h.bind(wsReq, wsResp, &req) {
		return
	}
	g, err := h.svc.Trade(ctx, gid(seat), pid(seat),
		entity.EstablishmentID(req.Give), entity.PlayerID(req.Target), entity.EstablishmentID(req.Take))
	h.reply(ctx, wsResp, "trade", g, err)
}

func (h *WsHandler) EndTurn(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	g, err := h.svc.EndTurn(ctx, gid(seat), pid(seat))
	h.reply(ctx, wsResp, "endTurn", g, err)
}

// seat 变更操作必须先 game.subscribe 带令牌绑定座位。
func (h *WsHandler) seat(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (*security.Claims, bool) {
	if wsReq == nil || wsReq.Conn == nil {
		h.fail(wsResp, errx.ErrReqParamERR)
		return nil, false
	}
	claims, ok := wsReq.Conn.GetProperty(ws.ConnKeySeat).(*security.Claims)
	if !ok || claims == nil {
		h.fail(wsResp, errx.ErrUnauthorized.WithData("reason", "seat_not_bound"))
		return nil, false
	}
	transport.SetGameID(ctx, claims.GameID)
	return claims, true
}

func (h *WsHandler) bind(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp, dst any) bool {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, errx.ErrReqParamERR)
		return false
	}
	if err := ws.BindJSON(wsReq, dst); err != nil {
		h.fail(wsResp, errx.ErrReqParamERR.WithCause(err))
		return false
	}
	return true
}

func (h *WsHandler) reply(ctx context.Context, resp *ws.WsMsgResp, action string, g *entity.Game, err error) {
	if err != nil {
		h.error(ctx, resp, action, err)
		return
	}
	h.ok(resp, g)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = transport.Success(data)
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, err *errx.Error) {
	if resp == nil || resp.Body == nil {
		return
	}
	code := handler.CodeFromError(err)
	resp.Body.Code = int(code)
	resp.Body.Msg = transport.Failure(code, err)
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action string, err error) {
	code, body := handler.HandleError(ctx, h.log, "game ws "+action, err)
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = int(code)
	resp.Body.Msg = body
}

func gid(c *security.Claims) entity.GameID {
	return entity.GameID(c.GameID)
}

func pid(c *security.Claims) entity.PlayerID {
	return entity.PlayerID(c.PlayerID)
}
