package http

import (
	nethttp "net/http"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/interfaces/handler"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/internal/shared/transport/http/middleware"
	"MachiKoro/modules/kit/errx"
	"MachiKoro/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type HttpHandler struct {
	svc handler.GameService
	log logx.Logger
}

func NewHttpHandler(svc handler.GameService, log logx.Logger) *HttpHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &HttpHandler{svc: svc, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	games := group.Group("/games")
	games.POST("", h.CreateGame)
	games.GET("/:id", h.GetGame)
	games.POST("/:id/players", h.Join)

	// 以下操作需要座位令牌，令牌中的 game id 必须与路径一致
	seat := games.Group("/:id", middleware.SeatAuth(), h.sameGame)
	seat.POST("/start", h.Start)
	seat.POST("/roll", h.Roll)
	seat.POST("/reroll", h.Reroll)
	seat.POST("/keep", h.KeepRoll)
	seat.POST("/establishments/:eid/purchase", h.BuyEstablishment)
	seat.POST("/landmarks/:lid/purchase", h.BuyLandmark)
	seat.POST("/trade", h.Trade)
	seat.POST("/end-turn", h.EndTurn)
}

func (h *HttpHandler) CreateGame(c *gin.Context) {
	var req handler.CreateGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errx.ErrReqParamERR.WithData("field", "name"))
		return
	}
	g, err := h.svc.CreateGame(c.Request.Context(), req.Name)
	if err != nil {
		h.error(c, "create game", err)
		return
	}
	transport.SetGameID(c.Request.Context(), string(g.ID))
	h.ok(c, g)
}

func (h *HttpHandler) GetGame(c *gin.Context) {
	g, err := h.svc.Get(c.Request.Context(), gameID(c))
	h.reply(c, "get game", g, err)
}

func (h *HttpHandler) Join(c *gin.Context) {
	var req handler.JoinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errx.ErrReqParamERR.WithData("field", "name"))
		return
	}
	res, err := h.svc.Join(c.Request.Context(), gameID(c), req.Name)
	if err != nil {
		h.error(c, "join game", err)
		return
	}
	h.ok(c, handler.JoinResp{Game: res.Game, Player: res.Player, Token: res.Token})
}

func (h *HttpHandler) Start(c *gin.Context) {
	g, err := h.svc.Start(c.Request.Context(), gameID(c), playerID(c))
	h.reply(c, "start game", g, err)
}

func (h *HttpHandler) Roll(c *gin.Context) {
	var req handler.RollReq
	if !h.bindOptional(c, &req) {
		return
	}
	roll, g, err := h.svc.Roll(c.Request.Context(), gameID(c), playerID(c), req.DiceCount, req.Dice)
	if err != nil {
		h.error(c, "roll dice", err)
		return
	}
	h.ok(c, handler.RollResp{Roll: roll, Game: g})
}

func (h *HttpHandler) Reroll(c *gin.Context) {
	var req handler.RerollReq
	if !h.bindOptional(c, &req) {
		return
	}
	roll, g, err := h.svc.Reroll(c.Request.Context(), gameID(c), playerID(c), req.Dice)
	if err != nil {
		h.error(c, "reroll dice", err)
		return
	}
	h.ok(c, handler.RollResp{Roll: roll, Game: g})
}

func (h *HttpHandler) KeepRoll(c *gin.Context) {
	g, err := h.svc.KeepRoll(c.Request.Context(), gameID(c), playerID(c))
	h.reply(c, "keep roll", g, err)
}

func (h *HttpHandler) BuyEstablishment(c *gin.Context) {
	g, err := h.svc.BuyEstablishment(c.Request.Context(), gameID(c), playerID(c), entity.EstablishmentID(c.Param("eid")))
	h.reply(c, "buy establishment", g, err)
}

func (h *HttpHandler) BuyLandmark(c *gin.Context) {
	g, err := h.svc.BuyLandmark(c.Request.Context(), gameID(c), playerID(c), entity.LandmarkID(c.Param("lid")))
	h.reply(c, "buy landmark", g, err)
}

func (h *HttpHandler) Trade(c *gin.Context) {
	var req handler.TradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errx.ErrReqParamERR.WithData("field", "give/target/take"))
		return
	}
	g, err := h.svc.Trade(c.Request.Context(), gameID(c), playerID(c),
		entity.EstablishmentID(req.Give), entity.PlayerID(req.Target), entity.EstablishmentID(req.Take))
	h.reply(c, "trade", g, err)
}

func (h *HttpHandler) EndTurn(c *gin.Context) {
	g, err := h.svc.EndTurn(c.Request.Context(), gameID(c), playerID(c))
	h.reply(c, "end turn", g, err)
}

// sameGame 令牌只对签发它的那一局有效。
func (h *HttpHandler) sameGame(c *gin.Context) {
	claims, ok := middleware.Seat(c)
	if !ok || claims.GameID != c.Param("id") {
		h.fail(c, errx.ErrUnauthorized.WithData("reason", "game_mismatch"))
		c.Abort()
		return
	}
	c.Next()
}

func (h *HttpHandler) bindOptional(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, errx.ErrReqParamERR.WithCause(err))
		return false
	}
	return true
}

func (h *HttpHandler) reply(c *gin.Context, action string, g *entity.Game, err error) {
	if err != nil {
		h.error(c, action, err)
		return
	}
	h.ok(c, g)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, transport.Success(data))
}

// fail 参数类错误，不打错误日志。
func (h *HttpHandler) fail(c *gin.Context, err *errx.Error) {
	code := handler.CodeFromError(err)
	transport.SetErrorReason(c.Request.Context(), err.CodeText())
	c.JSON(handler.HTTPStatus(code), transport.Failure(code, err))
}

func (h *HttpHandler) error(c *gin.Context, action string, err error) {
	code, resp := handler.HandleError(c.Request.Context(), h.log, "game "+action, err)
	c.JSON(handler.HTTPStatus(code), resp)
}

func gameID(c *gin.Context) entity.GameID {
	return entity.GameID(c.Param("id"))
}

func playerID(c *gin.Context) entity.PlayerID {
	claims, ok := middleware.Seat(c)
	if !ok {
		return ""
	}
	return entity.PlayerID(claims.PlayerID)
}
