package errs

import (
	"fmt"

	"MachiKoro/modules/kit/errx"
)

type Code = errx.Code

// 领域错误码：全部是业务拒绝，失败时状态保持不变。
const (
	CodeGameFull                 Code = "GAME_FULL"
	CodeGameStarted              Code = "GAME_STARTED"
	CodeGameNotFound             Code = "GAME_NOT_FOUND"
	CodeGameFinished             Code = "GAME_FINISHED"
	CodePlayerNotInGame          Code = "PLAYER_NOT_IN_GAME"
	CodePlayerAlreadyInGame      Code = "PLAYER_ALREADY_IN_GAME"
	CodeEstablishmentUnavailable Code = "ESTABLISHMENT_UNAVAILABLE"
	CodeLandmarkUnavailable      Code = "LANDMARK_UNAVAILABLE"
	CodeInsufficientFunds        Code = "INSUFFICIENT_FUNDS"
	CodeInvalidRoll              Code = "INVALID_ROLL"
	CodeNegativeMoney            Code = "NEGATIVE_MONEY"
	CodeNotYourTurn              Code = "NOT_YOUR_TURN"
	CodeInvalidPhase             Code = "INVALID_PHASE"
	CodeAlreadyPurchased         Code = "ALREADY_PURCHASED"
	CodeTradeUnavailable         Code = "TRADE_UNAVAILABLE"
	CodeNotEnoughPlayers         Code = "NOT_ENOUGH_PLAYERS"
)

var (
	ErrGameFull                 = errx.NewBiz(CodeGameFull, "房间已满")
	ErrGameStarted              = errx.NewBiz(CodeGameStarted, "游戏已开始")
	ErrGameNotFound             = errx.NewBiz(CodeGameNotFound, "游戏不存在")
	ErrGameFinished             = errx.NewBiz(CodeGameFinished, "游戏已结束")
	ErrPlayerNotInGame          = errx.NewBiz(CodePlayerNotInGame, "玩家不在本局")
	ErrPlayerAlreadyInGame      = errx.NewBiz(CodePlayerAlreadyInGame, "玩家已在本局")
	ErrEstablishmentUnavailable = errx.NewBiz(CodeEstablishmentUnavailable, "建筑不可购买")
	ErrLandmarkUnavailable      = errx.NewBiz(CodeLandmarkUnavailable, "地标不可购买")
	ErrInsufficientFunds        = errx.NewBiz(CodeInsufficientFunds, "金币不足")
	ErrInvalidRoll              = errx.NewBiz(CodeInvalidRoll, "掷骰不合法")
	ErrNegativeMoney            = errx.NewBiz(CodeNegativeMoney, "金币不能为负")
	ErrNotYourTurn              = errx.NewBiz(CodeNotYourTurn, "不是你的回合")
	ErrInvalidPhase             = errx.NewBiz(CodeInvalidPhase, "当前阶段不允许该操作")
	ErrAlreadyPurchased         = errx.NewBiz(CodeAlreadyPurchased, "本回合已购买")
	ErrTradeUnavailable         = errx.NewBiz(CodeTradeUnavailable, "当前不可交易")
	ErrNotEnoughPlayers         = errx.NewBiz(CodeNotEnoughPlayers, "玩家人数不足")
)

// 细分原因，写入 data.reason。
type Reason string

func (r Reason) ReasonCode() string { return string(r) }

const (
	ReasonMajorOwned       Reason = "MAJOR_ALREADY_OWNED"
	ReasonNotInMarket      Reason = "NOT_IN_MARKET"
	ReasonLandmarkBuilt    Reason = "LANDMARK_ALREADY_BUILT"
	ReasonLandmarkNotOwned Reason = "LANDMARK_NOT_OWNED"
	ReasonDiceCount        Reason = "DICE_COUNT"
	ReasonDieFace          Reason = "DIE_FACE"
	ReasonNoReroll         Reason = "NO_REROLL_LEFT"
	ReasonTradeNotPending  Reason = "TRADE_NOT_PENDING"
	ReasonTradeMajor       Reason = "TRADE_MAJOR"
	ReasonTradeSelf        Reason = "TRADE_SELF"
	ReasonTradeNotOwned    Reason = "TRADE_NOT_OWNED"
)

type Kind string

const (
	KindInfra      Kind = "infra"
	KindDependency Kind = "dependency"
)

// OpError 基础设施错误包装：记录发生位置与关键参数，根因必须保留。
type OpError struct {
	Op    string
	Kind  Kind
	Meta  map[string]any
	Cause error
}

func (e *OpError) Error() string {
	if e.Cause == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *OpError) Unwrap() error { return e.Cause }

// Wrap 把基础设施错误归一成 SERVICE_UNAVAILABLE，cause 链里保留 OpError。
func Wrap(op string, kind Kind, cause error, meta map[string]any) error {
	if cause == nil {
		return nil
	}
	return errx.ErrUnavailable.WithDataMap(meta).WithCause(&OpError{Op: op, Kind: kind, Cause: cause, Meta: meta})
}
