package actors

import (
	"time"

	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/engine"
	"MachiKoro/modules/kit/logx"
)

// Options 会话 actor 的运行参数，零值字段使用默认值。
type Options struct {
	// StartingMoney 入座时由银行支付的初始资金，默认 0
	StartingMoney int
	// AllowFixedDice 允许客户端指定点数（调试与回放），默认关闭
	AllowFixedDice bool
	FlushEvery    time.Duration
	IdleTimeout   time.Duration
	Roller        engine.Roller
	Publisher     port.Publisher
	Logger        logx.Logger
}

const defaultIdleTimeout = 10 * time.Minute

func (o Options) withDefaults() Options {
	if o.Roller == nil {
		o.Roller = engine.RandomRoller{}
	}
	if o.Logger == nil {
		o.Logger = logx.Nop()
	}
	if o.IdleTimeout == 0 {
		o.IdleTimeout = defaultIdleTimeout
	}
	if o.StartingMoney < 0 {
		o.StartingMoney = 0
	}
	return o
}
