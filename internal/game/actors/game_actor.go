package actors

import (
	"context"
	"time"

	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/dc"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/shared/actor/messages"
	"MachiKoro/modules/kit/errx"
	"MachiKoro/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

const (
	loadTimeout  = 3 * time.Second
	closeTimeout = 3 * time.Second
)

// GameActor 一局一个 actor，邮箱即单写队列：所有变更在这里串行执行。
type GameActor struct {
	state      State
	gameID     GameID
	initial    *entity.Game
	dc         *dc.GameDC
	opts       Options
	loadErr    error
	dispatcher *Dispatcher
	flushStop  chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewGameActor(gameID GameID, initial *entity.Game, repo port.GameRepository, opts Options) *GameActor {
	opts = opts.withDefaults()
	return &GameActor{
		state:      None,
		gameID:     gameID,
		initial:    initial,
		dc:         dc.NewGameDC(repo, opts.FlushEvery, opts.Logger),
		opts:       opts,
		dispatcher: NewDispatcher(),
	}
}

func (p *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			logx.ReportSysError(closeCtx, p.opts.Logger, logx.NewSysLog("game_dc_close", err), zap.String("game_id", string(p.gameID)))
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case *actor.ReceiveTimeout:
		p.passivate(ctx)
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.dc.Flush(context.TODO())
		return
	case messages.GameMessage:
		if p.state != Online {
			err := p.loadErr
			if err == nil {
				err = errx.ErrUnavailable.WithData("game_id", string(p.gameID))
			}
			ctx.Respond(fail(err))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *GameActor) init(ctx actor.Context) {
	loadCtx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	if p.initial != nil {
		p.dc.Set(p.initial)
		p.initial = nil
		if err := p.dc.FlushSync(loadCtx); err != nil {
			// 保持脏标记，由定时刷盘继续重试
			logx.ReportSysError(loadCtx, p.opts.Logger, logx.NewSysLog("game_create_snapshot", err), zap.String("game_id", string(p.gameID)))
		}
	} else if _, err := p.dc.Load(loadCtx, p.gameID); err != nil {
		p.loadErr = err
		p.state = Offline
		p.passivate(ctx)
		return
	}

	p.state = Online
	p.startFlushLoop(ctx)
	if p.opts.IdleTimeout > 0 {
		ctx.SetReceiveTimeout(p.opts.IdleTimeout)
	}
}

// passivate 请求 manager 摘除路由；已转发到邮箱的消息仍会被处理完。
func (p *GameActor) passivate(ctx actor.Context) {
	ctx.CancelReceiveTimeout()
	if parent := ctx.Parent(); parent != nil {
		ctx.Send(parent, &passivate{id: p.gameID, pid: ctx.Self()})
		return
	}
	ctx.Poison(ctx.Self())
}

func (p *GameActor) GameID() GameID {
	return p.gameID
}

func (p *GameActor) Entity() *entity.Game {
	return p.dc.Entity()
}

func (p *GameActor) DC() *dc.GameDC {
	return p.dc
}

// commit 替换当前状态并推送给订阅者。
func (p *GameActor) commit(next *entity.Game) {
	p.dc.Set(next)
	if p.opts.Publisher != nil {
		p.opts.Publisher.Publish(next)
	}
}

func (p *GameActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *GameActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
