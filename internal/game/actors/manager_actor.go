package actors

import (
	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/engine"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/shared/actor/messages"
	"MachiKoro/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type GameID = entity.GameID

// passivate 子 actor 空闲或加载失败时请求下线，由 manager 摘除路由后 Poison。
type passivate struct {
	id  GameID
	pid *actor.PID
}

type ManagerActor struct {
	repo      port.GameRepository
	opts      Options
	gameActor map[GameID]*actor.PID // game id -> actor.pid
}

func NewManagerActor(repo port.GameRepository, opts Options) *ManagerActor {
	return &ManagerActor{
		repo:      repo,
		opts:      opts.withDefaults(),
		gameActor: make(map[GameID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *passivate:
		if pid, ok := m.gameActor[msg.id]; ok && pid.Equal(msg.pid) {
			delete(m.gameActor, msg.id)
			ctx.Poison(pid)
		}
	case *actor.Terminated:
		for id, pid := range m.gameActor {
			if pid.Equal(msg.Who) {
				delete(m.gameActor, id)
				break
			}
		}
	case *messages.CreateGame:
		g := engine.CreateGame(msg.Name)
		msg.GameId = g.ID
		ctx.Forward(m.spawn(ctx, g.ID, g))
	case messages.GameMessage:
		if msg.GameID() == "" {
			ctx.Respond(fail(errx.ErrReqParamERR.WithData("field", "game_id")))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, msg.GameID()))
	default:
		return
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, id GameID) *actor.PID {
	if pid, ok := m.gameActor[id]; ok && pid != nil {
		return pid
	}
	return m.spawn(ctx, id, nil)
}

// spawn initial 非空表示新建对局，否则从仓库加载。重启时 producer 再次调用，只从仓库加载。
func (m *ManagerActor) spawn(ctx actor.Context, id GameID, initial *entity.Game) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		a := NewGameActor(id, initial, m.repo, m.opts)
		initial = nil
		return a
	})
	pid := ctx.Spawn(props)
	m.gameActor[id] = pid
	return pid
}
