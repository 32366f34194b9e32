package actor

import (
	"context"
	"errors"
	"time"

	"MachiKoro/internal/game/actors"
	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/shared/actor/messages"
	"MachiKoro/internal/shared/security"
	"MachiKoro/modules/kit/errx"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

// JoinResult 入座结果，Token 绑定 (game_id, player_id)，后续变更请求需要携带。
type JoinResult struct {
	Game   *entity.Game
	Player *entity.Player
	Token  string
}

type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(repo port.GameRepository, opts actors.Options, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	// manager 只做路由与子 actor 生命周期，规则计算都在每局自己的 actor 里
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(repo, opts)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

// Shutdown Poison manager 等待所有会话刷盘退出，再关闭 actor system。
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil || r.system == nil {
		return nil
	}
	var err error
	if r.root != nil && r.manager != nil {
		done := make(chan error, 1)
		go func() { done <- r.root.PoisonFuture(r.manager).Wait() }()
		select {
		case err = <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	r.system.Shutdown()
	return err
}

func (r *Runtime) CreateGame(ctx context.Context, name string) (*entity.Game, error) {
	if name == "" {
		return nil, errx.ErrReqParamERR.WithData("field", "name")
	}
	rep, err := r.ask(ctx, &messages.CreateGame{Name: name})
	if err != nil {
		return nil, err
	}
	return rep.Game, nil
}

func (r *Runtime) Join(ctx context.Context, gameID entity.GameID, name string) (*JoinResult, error) {
	rep, err := r.ask(ctx, &messages.JoinGame{GameBaseMessage: base(gameID, ""), Name: name})
	if err != nil {
		return nil, err
	}
	token, err := security.Award(string(gameID), string(rep.Player.ID))
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	return &JoinResult{Game: rep.Game, Player: rep.Player, Token: token}, nil
}

func (r *Runtime) Start(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error) {
	return r.game(ctx, &messages.StartGame{GameBaseMessage: base(gameID, playerID)})
}

// Roll dice 非空时使用给定点数。
func (r *Runtime) Roll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, diceCount int, dice []int) (entity.Roll, *entity.Game, error) {
	return r.roll(ctx, &messages.RollDice{GameBaseMessage: base(gameID, playerID), DiceCount: diceCount, Dice: dice})
}

func (r *Runtime) Reroll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, dice []int) (entity.Roll, *entity.Game, error) {
	return r.roll(ctx, &messages.Reroll{GameBaseMessage: base(gameID, playerID), Dice: dice})
}

func (r *Runtime) KeepRoll(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error) {
	return r.game(ctx, &messages.KeepRoll{GameBaseMessage: base(gameID, playerID)})
}

func (r *Runtime) BuyEstablishment(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, estID entity.EstablishmentID) (*entity.Game, error) {
	return r.game(ctx, &messages.BuyEstablishment{GameBaseMessage: base(gameID, playerID), EstablishmentId: estID})
}

func (r *Runtime) BuyLandmark(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, landmarkID entity.LandmarkID) (*entity.Game, error) {
	return r.game(ctx, &messages.BuyLandmark{GameBaseMessage: base(gameID, playerID), LandmarkId: landmarkID})
}

func (r *Runtime) Trade(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, give entity.EstablishmentID, target entity.PlayerID, take entity.EstablishmentID) (*entity.Game, error) {
	return r.game(ctx, &messages.Trade{GameBaseMessage: base(gameID, playerID), Give: give, Target: target, Take: take})
}

func (r *Runtime) EndTurn(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID) (*entity.Game, error) {
	return r.game(ctx, &messages.EndTurn{GameBaseMessage: base(gameID, playerID)})
}

func (r *Runtime) Get(ctx context.Context, gameID entity.GameID) (*entity.Game, error) {
	return r.game(ctx, &messages.GetGame{GameBaseMessage: base(gameID, "")})
}

func (r *Runtime) game(ctx context.Context, msg messages.GameMessage) (*entity.Game, error) {
	rep, err := r.ask(ctx, msg)
	if err != nil {
		return nil, err
	}
	return rep.Game, nil
}

func (r *Runtime) roll(ctx context.Context, msg messages.GameMessage) (entity.Roll, *entity.Game, error) {
	rep, err := r.ask(ctx, msg)
	if err != nil {
		return entity.Roll{}, nil, err
	}
	var roll entity.Roll
	if rep.Roll != nil {
		roll = *rep.Roll
	}
	return roll, rep.Game, nil
}

func (r *Runtime) ask(ctx context.Context, msg messages.GameMessage) (*messages.GameReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, errx.ErrTimeout.WithCause(err)
	}
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return nil, err
	}
	rep, ok := res.(*messages.GameReply)
	if !ok || rep == nil {
		return nil, errx.ErrInternal.WithData("reply", "unexpected type")
	}
	if rep.Err != nil {
		return nil, rep.Err
	}
	return rep, nil
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, errx.ErrUnavailable.WithData("runtime", "not initialized")
	}
	if pid == nil {
		return nil, errx.ErrUnavailable.WithData("runtime", "nil pid")
	}

	// 阻塞等待直到对方 Respond 或超时
	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func base(gameID entity.GameID, playerID entity.PlayerID) messages.GameBaseMessage {
	return messages.GameBaseMessage{GameId: gameID, PlayerId: playerID}
}
