package actors

import (
	"reflect"

	"MachiKoro/internal/shared/actor/messages"
	"MachiKoro/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleCreateGame)
	register(d, GH.HandleJoinGame)
	register(d, GH.HandleStartGame)
	register(d, GH.HandleRollDice)
	register(d, GH.HandleReroll)
	register(d, GH.HandleKeepRoll)
	register(d, GH.HandleBuyEstablishment)
	register(d, GH.HandleBuyLandmark)
	register(d, GH.HandleTrade)
	register(d, GH.HandleEndTurn)
	register(d, GH.HandleGetGame)
}

func register[Req messages.GameMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, p *GameActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}
	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *GameActor, req messages.GameMessage) {
	if req == nil {
		ctx.Respond(fail(errx.ErrReqParamERR))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(errx.ErrReqParamERR.WithData("message", bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
