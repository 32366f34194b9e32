package grpc

import (
	"context"
	"encoding/json"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/interfaces/handler"
	"MachiKoro/internal/shared/security"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/errx"
	"MachiKoro/modules/kit/logx"
	"MachiKoro/modules/kit/tracex"

	"github.com/go-viper/mapstructure/v2"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type command struct {
	Op              string `mapstructure:"op"`
	GameID          string `mapstructure:"game_id"`
	Token           string `mapstructure:"token"`
	Name            string `mapstructure:"name"`
	DiceCount       int    `mapstructure:"dice_count"`
	Dice            []int  `mapstructure:"dice"`
	EstablishmentID string `mapstructure:"establishment_id"`
	LandmarkID      string `mapstructure:"landmark_id"`
	Give            string `mapstructure:"give"`
	Target          string `mapstructure:"target"`
	Take            string `mapstructure:"take"`
}

type GrpcHandler struct {
	svc handler.GameService
	log logx.Logger
}

func NewGrpcHandler(svc handler.GameService, log logx.Logger) *GrpcHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &GrpcHandler{svc: svc, log: log}
}

// RegisterServices 注册命令服务与标准健康检查。
func (h *GrpcHandler) RegisterServices(s *gogrpc.Server) *health.Server {
	RegisterGameServiceServer(s, h)
	hs := health.NewServer()
	hs.SetServingStatus(GameServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return hs
}

func (h *GrpcHandler) Execute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ctx = tracex.WithSpanID(ctx, "game")

	var cmd command
	if err := decode(in, &cmd); err != nil {
		return nil, h.error(ctx, "decode", errx.ErrReqParamERR.WithCause(err))
	}
	transport.SetGameID(ctx, cmd.GameID)

	out, err := h.dispatch(ctx, cmd)
	if err != nil {
		return nil, h.error(ctx, cmd.Op, err)
	}
	res, err := toStruct(out)
	if err != nil {
		return nil, h.error(ctx, cmd.Op, errx.ErrInternal.WithCause(err))
	}
	transport.SetBizCode(ctx, transport.OK)
	return res, nil
}

func (h *GrpcHandler) dispatch(ctx context.Context, cmd command) (any, error) {
	gameID := entity.GameID(cmd.GameID)
	switch cmd.Op {
	case "create":
		return h.svc.CreateGame(ctx, cmd.Name)
	case "get":
		return h.svc.Get(ctx, gameID)
	case "join":
		res, err := h.svc.Join(ctx, gameID, cmd.Name)
		if err != nil {
			return nil, err
		}
		return handler.JoinResp{Game: res.Game, Player: res.Player, Token: res.Token}, nil
	}

	seat, err := seatOf(cmd)
	if err != nil {
		return nil, err
	}
	gameID, playerID := entity.GameID(seat.GameID), entity.PlayerID(seat.PlayerID)

	switch cmd.Op {
	case "start":
		return h.svc.Start(ctx, gameID, playerID)
	case "roll":
		roll, g, err := h.svc.Roll(ctx, gameID, playerID, cmd.DiceCount, cmd.Dice)
		return rollResp(roll, g, err)
	case "reroll":
		roll, g, err := h.svc.Reroll(ctx, gameID, playerID, cmd.Dice)
		return rollResp(roll, g, err)
	case "keep":
		return h.svc.KeepRoll(ctx, gameID, playerID)
	case "buyEstablishment":
		return h.svc.BuyEstablishment(ctx, gameID, playerID, entity.EstablishmentID(cmd.EstablishmentID))
	case "buyLandmark":
		return h.svc.BuyLandmark(ctx, gameID, playerID, entity.LandmarkID(cmd.LandmarkID))
	case "trade":
		return h.svc.Trade(ctx, gameID, playerID,
			entity.EstablishmentID(cmd.Give), entity.PlayerID(cmd.Target), entity.EstablishmentID(cmd.Take))
	case "endTurn":
		return h.svc.EndTurn(ctx, gameID, playerID)
	default:
		return nil, errx.ErrReqParamERR.WithData("op", cmd.Op)
	}
}

func (h *GrpcHandler) error(ctx context.Context, op string, err error) error {
	code, _ := handler.HandleError(ctx, h.log, "game grpc "+op, err)
	transport.SetBizCode(ctx, code)
	return handler.ToRPCError(err)
}

// seatOf 变更操作需要令牌，未传 game_id 时以令牌为准。
func seatOf(cmd command) (*security.Claims, error) {
	if cmd.Token == "" {
		return nil, errx.ErrUnauthorized.WithData("reason", "missing_token")
	}
	_, claims, err := security.ParseToken(cmd.Token)
	if err != nil {
		return nil, errx.ErrUnauthorized.WithData("reason", "invalid_token")
	}
	if cmd.GameID != "" && cmd.GameID != claims.GameID {
		return nil, errx.ErrUnauthorized.WithData("reason", "game_mismatch")
	}
	return claims, nil
}

func rollResp(roll entity.Roll, g *entity.Game, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return handler.RollResp{Roll: roll, Game: g}, nil
}

func decode(in *structpb.Struct, dst *command) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in.AsMap())
}

// toStruct 经 JSON 转成 Struct，字段名与 HTTP 响应一致。
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err = protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
