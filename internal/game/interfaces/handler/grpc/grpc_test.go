package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"MachiKoro/internal/game/actor"
	"MachiKoro/internal/game/actors"
	"MachiKoro/internal/game/engine"
	"MachiKoro/internal/game/infra/persistence/memory"
	transportgrpc "MachiKoro/internal/shared/transport/grpc"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func newClient(t *testing.T) (GameServiceClient, healthpb.HealthClient) {
	t.Helper()
	t.Setenv("JWT_SECRET", "grpc-test")

	rt := actor.NewRuntime(memory.NewGameRepository(), actors.Options{
		StartingMoney:  3,
		AllowFixedDice: true,
		Roller:         engine.NewSeqRoller(6, 6, 1, 1),
	}, 2*time.Second)

	lis := bufconn.Listen(1 << 20)
	srv := transportgrpc.NewServer(nil)
	NewGrpcHandler(rt, nil).RegisterServices(srv)
	go func() { _ = srv.Serve(lis) }()

	conn, err := transportgrpc.Dial("passthrough:///bufnet",
		gogrpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		t.Fatalf("dial err=%v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = rt.Shutdown(ctx)
	})
	return NewGameServiceClient(conn), healthpb.NewHealthClient(conn)
}

func exec(t *testing.T, c GameServiceClient, in map[string]any) (*structpb.Struct, error) {
	t.Helper()
	req, err := structpb.NewStruct(in)
	if err != nil {
		t.Fatalf("build struct err=%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.Execute(ctx, req)
}

func TestGrpc_建局入座开局掷骰(t *testing.T) {
	c, _ := newClient(t)

	out, err := exec(t, c, map[string]any{"op": "create", "name": "grpc"})
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	gameID := out.GetFields()["id"].GetStringValue()
	if gameID == "" {
		t.Fatalf("期望返回 game id, got=%v", out)
	}

	var token string
	for _, name := range []string{"alice", "bob"} {
		out, err = exec(t, c, map[string]any{"op": "join", "game_id": gameID, "name": name})
		if err != nil {
			t.Fatalf("join err=%v", err)
		}
		if token == "" {
			token = out.GetFields()["token"].GetStringValue()
		}
	}

	if _, err = exec(t, c, map[string]any{"op": "start", "token": token}); err != nil {
		t.Fatalf("start err=%v", err)
	}
	out, err = exec(t, c, map[string]any{"op": "roll", "token": token, "dice": []any{3.0}})
	if err != nil {
		t.Fatalf("roll err=%v", err)
	}
	dice := out.GetFields()["roll"].GetStructValue().GetFields()["dice"].GetListValue().GetValues()
	if len(dice) != 1 || dice[0].GetNumberValue() != 3 {
		t.Fatalf("期望掷出 3, got=%v", dice)
	}
}

func TestGrpc_错误映射为状态码(t *testing.T) {
	c, _ := newClient(t)

	if _, err := exec(t, c, map[string]any{"op": "get", "game_id": "missing"}); status.Code(err) != codes.NotFound {
		t.Fatalf("期望 NotFound, got=%v", err)
	}
	if _, err := exec(t, c, map[string]any{"op": "endTurn"}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("期望 Unauthenticated, got=%v", err)
	}
	if _, err := exec(t, c, map[string]any{"op": "nope"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("期望 InvalidArgument, got=%v", err)
	}

	out, _ := exec(t, c, map[string]any{"op": "create", "name": "grpc"})
	gameID := out.GetFields()["id"].GetStringValue()
	out, _ = exec(t, c, map[string]any{"op": "join", "game_id": gameID, "name": "solo"})
	token := out.GetFields()["token"].GetStringValue()
	if _, err := exec(t, c, map[string]any{"op": "start", "token": token}); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("期望人数不足 FailedPrecondition, got=%v", err)
	}
}

func TestGrpc_健康检查(t *testing.T) {
	_, hc := newClient(t)
	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: GameServiceName})
	if err != nil {
		t.Fatalf("health err=%v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("期望 SERVING, got=%v", resp.GetStatus())
	}
}
