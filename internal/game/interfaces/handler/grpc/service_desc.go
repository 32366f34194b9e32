package grpc

import (
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	GameServiceName              = "machikoro.game.v1.GameService"
	GameServiceExecuteFullMethod = "/" + GameServiceName + "/Execute"
)

// GameServiceServer 单一命令入口：入参与出参都是 google.protobuf.Struct，
// 字段与 HTTP 接口的 JSON 一致，op 指定操作。
type GameServiceServer interface {
	Execute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func RegisterGameServiceServer(s gogrpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

func executeHandler(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GameServiceServer).Execute(ctx, in)
	}
	info := &gogrpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GameServiceExecuteFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GameServiceServer).Execute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var GameServiceDesc = gogrpc.ServiceDesc{
	ServiceName: GameServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{
			MethodName: "Execute",
			Handler:    executeHandler,
		},
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "machikoro/game/v1/game.proto",
}

type GameServiceClient interface {
	Execute(ctx context.Context, in *structpb.Struct, opts ...gogrpc.CallOption) (*structpb.Struct, error)
}

type gameServiceClient struct {
	cc gogrpc.ClientConnInterface
}

func NewGameServiceClient(cc gogrpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc: cc}
}

func (c *gameServiceClient) Execute(ctx context.Context, in *structpb.Struct, opts ...gogrpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GameServiceExecuteFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
