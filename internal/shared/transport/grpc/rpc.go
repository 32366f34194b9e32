package grpc

import (
	"fmt"

	"MachiKoro/modules/kit/logx"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewServer 带 trace 提取与访问日志的 grpc.Server。
func NewServer(log logx.Logger, opts ...gogrpc.ServerOption) *gogrpc.Server {
	base := []gogrpc.ServerOption{
		gogrpc.ChainUnaryInterceptor(UnaryServerTraceInterceptor(), UnaryServerAccessLogInterceptor(log)),
	}
	return gogrpc.NewServer(append(base, opts...)...)
}

// Dial 建立客户端连接，自动注入 trace/span。extra 可追加如 bufconn 的 ContextDialer。
func Dial(target string, extra ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	opts := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
	}
	conn, err := gogrpc.NewClient(target, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}
