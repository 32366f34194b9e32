package grpc

import (
	"context"
	"errors"
	"testing"

	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/tracex"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestTraceInterceptor_服务端提取客户端注入的trace(t *testing.T) {
	out := tracex.WithSpanID(tracex.WithTraceID(context.Background(), "trace-1"), "span-1")
	out = outgoingTrace(out)
	md, _ := metadata.FromOutgoingContext(out)

	in := metadata.NewIncomingContext(context.Background(), md)
	var got context.Context
	_, _ = UnaryServerTraceInterceptor()(in, nil, &gogrpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		got = ctx
		return nil, nil
	})

	if id, ok := tracex.TraceIDFrom(got); !ok || id != "trace-1" {
		t.Fatalf("期望 trace_id=trace-1, got=%q", id)
	}
	if id, ok := tracex.SpanIDFrom(got); !ok || id != "span-1" {
		t.Fatalf("期望 span_id=span-1, got=%q", id)
	}
}

func TestTraceInterceptor_缺少trace时生成(t *testing.T) {
	var got context.Context
	_, _ = UnaryServerTraceInterceptor()(context.Background(), nil, &gogrpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		got = ctx
		return nil, nil
	})
	if id, ok := tracex.TraceIDFrom(got); !ok || id == "" {
		t.Fatalf("期望生成 trace_id, got=%q", id)
	}
}

func TestAccessLogInterceptor_按status推断业务码(t *testing.T) {
	var al *transport.AccessLog
	_, _ = UnaryServerAccessLogInterceptor(nil)(context.Background(), nil,
		&gogrpc.UnaryServerInfo{FullMethod: "/x.Y/Z"},
		func(ctx context.Context, req any) (any, error) {
			al = transport.FromContext(ctx)
			return nil, status.Error(codes.NotFound, "missing")
		})
	if al == nil || al.BizCode != transport.NotFound {
		t.Fatalf("期望 NotFound, got=%+v", al)
	}

	if c := bizCodeFromStatus(errors.New("plain")); c != transport.SystemError {
		t.Fatalf("期望非 status 错误归为系统错误, got=%d", c)
	}
}
