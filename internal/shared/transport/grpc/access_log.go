package grpc

import (
	"context"

	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/logx"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerAccessLogInterceptor 每个 unary 请求写一条访问日志。
// handler 可通过 transport.SetBizCode 写入业务码；未写入时按 grpc status 推断。
func UnaryServerAccessLogInterceptor(log logx.Logger) gogrpc.UnaryServerInterceptor {
	if log == nil {
		log = logx.Nop()
	}
	return func(
		ctx context.Context,
		req any,
		info *gogrpc.UnaryServerInfo,
		handler gogrpc.UnaryHandler,
	) (any, error) {
		ctx = transport.NewContextWithParent(ctx, "grpc", "GRPC "+info.FullMethod)
		resp, err := handler(ctx, req)

		if al := transport.FromContext(ctx); al != nil && al.BizCode == transport.BizCode(transport.SystemError) {
			transport.SetBizCode(ctx, bizCodeFromStatus(err))
		}
		transport.WriteAccessLog(ctx, log)
		return resp, err
	}
}

func bizCodeFromStatus(err error) transport.BizCode {
	switch status.Code(err) {
	case codes.OK:
		return transport.OK
	case codes.InvalidArgument:
		return transport.InvalidParam
	case codes.Unauthenticated:
		return transport.Unauthorized
	case codes.NotFound:
		return transport.NotFound
	case codes.FailedPrecondition, codes.AlreadyExists:
		return transport.Rejected
	case codes.Unavailable:
		return transport.Unavailable
	case codes.DeadlineExceeded:
		return transport.Timeout
	default:
		return transport.SystemError
	}
}
