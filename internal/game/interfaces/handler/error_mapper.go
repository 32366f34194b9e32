package handler

import (
	"context"
	"errors"
	nethttp "net/http"

	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/errx"
	"MachiKoro/modules/kit/logx"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CodeFromError 领域错误在通用映射之上细分：找不到归 404，参数类归 400，其余业务拒绝归 409。
func CodeFromError(err error) transport.BizCode {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, errs.ErrGameNotFound), errors.Is(err, errs.ErrPlayerNotInGame):
		return transport.NotFound
	case errors.Is(err, errs.ErrInvalidRoll), errors.Is(err, errs.ErrNegativeMoney):
		return transport.InvalidParam
	default:
		return transport.CodeFromError(err)
	}
}

func HTTPStatus(code transport.BizCode) int {
	switch code {
	case transport.OK:
		return nethttp.StatusOK
	case transport.InvalidParam, transport.Unauthorized, transport.NotFound, transport.Rejected,
		transport.Unavailable, transport.Timeout:
		return int(code)
	default:
		return nethttp.StatusInternalServerError
	}
}

// HandleError 接口层统一出口：写访问日志原因、打印一次错误日志、构造响应体。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (transport.BizCode, transport.Response) {
	code := CodeFromError(err)
	transport.SetErrorReason(ctx, reasonOf(err))
	logx.ReportError(ctx, log, action, err)
	return code, transport.Failure(code, err)
}

func ToRPCError(err error) error {
	if err == nil {
		return nil
	}
	msg := "系统繁忙"
	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		msg = e.CodeText() + ": " + e.Msg()
	}

	switch CodeFromError(err) {
	case transport.InvalidParam:
		return status.Error(codes.InvalidArgument, msg)
	case transport.Unauthorized:
		return status.Error(codes.Unauthenticated, msg)
	case transport.NotFound:
		return status.Error(codes.NotFound, msg)
	case transport.Rejected:
		return status.Error(codes.FailedPrecondition, msg)
	case transport.Timeout:
		return status.Error(codes.DeadlineExceeded, msg)
	case transport.Unavailable:
		return status.Error(codes.Unavailable, msg)
	default:
		return status.Error(codes.Internal, msg)
	}
}

func reasonOf(err error) string {
	var e *errx.Error
	if !errors.As(err, &e) {
		return ""
	}
	if r := e.Reason(); r != "" {
		return r
	}
	return e.CodeText()
}
