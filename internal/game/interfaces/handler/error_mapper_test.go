package handler

import (
	"context"
	"errors"
	"testing"

	"MachiKoro/internal/game/errs"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/errx"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeFromError_领域错误分类(t *testing.T) {
	cases := []struct {
		err  error
		want transport.BizCode
	}{
		{nil, transport.OK},
		{errs.ErrGameNotFound.WithData("game_id", "g"), transport.NotFound},
		{errs.ErrPlayerNotInGame, transport.NotFound},
		{errs.ErrInvalidRoll.WithReason(errs.ReasonDieFace), transport.InvalidParam},
		{errs.ErrInsufficientFunds, transport.Rejected},
		{errs.ErrNotYourTurn, transport.Rejected},
		{errx.ErrReqParamERR, transport.InvalidParam},
		{errx.ErrUnauthorized, transport.Unauthorized},
		{errx.ErrTimeout, transport.Timeout},
		{errs.Wrap("op", errs.KindInfra, errors.New("db down"), nil), transport.Unavailable},
		{errors.New("plain"), transport.SystemError},
	}
	for _, c := range cases {
		if got := CodeFromError(c.err); got != c.want {
			t.Fatalf("期望 %v -> %d, got=%d", c.err, c.want, got)
		}
	}
}

func TestHandleError_系统错误不暴露细节(t *testing.T) {
	ctx := transport.NewContextWithParent(context.Background(), "test", "test")
	code, resp := HandleError(ctx, nil, "test", errs.Wrap("op", errs.KindInfra, errors.New("secret dsn"), nil))
	if code != transport.Unavailable || resp.Msg != "系统繁忙" {
		t.Fatalf("期望 503 + 通用提示, got=%d %q", code, resp.Msg)
	}

	code, resp = HandleError(ctx, nil, "test", errs.ErrInsufficientFunds)
	if code != transport.Rejected || resp.Reason != string(errs.CodeInsufficientFunds) {
		t.Fatalf("期望 409 INSUFFICIENT_FUNDS, got=%d %+v", code, resp)
	}
	if al := transport.FromContext(ctx); al.ErrorReason != string(errs.CodeInsufficientFunds) {
		t.Fatalf("期望写入 error_reason, got=%q", al.ErrorReason)
	}
}

func TestToRPCError_状态码(t *testing.T) {
	if status.Code(ToRPCError(errs.ErrGameNotFound)) != codes.NotFound {
		t.Fatalf("期望 NotFound")
	}
	if status.Code(ToRPCError(errs.ErrInvalidPhase)) != codes.FailedPrecondition {
		t.Fatalf("期望 FailedPrecondition")
	}
	if status.Code(ToRPCError(errors.New("x"))) != codes.Internal {
		t.Fatalf("期望 Internal")
	}
}
