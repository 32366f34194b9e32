package transport

import (
	"errors"

	"MachiKoro/modules/kit/errx"
)

// CodeFromError 通用映射：errx 系统码按语义归类，其余业务拒绝统一为 Rejected。
func CodeFromError(err error) BizCode {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, errx.ErrReqParamERR):
		return InvalidParam
	case errors.Is(err, errx.ErrUnauthorized):
		return Unauthorized
	case errors.Is(err, errx.ErrTimeout):
		return Timeout
	case errors.Is(err, errx.ErrUnavailable), errors.Is(err, errx.ErrRateLimited):
		return Unavailable
	case errx.IsBiz(err):
		return Rejected
	default:
		return SystemError
	}
}

func asErrx(err error, target **errx.Error) bool {
	return err != nil && errors.As(err, target)
}
