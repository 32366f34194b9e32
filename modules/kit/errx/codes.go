package errx

// 跨服务统一的系统类错误码；业务域错误码由各域自行定义。
const (
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeTimeout       Code = "TIMEOUT"
	CodeRateLimited   Code = "RATE_LIMITED"
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
)

// 系统类哨兵错误，只能通过 With* 派生。
var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrRateLimited  = NewSys(CodeRateLimited, "请求过于频繁")
	ErrReqParamERR  = NewBiz(CodeReqParamError, "请求参数错误")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "座位令牌无效")
)
