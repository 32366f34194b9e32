package transport

import (
	"MachiKoro/modules/kit/errx"
)

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
// 取值沿用 HTTP 语义：0 成功，4xx 调用方问题，5xx 服务端问题。
type BizCode int

const (
	OK           = 0
	InvalidParam = 400
	Unauthorized = 401
	NotFound     = 404
	Rejected     = 409
	SystemError  = 500
	Unavailable  = 503
	Timeout      = 504
)

// Response HTTP 与 WS 共用的响应体。Reason 为 errx 错误码文本。
type Response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func Success(data any) Response {
	return Response{Code: OK, Msg: "ok", Data: data}
}

// Failure 用业务码与 errx 错误构造失败响应，系统错误不暴露内部细节。
func Failure(code BizCode, err error) Response {
	resp := Response{Code: int(code), Msg: "系统繁忙"}
	var e *errx.Error
	if asErrx(err, &e) {
		resp.Reason = e.CodeText()
		if e.IsBiz() {
			resp.Msg = e.Msg()
			resp.Data = e.Data()
		}
	}
	return resp
}
