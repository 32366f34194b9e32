package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("BIZ_X", "x").WithData("k", "v").WithCause(errors.New("cause1"))
	e2 := NewBiz("BIZ_X", "x2").WithData("k2", "v2").WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true, e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("BIZ_Y", "x")) {
		t.Fatalf("期望不同 code 不相等")
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("not enough coins")
	err := NewBiz("INSUFFICIENT_FUNDS", "金币不足").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := NewSys("SYS_DB_UNAVAILABLE", "系统不可用").WithCause(errors.New("io timeout"))
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈，got=%v", got)
	}
	sys2 := NewSys("SYS_GATEWAY_ERROR", "网关异常").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望 cause 链里已有栈时不重复捕获，got=%v", got)
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("BIZ_X", "").WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data，got=%v", got)
	}

	base := NewBiz("BIZ_X", "")
	_ = base.WithData("k", "v")
	if base.Data() != nil {
		t.Fatalf("期望 WithData 不污染原对象, base=%v", base.Data())
	}
}

func TestCodeOf_穿透fmt包装(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewBiz("GAME_FULL", "房间已满"))
	if got := CodeOf(err); got != "GAME_FULL" {
		t.Fatalf("期望 code=GAME_FULL, got=%v", got)
	}
	if !IsBiz(err) {
		t.Fatalf("期望识别为业务错误")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("期望普通错误 code 为空")
	}
	if IsBiz(ErrInternal) {
		t.Fatalf("期望 ErrInternal 为系统错误")
	}
}

func TestError_Reason_读取data_reason(t *testing.T) {
	err := NewBiz("ESTABLISHMENT_UNAVAILABLE", "").WithReason(reasonStub("MAJOR_OWNED"))
	if got := err.Reason(); got != "MAJOR_OWNED" {
		t.Fatalf("期望 reason=MAJOR_OWNED, got=%q", got)
	}
	if got := err.Error(); got != "ESTABLISHMENT_UNAVAILABLE" {
		t.Fatalf("期望空 msg 时只输出 code, got=%q", got)
	}
}

type reasonStub string

func (r reasonStub) ReasonCode() string { return string(r) }
