package ws

import (
	"context"
	"sync"
	"testing"

	"MachiKoro/internal/shared/transport"
)

type fakeConn struct {
	id    string
	mu    sync.Mutex
	props map[string]any
	out   []string
	done  chan struct{}
	once  sync.Once
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, props: map[string]any{}, done: make(chan struct{})}
}

func (c *fakeConn) ID() string { return c.id }
func (c *fakeConn) SetProperty(k string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[k] = v
}
func (c *fakeConn) GetProperty(k string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[k]
}
func (c *fakeConn) RemoveProperty(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.props, k)
}
func (c *fakeConn) Addr() string { return "fake" }
func (c *fakeConn) Push(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = append(c.out, name)
}
func (c *fakeConn) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) pushed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.out)
}

func TestHub_按主题广播(t *testing.T) {
	h := NewHub()
	a, b := newFakeConn("a"), newFakeConn("b")
	h.Subscribe("g1", a)
	h.Subscribe("g1", b)
	h.Subscribe("g2", b)

	if n := h.Broadcast("g1", "game.update", 1); n != 2 {
		t.Fatalf("期望推送 2 个连接, got=%d", n)
	}
	h.Unsubscribe("g1", a)
	h.Broadcast("g1", "game.update", 2)
	if a.pushed() != 1 || b.pushed() != 2 {
		t.Fatalf("期望退订后不再收到, a=%d b=%d", a.pushed(), b.pushed())
	}

	h.Remove(b)
	if h.Subscribers("g1") != 0 || h.Subscribers("g2") != 0 {
		t.Fatalf("期望移除连接后主题清空")
	}
}

func TestRouter_路由分发与错误码(t *testing.T) {
	r := NewRouter(nil)
	r.Group("game").Handle("state", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
		resp.Body.Msg = "ok"
	})

	resp := &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "game.state"}}, resp)
	if resp.Body.Code != transport.OK {
		t.Fatalf("期望成功, got=%d", resp.Body.Code)
	}

	for _, name := range []string{"game", "game.", "game.missing", "other.state", "a.b.c"} {
		resp := &WsMsgResp{Body: &RespBody{}}
		r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
		if resp.Body.Code != transport.InvalidParam {
			t.Fatalf("期望 %q 参数错误, got=%d", name, resp.Body.Code)
		}
	}
}

func TestBindJSON_按json标签解码(t *testing.T) {
	var dst struct {
		GameID    string `json:"game_id"`
		DiceCount int    `json:"dice_count"`
		Dice      []int  `json:"dice"`
	}
	req := &WsMsgReq{Body: &ReqBody{Msg: map[string]any{
		"game_id":    "g1",
		"dice_count": float64(2),
		"dice":       []any{float64(3), float64(4)},
	}}}
	if err := BindJSON(req, &dst); err != nil {
		t.Fatalf("err=%v", err)
	}
	if dst.GameID != "g1" || dst.DiceCount != 2 || len(dst.Dice) != 2 || dst.Dice[1] != 4 {
		t.Fatalf("期望正确解码, got=%+v", dst)
	}
}
