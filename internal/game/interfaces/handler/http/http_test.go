package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MachiKoro/internal/game/actor"
	"MachiKoro/internal/game/actors"
	"MachiKoro/internal/game/engine"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/infra/persistence/memory"
	"MachiKoro/internal/game/interfaces/handler"
	"MachiKoro/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

type apiResp struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "http-test")

	rt := actor.NewRuntime(memory.NewGameRepository(), actors.Options{
		StartingMoney:  3,
		AllowFixedDice: true,
		Roller:         engine.NewSeqRoller(6, 6, 1, 1),
	}, 2*time.Second)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = rt.Shutdown(ctx)
	})

	e := gin.New()
	NewHttpHandler(rt, nil).RegisterRoutes(e.Group(""))
	return &testAPI{t: t, engine: e}
}

func (a *testAPI) do(method, path, token string, body any) (int, apiResp) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp apiResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		a.t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return w.Code, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode err=%v raw=%s", err, raw)
	}
	return v
}

// seatedGame 建局并入座两人，返回局 id 与两人的令牌。
func (a *testAPI) seatedGame() (string, string, string) {
	a.t.Helper()
	code, resp := a.do(nethttp.MethodPost, "/games", "", handler.CreateGameReq{Name: "http"})
	if code != nethttp.StatusOK {
		a.t.Fatalf("期望建局成功, got=%d %+v", code, resp)
	}
	g := decode[entity.Game](a.t, resp.Data)

	var tokens []string
	for _, name := range []string{"alice", "bob"} {
		code, resp = a.do(nethttp.MethodPost, "/games/"+string(g.ID)+"/players", "", handler.JoinReq{Name: name})
		if code != nethttp.StatusOK {
			a.t.Fatalf("期望入座成功, got=%d %+v", code, resp)
		}
		tokens = append(tokens, decode[handler.JoinResp](a.t, resp.Data).Token)
	}
	return string(g.ID), tokens[0], tokens[1]
}

func TestHttp_完整回合流程(t *testing.T) {
	a := newTestAPI(t)
	id, alice, bob := a.seatedGame()

	code, resp := a.do(nethttp.MethodPost, "/games/"+id+"/start", alice, nil)
	if code != nethttp.StatusOK {
		t.Fatalf("期望开局成功, got=%d %+v", code, resp)
	}
	g := decode[entity.Game](t, resp.Data)
	if g.Turn.Phase != entity.PhaseAwaitingRoll || g.Turn.Active != 0 {
		t.Fatalf("期望 alice 先手等待掷骰, got=%+v", g.Turn)
	}

	code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/roll", bob, handler.RollReq{Dice: []int{1}})
	if code != nethttp.StatusConflict || resp.Reason != "NOT_YOUR_TURN" {
		t.Fatalf("期望 409 NOT_YOUR_TURN, got=%d %+v", code, resp)
	}

	code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/roll", alice, handler.RollReq{Dice: []int{1}})
	if code != nethttp.StatusOK {
		t.Fatalf("期望掷骰成功, got=%d %+v", code, resp)
	}
	rr := decode[handler.RollResp](t, resp.Data)
	if rr.Roll.Sum() != 1 || rr.Game.Players[0].Money != 4 || rr.Game.Players[1].Money != 4 {
		t.Fatalf("期望麦田各得 1 金币, got=%+v", rr.Game.Players)
	}

	var target entity.Establishment
	for _, e := range rr.Game.Market {
		if !e.IsMajor() && e.Cost <= 4 {
			target = e
			break
		}
	}
	code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/establishments/"+string(target.ID)+"/purchase", alice, nil)
	if code != nethttp.StatusOK {
		t.Fatalf("期望购买成功, got=%d %+v", code, resp)
	}
	g = decode[entity.Game](t, resp.Data)
	if g.Players[0].Money != 4-target.Cost || g.Players[0].EstablishmentIndex(target.ID) < 0 {
		t.Fatalf("期望扣款并获得建筑, got=%+v", g.Players[0])
	}

	code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/end-turn", alice, nil)
	if code != nethttp.StatusOK {
		t.Fatalf("期望结束回合成功, got=%d %+v", code, resp)
	}
	g = decode[entity.Game](t, resp.Data)
	if g.Turn.Active != 1 || g.Turn.Phase != entity.PhaseAwaitingRoll {
		t.Fatalf("期望轮到 bob, got=%+v", g.Turn)
	}

	code, resp = a.do(nethttp.MethodGet, "/games/"+id, "", nil)
	if code != nethttp.StatusOK || decode[entity.Game](t, resp.Data).Turn.Number != g.Turn.Number {
		t.Fatalf("期望查询到最新状态, got=%d %+v", code, resp)
	}
}

func TestHttp_令牌校验(t *testing.T) {
	a := newTestAPI(t)
	id, alice, _ := a.seatedGame()
	other, otherAlice, _ := a.seatedGame()
	_ = other

	if code, _ := a.do(nethttp.MethodPost, "/games/"+id+"/start", "", nil); code != nethttp.StatusUnauthorized {
		t.Fatalf("期望缺少令牌 401, got=%d", code)
	}
	if code, resp := a.do(nethttp.MethodPost, "/games/"+id+"/start", otherAlice, nil); code != nethttp.StatusUnauthorized {
		t.Fatalf("期望他局令牌 401, got=%d %+v", code, resp)
	}
	if code, _ := a.do(nethttp.MethodPost, "/games/"+id+"/start", alice, nil); code != nethttp.StatusOK {
		t.Fatalf("期望本局令牌通过, got=%d", code)
	}
}

func TestHttp_错误码映射(t *testing.T) {
	a := newTestAPI(t)

	code, resp := a.do(nethttp.MethodGet, "/games/missing", "", nil)
	if code != nethttp.StatusNotFound || resp.Code != transport.NotFound || resp.Reason != "GAME_NOT_FOUND" {
		t.Fatalf("期望 404 GAME_NOT_FOUND, got=%d %+v", code, resp)
	}

	if code, _ = a.do(nethttp.MethodPost, "/games", "", map[string]string{}); code != nethttp.StatusBadRequest {
		t.Fatalf("期望缺少名字 400, got=%d", code)
	}

	id, alice, _ := a.seatedGame()
	if code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/roll", alice, handler.RollReq{Dice: []int{1}}); code != nethttp.StatusConflict || resp.Reason != "INVALID_PHASE" {
		t.Fatalf("期望大厅阶段掷骰 409 INVALID_PHASE, got=%d %+v", code, resp)
	}

	a.do(nethttp.MethodPost, "/games/"+id+"/start", alice, nil)
	if code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/roll", alice, handler.RollReq{Dice: []int{7}}); code != nethttp.StatusBadRequest || resp.Reason != "INVALID_ROLL" {
		t.Fatalf("期望非法点数 400 INVALID_ROLL, got=%d %+v", code, resp)
	}

	if code, resp = a.do(nethttp.MethodPost, "/games/"+id+"/players", "", handler.JoinReq{Name: "late"}); code != nethttp.StatusConflict || resp.Reason != "GAME_STARTED" {
		t.Fatalf("期望开局后入座 409 GAME_STARTED, got=%d %+v", code, resp)
	}
}
