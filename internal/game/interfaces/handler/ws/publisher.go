package ws

import (
	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/shared/transport/ws"
)

// PushGameUpdate 每次状态变更推送给订阅该局的连接。
const PushGameUpdate = "game.update"

// HubPublisher 把会话 actor 的状态变更转成 ws 主题广播，topic 为 game id。
type HubPublisher struct {
	hub *ws.Hub
}

func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(g *entity.Game) {
	if p == nil || p.hub == nil || g == nil {
		return
	}
	p.hub.Broadcast(string(g.ID), PushGameUpdate, g)
}

var _ port.Publisher = (*HubPublisher)(nil)
