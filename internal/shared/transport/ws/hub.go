package ws

import (
	"sync"
)

// Hub 按主题（对局 id）维护订阅连接，广播不阻塞：写队列满的连接直接丢弃该帧。
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]WSConn // topic -> conn id -> conn
	joined map[string]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[string]WSConn),
		joined: make(map[string]map[string]struct{}),
	}
}

// Subscribe 订阅主题；连接关闭时自动退订。
func (h *Hub) Subscribe(topic string, conn WSConn) {
	if topic == "" || conn == nil {
		return
	}
	h.mu.Lock()
	subs := h.topics[topic]
	if subs == nil {
		subs = make(map[string]WSConn)
		h.topics[topic] = subs
	}
	subs[conn.ID()] = conn
	topics := h.joined[conn.ID()]
	first := topics == nil
	if first {
		topics = make(map[string]struct{})
		h.joined[conn.ID()] = topics
	}
	topics[topic] = struct{}{}
	h.mu.Unlock()

	if first {
		go func() {
			<-conn.Done()
			h.Remove(conn)
		}()
	}
}

func (h *Hub) Unsubscribe(topic string, conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(topic, conn.ID())
}

// Remove 退订连接的全部主题。
func (h *Hub) Remove(conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic := range h.joined[conn.ID()] {
		h.unsubscribeLocked(topic, conn.ID())
	}
	delete(h.joined, conn.ID())
}

func (h *Hub) unsubscribeLocked(topic, connID string) {
	if subs := h.topics[topic]; subs != nil {
		delete(subs, connID)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	if topics := h.joined[connID]; topics != nil {
		delete(topics, topic)
	}
}

// Broadcast 推送给主题下全部连接，返回推送数。
func (h *Hub) Broadcast(topic, name string, data any) int {
	h.mu.RLock()
	conns := make([]WSConn, 0, len(h.topics[topic]))
	for _, c := range h.topics[topic] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
	return len(conns)
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
