package ws

import (
	"net/http"

	"MachiKoro/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Server struct {
	router     *Router
	upgrader   websocket.Upgrader
	needSecret bool
	log        logx.Logger
}

func NewServer(r *Router, needSecret bool, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		upgrader: websocket.Upgrader{
			// 允许所有 CORS 跨域请求
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		needSecret: needSecret,
		log:        l,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	wsServer.Router(s.router)
	s.log.Info("websocket connected", zap.String("conn_id", wsServer.ID()), zap.String("addr", wsServer.Addr()))
	wsServer.Run()
	wsServer.handshake()
}
