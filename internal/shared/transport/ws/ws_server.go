package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"MachiKoro/internal/shared/security"
	"MachiKoro/modules/kit/logx"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	outQueueSize = 256
	writeWait    = 5 * time.Second
)

// WsServer 单条连接：读协程解压解密后分发，写协程加密压缩后发送。
type WsServer struct {
	id       string
	conn     *websocket.Conn
	router   *Router
	outChan  chan *WsMsgResp
	property map[string]any
	sync.RWMutex
	writeMu   sync.Mutex // gorilla 连接只允许一个并发写者
	done      chan struct{}
	closeOnce sync.Once
	// needSecret 为 false 时只压缩不加密，也不握手
	needSecret bool
	log        logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	id := uuid.NewString()
	if l == nil {
		l = logx.Nop()
	}
	return &WsServer{
		id:         id,
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, outQueueSize),
		property:   make(map[string]any),
		done:       make(chan struct{}),
		needSecret: needSecret,
		log:        l.With(zap.String("conn_id", id)),
	}
}

func (s *WsServer) ID() string {
	return s.id
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 主动推送；连接已关闭或写队列满时丢弃，不阻塞调用方。
func (s *WsServer) Push(name string, data any) {
	s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(rsp *WsMsgResp) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.outChan <- rsp:
	case <-s.done:
	default:
		s.log.Warn("ws_server out queue full, drop", zap.String("name", rsp.Body.Name))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("ws_server read msg", zap.Error(err))
			}
			return
		}

		// 客户端发送的是压缩（可选加密）过的 json
		payload, err := security.UnZip(data)
		if err != nil {
			s.log.Warn("ws_server readMsgLoop unzip", zap.Error(err))
			continue
		}

		if s.needSecret {
			key, ok := s.GetProperty(SecretKey).(string)
			if !ok || key == "" {
				s.log.Warn("ws_server readMsgLoop secret key missing")
				s.handshake()
				continue
			}
			payload, err = security.AesCBCDecrypt(payload, []byte(key), []byte(key), openssl.ZEROS_PADDING)
			if err != nil {
				s.log.Warn("ws_server readMsgLoop decrypt", zap.Error(err))
				// 出错后重新握手
				s.handshake()
				continue
			}
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(payload, &reqBody); err != nil {
			s.log.Warn("ws_server readMsgLoop unmarshal json", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name, Msg: reqBody.Msg}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else if s.router != nil {
			s.router.Dispatch(&req, &resp)
		}
		s.enqueue(&resp)
	}
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json", zap.Error(err))
		return
	}

	if s.needSecret {
		key, ok := s.GetProperty(SecretKey).(string)
		if !ok || key == "" {
			s.log.Warn("ws_server write secret key missing", zap.String("name", msg.Body.Name))
			return
		}
		marshal, err = security.AesCBCEncrypt(marshal, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Error("ws_server write encrypt", zap.Error(err))
			return
		}
	}

	zipped, err := security.Zip(marshal)
	if err != nil {
		s.log.Error("ws_server write zip", zap.Error(err))
		return
	}

	// 压缩后的密文是二进制字节流，必须走 BinaryMessage
	if err := s.writeFrame(zipped); err != nil {
		s.log.Warn("ws_server write", zap.Error(err))
		s.Close()
	}
}

// handshake 下发会话密钥，明文压缩发送。
func (s *WsServer) handshake() {
	if !s.needSecret {
		return
	}
	key, _ := s.GetProperty(SecretKey).(string)
	if key == "" {
		var err error
		if key, err = security.NewSessionKey(); err != nil {
			s.log.Error("ws_server handshake key", zap.Error(err))
			s.Close()
			return
		}
		s.SetProperty(SecretKey, key)
	}

	data, err := json.Marshal(&RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: key}})
	if err != nil {
		s.log.Error("ws_server handshake marshal json", zap.Error(err))
		return
	}
	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip", zap.Error(err))
		return
	}

	if err := s.writeFrame(zipData); err != nil {
		s.log.Warn("ws_server handshake write", zap.Error(err))
	}
}

func (s *WsServer) writeFrame(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}
