package interfaces

import (
	"MachiKoro/internal/game/interfaces/handler"
	grpchandler "MachiKoro/internal/game/interfaces/handler/grpc"
	httphandler "MachiKoro/internal/game/interfaces/handler/http"
	wshandler "MachiKoro/internal/game/interfaces/handler/ws"
	transporthttp "MachiKoro/internal/shared/transport/http"
	"MachiKoro/internal/shared/transport/ws"
	"MachiKoro/modules/kit/logx"

	"github.com/gin-gonic/gin"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *httphandler.HttpHandler
	grpcHandler *grpchandler.GrpcHandler
}

func New(svc handler.GameService, hub *ws.Hub, log logx.Logger) *Module {
	return &Module{
		wsHandler:   wshandler.NewWsHandler(svc, hub, log),
		httpHandler: httphandler.NewHttpHandler(svc, log),
		grpcHandler: grpchandler.NewGrpcHandler(svc, log),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

func (m *Module) GrpcRegister(s *gogrpc.Server) *health.Server {
	return m.grpcHandler.RegisterServices(s)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
