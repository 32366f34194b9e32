package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"MachiKoro/internal/game/actor"
	"MachiKoro/internal/game/actors"
	"MachiKoro/internal/game/interfaces"
	wshandler "MachiKoro/internal/game/interfaces/handler/ws"
	"MachiKoro/internal/shared/logs"
	"MachiKoro/internal/shared/serverconfig"
	transportgrpc "MachiKoro/internal/shared/transport/grpc"
	transporthttp "MachiKoro/internal/shared/transport/http"
	"MachiKoro/internal/shared/transport/ws"
	"MachiKoro/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := serverconfig.Load("")
	if err != nil {
		panic(err)
	}
	if err := logs.Init("game", cfg.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("persistence", cfg.Persistence), zap.Any("game", cfg.Game))

	baseLogger := logx.NewZapLogger(logs.Logger())

	repo, closeRepo, err := openRepository(context.Background(), cfg)
	if err != nil {
		logs.Fatal("open repository failed", zap.String("driver", cfg.Persistence.Driver), zap.Error(err))
	}

	hub := ws.NewHub()
	rt := actor.NewRuntime(repo, actors.Options{
		StartingMoney:  cfg.Game.Money(),
		AllowFixedDice: cfg.Game.AllowFixedDice,
		FlushEvery:     cfg.Persistence.FlushInterval(),
		IdleTimeout:    cfg.Persistence.IdleTimeout(),
		Publisher:      wshandler.NewHubPublisher(hub),
		Logger:         baseLogger,
	}, cfg.Persistence.AskTimeout())

	module := interfaces.New(rt, hub, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	for _, m := range []ws.Registrar{module} {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(hostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port), nil, baseLogger)
	for _, m := range []transporthttp.Registrar{module} {
		m.HttpRegister(httpServer.Group())
	}
	wsServer := ws.NewServer(wsRouter, cfg.HTTPServer.NeedSecret, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	grpcAddr := hostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port)
	grpcServer := transportgrpc.NewServer(baseLogger)
	health := module.GrpcRegister(grpcServer)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logs.Fatal("listen game grpc failed", zap.String("addr", grpcAddr), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs.Info("game http server started", zap.String("addr", hostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port)))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("game http serve failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logs.Info("game grpc server started", zap.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("game grpc serve failed: %w", err)
		}
		return nil
	})

	<-gctx.Done()
	if ctx.Err() != nil {
		logs.Info("收到退出信号，准备优雅退出")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	health.Shutdown()
	var shutdownErr error
	shutdownErr = multierr.Append(shutdownErr, httpServer.Shutdown(shutdownCtx))
	stopGRPC(shutdownCtx, grpcServer)
	// 先停入口再停 actor，保证最后一次刷盘后不再有写入
	shutdownErr = multierr.Append(shutdownErr, rt.Shutdown(shutdownCtx))
	shutdownErr = multierr.Append(shutdownErr, closeRepo(shutdownCtx))
	if err := g.Wait(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if shutdownErr != nil {
		logs.Error("服务退出异常", zap.Error(shutdownErr))
	}
	_ = logs.Sync()
}

func hostPort(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, port)
}

type gracefulStopper interface {
	GracefulStop()
	Stop()
}

func stopGRPC(ctx context.Context, s gracefulStopper) {
	stopCh := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopCh)
	}()
	select {
	case <-stopCh:
	case <-ctx.Done():
		s.Stop()
	}
}
