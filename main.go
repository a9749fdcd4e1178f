package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ropesim/server"
)

// ropesim 入口：启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	var addr, cfgPath string
	flag.StringVar(&cfgPath, "config", "ropesim.yaml", "path to YAML config")
	flag.StringVar(&addr, "addr", "", "server listen address, overrides listen_addr, e.g. :8080")
	flag.Parse()

	cfg, err := server.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if err := server.InitLogger(cfg.Log); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	rm := server.GetRoomManager()
	rm.Configure(cfg)
	defer rm.Close()
	// 先预创建默认房间，便于快速试跑
	_ = rm.GetOrCreateRoom(cfg.DefaultRoom)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: rm.Routes()}

	go func() {
		server.Log.Infof("ropesim listening on %s (tick %d Hz)", cfg.ListenAddr, cfg.TickRateHz)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
}
