package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"typejson_demo/internal/config"
	"typejson_demo/internal/controller"
	"typejson_demo/internal/model"
	"typejson_demo/internal/router"
	"typejson_demo/internal/service"
	"typejson_demo/pkg/logger"
	"typejson_demo/pkg/typejson"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 3. 初始化依赖
	gin.SetMode(cfg.Server.Mode)
	deps := initDependencies(cfg)

	zl.Info("deserializer ready",
		zap.Stringer("type_name_handling", deps.Decoder.Handling()),
		zap.Strings("types", deps.Registry.Names()),
	)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers, zl, cfg.Server)

	// 5. 启动服务
	startServer(r, cfg.Server, zl)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Registry    *typejson.Registry
	Decoder     *typejson.Decoder
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Page *service.PageService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config) *Dependencies {
	// -------- 反序列化 --------
	registry := typejson.NewRegistry()
	model.RegisterReachableTypes(registry)
	decoder := typejson.NewDecoder(registry, cfg.Deserializer.Handling())

	// -------- 业务服务 --------
	services := &Services{
		Page: service.NewPageService(decoder, cfg.Deserializer.InvokeTimeout),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Page: controller.NewPageController(services.Page),
	}

	return &Dependencies{
		Registry:    registry,
		Decoder:     decoder,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg config.ServerConfig, zl *zap.Logger) {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// 异步启动服务
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("server shutting down")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}

	zl.Info("server exited")
}
