package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api"
	"github.com/leon37/EduConsult/internal/api/controller"
	"github.com/leon37/EduConsult/internal/config"
	"github.com/leon37/EduConsult/internal/infrastructure/database"
	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/repository"
	"github.com/leon37/EduConsult/internal/service"
)

func main() {
	// 1. 初始化 Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))
	slog.SetDefault(logger)

	slog.Info("EduConsult 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	db := database.NewSQLiteConnection(conf.Storage.Path) // 这里会自动建表
	provider := llm.NewGeminiClient(llm.Config{
		APIKey:  conf.Gemini.APIKey,
		BaseURL: conf.Gemini.BaseURL,
		Model:   conf.Gemini.Model,
		Timeout: 120 * time.Second,
	})

	if conf.Server.Port != ":8080" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	kvRepo := repository.NewKVRepo(db)
	store := service.NewProfileStore(kvRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store.Load(ctx)
	cancel()

	orchestrator := service.NewOrchestrator(store, provider)

	// 4. Server Start
	r := gin.Default()
	profileCtrl := controller.NewProfileController(store)
	analysisCtrl := controller.NewAnalysisController(orchestrator)
	uploadCtrl := controller.NewUploadController()
	gatewayCtrl := controller.NewGatewayController(conf.Gemini.UpstreamURL, conf.Gemini.APIKey)
	api.RegisterRoutes(r, profileCtrl, analysisCtrl, uploadCtrl, gatewayCtrl)

	slog.Info("EduConsult Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}
