package main

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/kamal845/task-management/internal/adapter/db"
	httpadapter "github.com/kamal845/task-management/internal/adapter/http"
	"github.com/kamal845/task-management/internal/adapter/http/handlers"
	httpmiddleware "github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/app/service"
	"github.com/kamal845/task-management/internal/config"
	"github.com/kamal845/task-management/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	taskRepository := dbadapter.NewTaskRepository(db)
	userRepository := dbadapter.NewUserRepository(db)

	taskService := service.NewTaskService(taskRepository)
	userService := service.NewUserService(userRepository, taskRepository)
	authService := service.NewAuthService(userRepository, []byte(cfg.JwtSecret), cfg.JwtTTL)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}
	if len(cfg.CorsOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CorsOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Accept-Language")
		r.Use(cors.New(corsConfig))
	}

	httpadapter.RegisterRoutes(
		r,
		authService,
		handlers.NewHealthHandler(db),
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewUserHandler(userService),
	)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
