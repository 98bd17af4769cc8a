package main

import (
	"log"

	"go.uber.org/zap"

	"projectboard/internal/server/config"
	"projectboard/internal/server/handler"
	"projectboard/internal/server/httpserver"
	"projectboard/internal/server/repository"
	"projectboard/internal/server/service"
	"projectboard/pkg/db"
	"projectboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, logger)
	taskRepo := repository.NewTaskRepository(dbConn, logger)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(projectRepo, taskRepo, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	router := httpserver.NewRouter(
		authHandler,
		projectHandler,
		cfg.JWT.Secret,
		dbConn,
	)

	logger.Info("Starting project API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
