package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/config"
	"github.com/craftsync/task-activity-api/internal/database"
	"github.com/craftsync/task-activity-api/internal/handlers"
	"github.com/craftsync/task-activity-api/internal/middleware"
	"github.com/craftsync/task-activity-api/internal/repository"
	"github.com/craftsync/task-activity-api/internal/services"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	refRepo := repository.NewReferenceRepository(db)

	notifier := services.NewWebhookNotifier(cfg.WebhookURL)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenLifetimeMins)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, historyRepo, userRepo, refRepo, notifier)
	historyService := services.NewHistoryService(historyRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Activity API is running",
		})
	})

	r.POST("/token", authHandler.Token)

	r.POST("/users", userHandler.CreateUser)
	r.GET("/users", userHandler.ListUsers)
	r.GET("/users/:id", userHandler.GetUser)

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(authService))
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/history", historyHandler.ListAll)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.GET("/:id/history_details", historyHandler.GetDetails)
		tasks.GET("/:id/history", historyHandler.ListForTask)
		tasks.GET("/:id/history/latest", historyHandler.LatestForTask)
	}

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == gin.ReleaseMode {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
