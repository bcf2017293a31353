package main

import (
	"context"
	"time"

	_ "podboard/api/swagger" // swagger docs
	"podboard/internal/database"
	"podboard/internal/handler"
	"podboard/internal/middleware"
	"podboard/internal/repository"
	"podboard/internal/service"
	"podboard/internal/websocket"
	"podboard/pkg/config"
	"podboard/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           POD Order Economics API
// @version         1.0
// @description     Order sync, cost configuration, ad spend and P&L reporting for a print-on-demand store.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	db, err := database.NewConnection(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	// WebSocket hub pushes report-refresh events to dashboard clients.
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repository -> Service -> Handler
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	costFieldRepo := repository.NewCostFieldRepository(db)
	adSpendRepo := repository.NewAdSpendRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	tokenTTL := time.Duration(cfg.JWT.ExpirationHours) * time.Hour
	authService := service.NewAuthService(userRepo, middleware.GetJWTSecret(), tokenTTL)
	orderService := service.NewOrderService(orderRepo, overrideRepo, auditRepo, txManager, wsHub)
	overrideService := service.NewOverrideService(orderRepo, overrideRepo, auditRepo, txManager, wsHub)
	costFieldService := service.NewCostFieldService(costFieldRepo, auditRepo, wsHub)
	adSpendService := service.NewAdSpendService(adSpendRepo, auditRepo, wsHub)
	reportService := service.NewReportService(orderRepo, costFieldRepo, adSpendRepo, overrideRepo)
	auditService := service.NewAuditService(auditRepo)

	// First-run admin bootstrap.
	bootstrap := config.LoadBootstrap()
	if err := authService.EnsureAdmin(context.Background(), bootstrap.AdminUsername, bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, overrideService)
	costFieldHandler := handler.NewCostFieldHandler(costFieldService)
	adSpendHandler := handler.NewAdSpendHandler(adSpendService)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	authHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	costFieldHandler.RegisterRoutes(router.Group(""))
	adSpendHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
