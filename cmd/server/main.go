package main

import (
	"log"
	"net/http"

	_ "github.com/zWyrm/rewear-teamtan/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/zWyrm/rewear-teamtan/internal/auth"
	"github.com/zWyrm/rewear-teamtan/internal/cache"
	"github.com/zWyrm/rewear-teamtan/internal/config"
	"github.com/zWyrm/rewear-teamtan/internal/db"
	"github.com/zWyrm/rewear-teamtan/internal/handler"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/queue"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
	"github.com/zWyrm/rewear-teamtan/internal/router"
	"github.com/zWyrm/rewear-teamtan/internal/service"
)

// @title ReWear API
// @version 1.0
// @description Community clothing exchange with item-for-item and points-based swaps.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	var (
		userRepo repository.UserRepository
		itemRepo repository.ItemRepository
		swapRepo repository.SwapRepository
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Println("using in-memory storage")
		store := repository.NewMemoryStore()
		userRepo = store.Users()
		itemRepo = store.Items()
		swapRepo = store.Swaps()
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("database init: %v", err)
		}
		if err := gormDB.AutoMigrate(
			&model.User{},
			&model.Item{},
			&model.Swap{},
		); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
		userRepo = repository.NewUserRepository(gormDB)
		itemRepo = repository.NewItemRepository(gormDB)
		swapRepo = repository.NewSwapRepository(gormDB)
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	publisher := queue.NewPublisher(cfg.AMQPURL)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	revocation := auth.NewRevocationStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	itemService := service.NewItemService(itemRepo, cacheClient)
	swapService := service.NewSwapService(swapRepo, itemRepo, userRepo, publisher)
	moderationService := service.NewModerationService(itemRepo, userRepo, revocation, cacheClient, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	swapHandler := handler.NewSwapHandler(swapService)
	adminHandler := handler.NewAdminHandler(moderationService)

	// Register routes
	router.Register(
		e,
		cfg,
		revocation,
		authHandler,
		itemHandler,
		swapHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
