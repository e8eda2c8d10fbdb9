package router

import (
	"time"

	"storehub/internal/config"
	"storehub/internal/handler"
	"storehub/internal/infra"
	"storehub/internal/middleware"
	"storehub/internal/repository"
	"storehub/internal/service"
	"storehub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	memberRepo := repository.NewStoreMemberRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	storageRepo := repository.NewStorageRepository(db)
	productRepo := repository.NewProductRepository(db)
	lotRepo := repository.NewInventoryLotRepository(db)
	activeLotRepo := repository.NewStorageActiveLotRepository(db)
	balanceRepo := repository.NewInventoryBalanceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	storeSvc := service.NewStoreService(storeRepo, memberRepo, storageRepo, userRepo, cfg, dispatcher)
	categorySvc := service.NewCategoryService(categoryRepo)
	decommissionSvc := service.NewDecommissionService(db, activeLotRepo, lotRepo, balanceRepo)
	storageSvc := service.NewStorageService(storageRepo, decommissionSvc)
	inventorySvc := service.NewInventoryService(db, storageRepo, lotRepo, activeLotRepo, balanceRepo)
	productSvc := service.NewProductService(productRepo, rdb)
	reportSvc := service.NewReportService(storeRepo, storageRepo, balanceRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(db, rdb, smtpCB)
	authH := handler.NewAuthHandler(authSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	storagesH := handler.NewStoragesHandler(storageSvc, reportSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productsH := handler.NewProductsHandler(productSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/register", authH.Register)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Store provisioning is user-scoped, not tenant-scoped: at creation
		// time there is no membership row to resolve yet.
		v1.POST("/stores", storesH.Create)
		v1.GET("/stores/enrolled-count", storesH.EnrolledCount)

		// Everything below requires a resolved tenant.
		scoped := v1.Group("", middleware.TenantScope(memberRepo))
		{
			categories := scoped.Group("/categories")
			{
				categories.POST("", categoriesH.Create)
				categories.GET("", categoriesH.List)
				categories.GET("/:id", categoriesH.Get)
				categories.PUT("/:id", categoriesH.Update)
				categories.POST("/remove", categoriesH.Remove)
			}

			storages := scoped.Group("/storages")
			{
				storages.POST("", storagesH.Create)
				storages.GET("", storagesH.List)
				storages.GET("/:id", storagesH.Get)
				storages.DELETE("/:id", storagesH.Delete)
				storages.POST("/:id/decommission", storagesH.Decommission)
				storages.POST("/:id/promote-primary", storagesH.PromotePrimary)
				storages.GET("/:id/report.pdf", storagesH.StockReport)
				storages.GET("/:id/lots", inventoryH.Lots)
				storages.GET("/:id/balances", inventoryH.Balances)
			}

			scoped.POST("/inventory/receive", inventoryH.Receive)

			products := scoped.Group("/products")
			{
				products.POST("", productsH.Create)
				products.GET("", productsH.List)
				products.GET("/:id", productsH.Get)
				products.PUT("/:id", productsH.Update)
				products.DELETE("/:id", productsH.Deactivate)
				products.GET("/barcode/:code", productsH.LookupBarcode)
			}
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
