// Package router assembles the HTTP API: services, handlers, middleware and routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "ledger/internal/docs" // Import swagger docs
	"ledger/internal/handlers"
	"ledger/internal/middleware"
	"ledger/internal/services"
)

// Options carries the collaborators the router wires together.
type Options struct {
	DB    *gorm.DB
	Rates services.RateSource

	// AdminAPIKey enables DELETE /all when set.
	AdminAPIKey string
}

// New builds the Gin engine with every route registered.
func New(opts Options) *gin.Engine {
	db := opts.DB

	// Services
	clientService := services.NewClientService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	movementService := services.NewMovementService(db, accountService)
	associationService := services.NewAssociationService(db)
	valuationService := services.NewValuationService(db, opts.Rates)

	// Handlers
	clientHandler := handlers.NewClientHandler(clientService)
	accountHandler := handlers.NewAccountHandler(accountService, movementService, valuationService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	movementHandler := handlers.NewMovementHandler(movementService)
	associationHandler := handlers.NewAssociationHandler(associationService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", handlers.Health)

	clients := router.Group("/clients")
	clients.POST("", clientHandler.CreateClient)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)
	clients.POST("/:id/categories", associationHandler.AddCategoryToClient)
	clients.GET("/:id/categories", associationHandler.GetClientCategories)
	clients.DELETE("/:id/categories/:categoryId", associationHandler.RemoveCategoryFromClient)

	accounts := router.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/movements", accountHandler.GetAccountMovements)
	accounts.GET("/:id/balance/usd", accountHandler.GetBalanceUSD)

	movements := router.Group("/movements")
	movements.POST("", movementHandler.CreateMovement)
	movements.GET("/:id", movementHandler.GetMovement)
	movements.DELETE("/:id", movementHandler.DeleteMovement)

	categories := router.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.GET("/:id/clients", associationHandler.GetCategoryClients)

	// Maintenance routes only exist when an admin key is configured.
	if opts.AdminAPIKey != "" {
		maintenanceHandler := handlers.NewMaintenanceHandler(services.NewMaintenanceService(db))
		router.DELETE("/all", middleware.AdminKey(opts.AdminAPIKey), maintenanceHandler.ResetAll)
	}

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
