package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/auth"
	"github.com/mrlokans/madr/internal/database"
	"github.com/mrlokans/madr/internal/database/accounts"
	"github.com/mrlokans/madr/internal/database/books"
	"github.com/mrlokans/madr/internal/database/novelists"
)

// RouterConfig carries all dependencies the router needs, improving
// testability and reducing parameter count.
type RouterConfig struct {
	Database       *database.Database
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Accounts       *accounts.Repository
	Novelists      *novelists.Repository
	Books          *books.Repository
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Registration, account reads, login and the liveness probe are public;
// everything else sits behind the bearer-token middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	requireAuth := cfg.AuthMiddleware.Handler()

	health := NewHealthController(cfg.Database, cfg.Version)
	accountsController := NewAccountsController(cfg.Accounts, cfg.AuthService)
	authController := NewAuthController(cfg.AuthService)
	novelistsController := NewNovelistsController(cfg.Novelists)
	booksController := NewBooksController(cfg.Books)

	// Liveness and readiness
	router.GET("/", health.Root)
	router.GET("/health", health.Status)

	// Accounts: mutation is owner-only and therefore authenticated
	router.POST("/users", accountsController.Register)
	router.GET("/users", accountsController.List)
	router.GET("/users/:id", accountsController.Get)
	router.PUT("/users/:id", requireAuth, accountsController.Update)
	router.DELETE("/users/:id", requireAuth, accountsController.Delete)

	// Token issuance
	router.POST("/auth/token", authController.Token)
	router.POST("/auth/refresh_token", requireAuth, authController.Refresh)

	// Catalog: every route requires a bearer token
	novelist := router.Group("/novelist", requireAuth)
	novelist.POST("", novelistsController.Create)
	novelist.GET("", novelistsController.List)
	novelist.GET("/:id", novelistsController.Get)
	novelist.PATCH("/:id", novelistsController.Update)
	novelist.DELETE("/:id", novelistsController.Delete)

	booksGroup := router.Group("/books", requireAuth)
	booksGroup.POST("", booksController.Create)
	booksGroup.GET("", booksController.List)
	booksGroup.GET("/:id", booksController.Get)
	booksGroup.PATCH("/:id", booksController.Update)
	booksGroup.DELETE("/:id", booksController.Delete)

	return router
}
