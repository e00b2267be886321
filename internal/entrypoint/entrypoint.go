package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/auth"
	"github.com/mrlokans/madr/internal/config"
	"github.com/mrlokans/madr/internal/database"
	"github.com/mrlokans/madr/internal/database/accounts"
	"github.com/mrlokans/madr/internal/database/books"
	"github.com/mrlokans/madr/internal/database/novelists"
	http_controllers "github.com/mrlokans/madr/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting MADR v%s", version)

	secretKey := cfg.Auth.SecretKey
	if secretKey == "" {
		generated, err := auth.GenerateSecretKey()
		if err != nil {
			log.Fatalf("Failed to generate signing secret: %v", err)
		}
		secretKey = generated
		log.Printf("Generated signing secret (set AUTH_SECRET_KEY to keep tokens valid across restarts)")
	}

	issuer, err := auth.NewTokenIssuer(secretKey, cfg.Auth.Algorithm, cfg.Auth.TokenExpiry)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authService := auth.NewService(db.DB, issuer, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Accounts:       accounts.NewRepository(db.DB),
		Novelists:      novelists.NewRepository(db.DB),
		Books:          books.NewRepository(db.DB),
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
