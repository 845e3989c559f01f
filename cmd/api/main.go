package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/charmcut/charmcut-api/internal/config"
	dbpkg "github.com/charmcut/charmcut-api/internal/db"
	"github.com/charmcut/charmcut-api/internal/middleware"
	"github.com/charmcut/charmcut-api/internal/pwa"
	"github.com/charmcut/charmcut-api/internal/routes"
	"github.com/charmcut/charmcut-api/internal/storage"
)

// appShellManifest is the fixed set of resources one cache generation must
// hold to serve the app shell offline.
var appShellManifest = pwa.Manifest{
	"/",
	"/index.html",
	"/manifest.webmanifest",
	"/favicon.ico",
}

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	blobs := storage.NewS3Store(cfg)

	cache := pwa.NewCache(
		cfg.CacheVersion,
		appShellManifest,
		pwa.NewRedisStore(rdb),
		pwa.NewFSOrigin(os.DirFS(cfg.AssetsDir)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := cache.Activate(ctx); err != nil {
		// Previous generation (if any) stays authoritative; requests fall
		// back to live fetches until a later activation succeeds.
		log.Printf("cache activation failed: %v", err)
	}
	cancel()

	manager := pwa.NewManager()
	defer manager.CloseAll()

	seen := pwa.NewRedisSeenStore(rdb)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Blobs:      blobs,
		PWAManager: manager,
		SeenStore:  seen,
		Cache:      cache,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
