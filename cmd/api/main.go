package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/slot-scheduler/internal/db"
	"github.com/BruksfildServices01/slot-scheduler/internal/logger"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := cache.NewClient(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
