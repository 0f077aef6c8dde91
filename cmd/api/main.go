package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/business-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/business-manager/internal/db"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/monitoring"
	"github.com/BruksfildServices01/business-manager/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	monitoring.Init()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.PrometheusMetrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
