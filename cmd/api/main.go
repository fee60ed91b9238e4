package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-series-engine/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-series-engine/internal/db"
	"github.com/BruksfildServices01/barber-series-engine/internal/logger"
	"github.com/BruksfildServices01/barber-series-engine/internal/routes"
	"github.com/BruksfildServices01/barber-series-engine/internal/scheduler"
)

func main() {

	cfg := config.Load()
	logger.Init()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	deps := routes.RegisterRoutes(r, db, cfg)

	// Agendador interno opcional (CRON_SCHEDULE); em produção o normal é
	// um scheduler externo batendo em /api/cron/extend-series.
	if sched := scheduler.Start(cfg, deps.ExtendUC, deps.Cache); sched != nil {
		defer sched.Stop()
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
