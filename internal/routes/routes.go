package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-series-engine/internal/audit"
	"github.com/BruksfildServices01/barber-series-engine/internal/config"
	"github.com/BruksfildServices01/barber-series-engine/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-series-engine/internal/infra/repository"
	"github.com/BruksfildServices01/barber-series-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-series-engine/internal/reportcache"
	"github.com/BruksfildServices01/barber-series-engine/internal/timezone"
	ucSeries "github.com/BruksfildServices01/barber-series-engine/internal/usecase/series"
)

// Deps são as dependências montadas em RegisterRoutes que o main ainda
// precisa (agendador interno).
type Deps struct {
	ExtendUC *ucSeries.ExtendAllSeries
	Cache    *reportcache.Cache
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) *Deps {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.ShopTimezone)

	seriesRepo := infraRepo.NewSeriesGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	reportCache := reportcache.New(cfg)

	// ======================================================
	// USE CASES - MOTOR DE SÉRIES
	// ======================================================
	extendUC := ucSeries.NewExtendAllSeries(seriesRepo, auditDispatcher, loc)
	backfillUC := ucSeries.NewBackfillSeries(seriesRepo, auditDispatcher, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	seriesHandler := handlers.NewSeriesHandler(db, auditDispatcher, loc)
	cronHandler := handlers.NewCronHandler(cfg, extendUC, backfillUC, reportCache)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// TRIGGERS (segredo compartilhado)
		// ------------------------------
		cronAPI := api.Group("/cron")
		{
			cronAPI.POST("/extend-series",
				middleware.CronAuthMiddleware(cfg, false),
				cronHandler.ExtendSeries)

			// backfill aceita o segredo também em ?secret=
			cronAPI.POST("/backfill-series",
				middleware.CronAuthMiddleware(cfg, true),
				cronHandler.BackfillSeries)

			cronAPI.GET("/last-run",
				middleware.CronAuthMiddleware(cfg, false),
				cronHandler.LastRun)
		}

		// ------------------------------
		// API PRIVADA (JWT)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/series", seriesHandler.List)
			secured.POST("/series", seriesHandler.Create)
			secured.PATCH("/series/:id", seriesHandler.Update)
			secured.DELETE("/series/:id", seriesHandler.Delete)

			secured.POST("/series/:id/exceptions", seriesHandler.CreateException)
			secured.GET("/series/:id/appointments", seriesHandler.ListAppointments)
		}
	}

	return &Deps{
		ExtendUC: extendUC,
		Cache:    reportCache,
	}
}
