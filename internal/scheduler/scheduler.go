package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-series-engine/internal/config"
	"github.com/BruksfildServices01/barber-series-engine/internal/logger"
	"github.com/BruksfildServices01/barber-series-engine/internal/reportcache"
	"github.com/BruksfildServices01/barber-series-engine/internal/timezone"
	ucSeries "github.com/BruksfildServices01/barber-series-engine/internal/usecase/series"
)

// Agendador interno opcional para deploys de máquina única, onde não há
// scheduler externo batendo no endpoint de cron. Invoca o mesmo
// orquestrador stateless; todo o estado de recorrência mora nas séries,
// nada em memória de processo. Rodar junto com o trigger HTTP é seguro
// porque a unicidade do banco absorve a sobreposição.

func Start(
	cfg *config.Config,
	extendUC *ucSeries.ExtendAllSeries,
	cache *reportcache.Cache,
) *cron.Cron {

	if cfg.CronSchedule == "" {
		return nil
	}

	c := cron.New(cron.WithLocation(timezone.Location(cfg.ShopTimezone)))

	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := extendUC.Execute(ctx, cfg.LookaheadWeeks)
		if err != nil {
			logger.Get().Error("scheduled series extension failed", zap.Error(err))
			return
		}

		cache.Store(ctx, "extend", report)
		logger.Get().Info("scheduled series extension finished",
			zap.String("run_id", report.RunID),
			zap.Int("series_processed", report.SeriesProcessed),
			zap.Int("created", report.TotalCreated),
			zap.Int("errors", len(report.Errors)))
	})
	if err != nil {
		logger.Get().Error("invalid CRON_SCHEDULE, internal scheduler disabled",
			zap.String("schedule", cfg.CronSchedule),
			zap.Error(err))
		return nil
	}

	c.Start()
	logger.Get().Info("internal scheduler started",
		zap.String("schedule", cfg.CronSchedule))
	return c
}
