package reportcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-series-engine/internal/config"
	"github.com/BruksfildServices01/barber-series-engine/internal/logger"
	ucSeries "github.com/BruksfildServices01/barber-series-engine/internal/usecase/series"
)

// Guarda o último relatório de cada tipo de execução em redis para o
// endpoint de status. Best effort: falha de cache nunca afeta a execução.

const keyPrefix = "series:last_run:"

type Cache struct {
	client *redis.Client
}

func New(cfg *config.Config) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

// Store grava o relatório sob a chave do tipo de execução ("extend" /
// "backfill"). Erros são logados e engolidos.
func (c *Cache) Store(ctx context.Context, kind string, report *ucSeries.ExtendReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		logger.Get().Warn("report cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, keyPrefix+kind, payload, 90*24*time.Hour).Err(); err != nil {
		logger.Get().Warn("report cache store failed",
			zap.String("kind", kind),
			zap.Error(err))
	}
}

func (c *Cache) Load(ctx context.Context, kind string) (*ucSeries.ExtendReport, error) {
	payload, err := c.client.Get(ctx, keyPrefix+kind).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("report cache load: %w", err)
	}

	var report ucSeries.ExtendReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("report cache decode: %w", err)
	}
	return &report, nil
}
