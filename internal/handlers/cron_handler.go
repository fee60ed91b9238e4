package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-series-engine/internal/config"
	"github.com/BruksfildServices01/barber-series-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-series-engine/internal/httpresp"
	"github.com/BruksfildServices01/barber-series-engine/internal/reportcache"
	ucSeries "github.com/BruksfildServices01/barber-series-engine/internal/usecase/series"
)

// ======================================================
// TRIGGERS DO MOTOR
// ======================================================
//
// Endpoints stateless invocados pelo scheduler externo (ou manualmente).
// Auth pelo segredo compartilhado acontece no middleware, antes de
// qualquer trabalho. A resposta é sempre o relatório agregado; falha da
// listagem inicial vira 500 com corpo de erro: "zero séries" e "falha
// de listagem" nunca se confundem.

type CronHandler struct {
	cfg        *config.Config
	extendUC   *ucSeries.ExtendAllSeries
	backfillUC *ucSeries.BackfillSeries
	cache      *reportcache.Cache
}

func NewCronHandler(
	cfg *config.Config,
	extendUC *ucSeries.ExtendAllSeries,
	backfillUC *ucSeries.BackfillSeries,
	cache *reportcache.Cache,
) *CronHandler {
	return &CronHandler{
		cfg:        cfg,
		extendUC:   extendUC,
		backfillUC: backfillUC,
		cache:      cache,
	}
}

// ExtendSeries é o trigger semanal: avança o horizonte de todas as séries
// ativas pela janela padrão. Seguro re-executar e rodar sobreposto.
func (h *CronHandler) ExtendSeries(c *gin.Context) {
	weeks := h.weeksParam(c)

	report, err := h.extendUC.Execute(c.Request.Context(), weeks)
	if err != nil {
		httperr.Internal(c, "series_listing_failed", err.Error())
		return
	}

	h.cache.Store(c.Request.Context(), "extend", report)
	httpresp.OK(c, report)
}

// BackfillSeries é o trigger administrativo único: materializa séries
// históricas e reclassifica pausas por rótulo.
func (h *CronHandler) BackfillSeries(c *gin.Context) {
	weeks := h.weeksParam(c)

	report, err := h.backfillUC.Execute(c.Request.Context(), weeks)
	if err != nil {
		httperr.Internal(c, "series_listing_failed", err.Error())
		return
	}

	h.cache.Store(c.Request.Context(), "backfill", report)
	httpresp.OK(c, report)
}

// LastRun devolve o último relatório cacheado ("extend" ou "backfill").
func (h *CronHandler) LastRun(c *gin.Context) {
	kind := c.DefaultQuery("kind", "extend")
	if kind != "extend" && kind != "backfill" {
		httperr.BadRequest(c, "invalid_kind", "kind deve ser extend ou backfill.")
		return
	}

	report, err := h.cache.Load(c.Request.Context(), kind)
	if err != nil {
		httperr.Internal(c, "report_cache_error", err.Error())
		return
	}
	if report == nil {
		httperr.NotFound(c, "no_run_recorded", "Nenhuma execução registrada.")
		return
	}

	httpresp.OK(c, report)
}

// weeksParam permite ?weeks= para testes manuais, limitado a 2 anos.
func (h *CronHandler) weeksParam(c *gin.Context) int {
	weeks := h.cfg.LookaheadWeeks

	if v := c.Query("weeks"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 104 {
			weeks = n
		}
	}
	return weeks
}
