package series

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-series-engine/internal/audit"
	domain "github.com/BruksfildServices01/barber-series-engine/internal/domain/series"
	"github.com/BruksfildServices01/barber-series-engine/internal/logger"
	"github.com/BruksfildServices01/barber-series-engine/internal/models"
	"github.com/BruksfildServices01/barber-series-engine/internal/timezone"
)

// ======================================================
// ORQUESTRADOR DE EXTENSÃO
// ======================================================
//
// LOAD_ACTIVE_SERIES -> FOR_EACH(EXTEND_ONE) -> AGGREGATE -> REPORT.
//
// Uma série malformada ou com erro de storage nunca derruba as demais:
// o erro vira entrada no relatório e o laço continua. Só a falha da
// listagem inicial aborta a execução inteira.

type ExtendAllSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location

	// injetável nos testes
	today func(loc *time.Location) string
}

func NewExtendAllSeries(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	loc *time.Location,
) *ExtendAllSeries {
	return &ExtendAllSeries{
		repo:  repo,
		audit: auditDisp,
		loc:   loc,
		today: timezone.TodayLocal,
	}
}

func (uc *ExtendAllSeries) Execute(
	ctx context.Context,
	weeks int,
) (*ExtendReport, error) {

	today := uc.today(uc.loc)

	// --------------------------------------------------
	// 1. Séries ativas (fim aberto ou depois de hoje)
	// --------------------------------------------------
	active, err := uc.repo.ListActiveSeries(ctx, today)
	if err != nil {
		return nil, err
	}

	report := &ExtendReport{RunID: uuid.NewString()}
	materializer := NewMaterializeBatch(uc.repo)

	// --------------------------------------------------
	// 2. Extensão série a série, com isolamento de falha
	// --------------------------------------------------
	for i := range active {
		s := &active[i]
		report.SeriesProcessed++

		res, horizon, err := uc.extendOne(ctx, materializer, s, today, weeks)
		if err != nil {
			logger.Get().Warn("series extension failed",
				zap.Uint("series_id", s.ID),
				zap.Error(err))
			report.Errors = append(report.Errors, SeriesError{
				SeriesID: s.ID,
				Error:    err.Error(),
			})
			continue
		}

		report.add(res)
		logger.Get().Debug("series extended",
			zap.Uint("series_id", s.ID),
			zap.String("horizon", horizon),
			zap.Int("created", res.Created))
	}

	uc.dispatchRunAudit("series_extension_run", report)

	return report, nil
}

// extendOne avança o horizonte de uma série: gera as ocorrências de
// max(last_generated_date, hoje) até +weeks semanas, materializa e
// persiste o novo last_generated_date.
func (uc *ExtendAllSeries) extendOne(
	ctx context.Context,
	materializer *MaterializeBatch,
	s *models.Series,
	today string,
	weeks int,
) (MaterializeResult, string, error) {

	var res MaterializeResult

	// Datas ISO comparam lexicograficamente.
	from := today
	if s.LastGeneratedDate > from {
		from = s.LastGeneratedDate
	}

	dates, err := domain.Occurrences(s, from, weeks, uc.loc)
	if err != nil {
		return res, "", err
	}

	res, err = materializer.Execute(ctx, s, dates)
	if err != nil {
		return res, "", err
	}

	horizon, err := domain.HorizonEnd(from, weeks, uc.loc)
	if err != nil {
		return res, "", err
	}

	if err := uc.repo.UpdateLastGeneratedDate(ctx, s.ID, horizon); err != nil {
		return res, "", err
	}

	return res, horizon, nil
}

func (uc *ExtendAllSeries) dispatchRunAudit(action string, report *ExtendReport) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "series_run",
		Metadata: report,
	})
}
