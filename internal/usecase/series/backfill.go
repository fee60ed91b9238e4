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
// BACKFILL (trigger administrativo, uma vez)
// ======================================================
//
// Materializa séries históricas que nunca passaram pelo cron: parte de
// max(start_date, hoje), cobre a janela fixa e grava o horizonte
// explicitamente. De quebra reclassifica appointments antigos cujo rótulo
// segue a convenção de pausa ("pausa") para is_pause = true: passo único
// de migração, fora do fluxo semanal.

type BackfillSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location

	today func(loc *time.Location) string
}

func NewBackfillSeries(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	loc *time.Location,
) *BackfillSeries {
	return &BackfillSeries{
		repo:  repo,
		audit: auditDisp,
		loc:   loc,
		today: timezone.TodayLocal,
	}
}

func (uc *BackfillSeries) Execute(
	ctx context.Context,
	weeks int,
) (*ExtendReport, error) {

	today := uc.today(uc.loc)

	active, err := uc.repo.ListActiveSeries(ctx, today)
	if err != nil {
		return nil, err
	}

	report := &ExtendReport{RunID: uuid.NewString()}
	materializer := NewMaterializeBatch(uc.repo)

	for i := range active {
		s := &active[i]
		report.SeriesProcessed++

		// Início efetivo: nunca materializa o passado.
		from := today
		if s.StartDate > from {
			from = s.StartDate
		}

		detail, res, err := uc.backfillOne(ctx, materializer, s, from, weeks)
		if err != nil {
			logger.Get().Warn("series backfill failed",
				zap.Uint("series_id", s.ID),
				zap.Error(err))
			report.Errors = append(report.Errors, SeriesError{
				SeriesID: s.ID,
				Error:    err.Error(),
			})
			continue
		}

		report.add(res)
		report.Details = append(report.Details, detail)
	}

	_ = uc.reclassifyPauses(ctx, report) // falha já registrada no relatório

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Action:   "series_backfill_run",
			Entity:   "series_run",
			Metadata: report,
		})
	}

	return report, nil
}

func (uc *BackfillSeries) backfillOne(
	ctx context.Context,
	materializer *MaterializeBatch,
	s *models.Series,
	from string,
	weeks int,
) (SeriesDetail, MaterializeResult, error) {

	detail := SeriesDetail{SeriesID: s.ID, CustomerName: s.CustomerName}
	var res MaterializeResult

	dates, err := domain.Occurrences(s, from, weeks, uc.loc)
	if err != nil {
		return detail, res, err
	}

	res, err = materializer.Execute(ctx, s, dates)
	if err != nil {
		return detail, res, err
	}

	horizon, err := domain.HorizonEnd(from, weeks, uc.loc)
	if err != nil {
		return detail, res, err
	}

	if err := uc.repo.UpdateLastGeneratedDate(ctx, s.ID, horizon); err != nil {
		return detail, res, err
	}

	detail.Created = res.Created
	detail.Skipped = res.Skipped
	detail.ExceptionSkipped = res.ExceptionSkipped
	detail.NewHorizon = horizon

	return detail, res, nil
}

// reclassifyPauses marca como pausa os appointments antigos cujo rótulo
// de cliente segue a convenção de texto.
func (uc *BackfillSeries) reclassifyPauses(ctx context.Context, report *ExtendReport) error {
	reclassified, err := uc.repo.ReclassifyPauseAppointments(ctx, domain.DefaultPauseLabel)
	if err != nil {
		logger.Get().Warn("pause reclassification failed", zap.Error(err))
		report.Errors = append(report.Errors, SeriesError{Error: err.Error()})
		return err
	}

	report.PausesReclassified = reclassified
	return nil
}
