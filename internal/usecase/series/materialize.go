package series

import (
	"context"

	domain "github.com/BruksfildServices01/barber-series-engine/internal/domain/series"
	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

// ======================================================
// MATERIALIZER
// ======================================================

type MaterializeBatch struct {
	repo domain.Repository
}

func NewMaterializeBatch(repo domain.Repository) *MaterializeBatch {
	return &MaterializeBatch{repo: repo}
}

// Execute particiona as datas candidatas em "já existe" / "exceção" /
// "inserir", faz um único insert em lote tolerante a conflito por linha
// e devolve os contadores. Conflito de unicidade durante o insert
// (corrida com outra execução) vira "skipped", nunca erro.
func (uc *MaterializeBatch) Execute(
	ctx context.Context,
	s *models.Series,
	dates []string,
) (MaterializeResult, error) {

	var res MaterializeResult
	if len(dates) == 0 {
		return res, nil
	}

	// --------------------------------------------------
	// 1. Datas já materializadas para este barbeiro/horário
	// --------------------------------------------------
	existing, err := uc.repo.ListAppointmentDates(ctx, s.BarberID, s.TimeSlot, dates)
	if err != nil {
		return res, err
	}

	// --------------------------------------------------
	// 2. Datas com exceção registrada (nunca regenerar)
	// --------------------------------------------------
	excluded, err := uc.repo.ListExceptionDates(ctx, s.ID, dates)
	if err != nil {
		return res, err
	}

	// --------------------------------------------------
	// 3. Partição
	// --------------------------------------------------
	var toInsert []models.Appointment
	for _, date := range dates {
		switch {
		case excluded[date]:
			res.ExceptionSkipped++
		case existing[date]:
			res.Skipped++
		default:
			toInsert = append(toInsert, models.Appointment{
				BarberID:      s.BarberID,
				Date:          date,
				TimeSlot:      s.TimeSlot,
				CustomerName:  s.CustomerName,
				CustomerPhone: s.CustomerPhone,
				SeriesID:      &s.ID,
				IsPause:       s.IsPause || domain.IsPauseLabel(s.CustomerName),
				Status:        string(domain.StatusScheduled),
				Notes:         s.Notes,
			})
		}
	}

	// --------------------------------------------------
	// 4. Insert em lote (ON CONFLICT DO NOTHING)
	// --------------------------------------------------
	created, err := uc.repo.BulkInsertAppointments(ctx, toInsert)
	if err != nil {
		return res, err
	}

	res.Created = int(created)
	// Linhas rejeitadas pelo índice único: outra execução chegou antes.
	res.Skipped += len(toInsert) - int(created)

	return res, nil
}
