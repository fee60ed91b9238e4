package series

import (
	"context"

	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

type Repository interface {
	// -------- Series --------
	ListActiveSeries(
		ctx context.Context,
		today string,
	) ([]models.Series, error)

	GetSeriesByID(
		ctx context.Context,
		id uint,
	) (*models.Series, error)

	UpdateLastGeneratedDate(
		ctx context.Context,
		seriesID uint,
		date string,
	) error

	// -------- Appointments (lookup / insert) --------
	ListAppointmentDates(
		ctx context.Context,
		barberID uint,
		timeSlot string,
		dates []string,
	) (map[string]bool, error)

	// BulkInsertAppointments insere com tolerância a conflito por linha
	// (índice único barber/date/slot) e devolve quantas linhas realmente
	// entraram.
	BulkInsertAppointments(
		ctx context.Context,
		appointments []models.Appointment,
	) (int64, error)

	// -------- Exceptions --------
	ListExceptionDates(
		ctx context.Context,
		seriesID uint,
		dates []string,
	) (map[string]bool, error)

	CreateException(
		ctx context.Context,
		exc *models.SeriesException,
	) error

	// -------- Administrative --------
	ReclassifyPauseAppointments(
		ctx context.Context,
		labelPattern string,
	) (int64, error)
}
