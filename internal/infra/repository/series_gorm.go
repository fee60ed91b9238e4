package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-series-engine/internal/domain/series"
	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

type SeriesGormRepository struct {
	db *gorm.DB
}

func NewSeriesGormRepository(db *gorm.DB) *SeriesGormRepository {
	return &SeriesGormRepository{db: db}
}

// --------------------------------------------------
// Series
// --------------------------------------------------

func (r *SeriesGormRepository) ListActiveSeries(
	ctx context.Context,
	today string,
) ([]models.Series, error) {

	var list []models.Series
	if err := r.db.WithContext(ctx).
		Where("active = ? AND (end_date IS NULL OR end_date = '' OR end_date > ?)", true, today).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SeriesGormRepository) GetSeriesByID(
	ctx context.Context,
	id uint,
) (*models.Series, error) {

	var s models.Series
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeriesGormRepository) UpdateLastGeneratedDate(
	ctx context.Context,
	seriesID uint,
	date string,
) error {

	// Monotônico: nunca recua o horizonte (corridas entre cron e trigger
	// manual podem chegar fora de ordem).
	return r.db.WithContext(ctx).
		Model(&models.Series{}).
		Where("id = ? AND (last_generated_date = '' OR last_generated_date < ?)", seriesID, date).
		Update("last_generated_date", date).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SeriesGormRepository) ListAppointmentDates(
	ctx context.Context,
	barberID uint,
	timeSlot string,
	dates []string,
) (map[string]bool, error) {

	existing := make(map[string]bool, len(dates))
	if len(dates) == 0 {
		return existing, nil
	}

	var rows []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND time_slot = ? AND date IN ?", barberID, timeSlot, dates).
		Pluck("date", &rows).Error; err != nil {
		return nil, err
	}

	for _, d := range rows {
		existing[d] = true
	}
	return existing, nil
}

func (r *SeriesGormRepository) BulkInsertAppointments(
	ctx context.Context,
	appointments []models.Appointment,
) (int64, error) {

	if len(appointments) == 0 {
		return 0, nil
	}

	// Conflito no índice único barber/date/slot é rejeitado linha a linha,
	// nunca aborta o lote: é o estado normal de uma re-execução.
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(appointments, 100)

	if tx.Error != nil {
		return 0, fmt.Errorf("bulk insert appointments: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

func (r *SeriesGormRepository) ListExceptionDates(
	ctx context.Context,
	seriesID uint,
	dates []string,
) (map[string]bool, error) {

	excluded := make(map[string]bool, len(dates))
	if len(dates) == 0 {
		return excluded, nil
	}

	var rows []string
	if err := r.db.WithContext(ctx).
		Model(&models.SeriesException{}).
		Where("series_id = ? AND date IN ?", seriesID, dates).
		Pluck("date", &rows).Error; err != nil {
		return nil, err
	}

	for _, d := range rows {
		excluded[d] = true
	}
	return excluded, nil
}

func (r *SeriesGormRepository) CreateException(
	ctx context.Context,
	exc *models.SeriesException,
) error {

	// Idempotente: registrar duas vezes a mesma exceção não é erro.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(exc).Error
}

// --------------------------------------------------
// Administrative
// --------------------------------------------------

func (r *SeriesGormRepository) ReclassifyPauseAppointments(
	ctx context.Context,
	labelPattern string,
) (int64, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("is_pause = ? AND LOWER(customer_name) LIKE ?", false, "%"+labelPattern+"%").
		Update("is_pause", true)

	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// Compile-time check
var _ domain.Repository = (*SeriesGormRepository)(nil)
