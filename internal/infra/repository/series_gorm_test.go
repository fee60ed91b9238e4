package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Series{},
		&models.Appointment{},
		&models.SeriesException{},
	))
	return db
}

func seedSeries(t *testing.T, db *gorm.DB, s *models.Series) {
	t.Helper()
	require.NoError(t, db.Create(s).Error)
}

func TestBulkInsert_ConflictTolerant(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	seriesID := uint(1)
	rows := []models.Appointment{
		{BarberID: 10, Date: "2024-01-01", TimeSlot: "10:00", CustomerName: "João", SeriesID: &seriesID, Status: "scheduled"},
		{BarberID: 10, Date: "2024-01-08", TimeSlot: "10:00", CustomerName: "João", SeriesID: &seriesID, Status: "scheduled"},
	}

	created, err := repo.BulkInsertAppointments(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), created)

	// re-inserir o mesmo lote: rejeição linha a linha, sem erro
	again := []models.Appointment{
		{BarberID: 10, Date: "2024-01-01", TimeSlot: "10:00", CustomerName: "João", SeriesID: &seriesID, Status: "scheduled"},
		{BarberID: 10, Date: "2024-01-08", TimeSlot: "10:00", CustomerName: "João", SeriesID: &seriesID, Status: "scheduled"},
		{BarberID: 10, Date: "2024-01-15", TimeSlot: "10:00", CustomerName: "João", SeriesID: &seriesID, Status: "scheduled"},
	}
	created, err = repo.BulkInsertAppointments(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created)

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestBulkInsert_Empty(t *testing.T) {
	repo := NewSeriesGormRepository(newTestDB(t))

	created, err := repo.BulkInsertAppointments(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestListActiveSeries_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	ended := "2023-12-31"
	endsToday := "2024-01-01"
	open := models.Series{BarberID: 1, CustomerName: "A", StartDate: "2024-01-01", TimeSlot: "10:00", Active: true}
	closed := models.Series{BarberID: 1, CustomerName: "B", StartDate: "2023-01-02", TimeSlot: "11:00", Active: true, EndDate: &ended}
	endingToday := models.Series{BarberID: 1, CustomerName: "C", StartDate: "2023-01-02", TimeSlot: "12:00", Active: true, EndDate: &endsToday}
	inactive := models.Series{BarberID: 1, CustomerName: "D", StartDate: "2024-01-01", TimeSlot: "13:00", Active: false}

	for _, s := range []*models.Series{&open, &closed, &endingToday, &inactive} {
		seedSeries(t, db, s)
	}

	active, err := repo.ListActiveSeries(ctx, "2024-01-01")
	require.NoError(t, err)

	require.Len(t, active, 1)
	assert.Equal(t, "A", active[0].CustomerName)
}

func TestUpdateLastGeneratedDate_Monotonic(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	s := models.Series{BarberID: 1, CustomerName: "A", StartDate: "2024-01-01", TimeSlot: "10:00", Active: true}
	seedSeries(t, db, &s)

	require.NoError(t, repo.UpdateLastGeneratedDate(ctx, s.ID, "2024-06-01"))

	// tentativa de recuo (execução atrasada chegando fora de ordem) é ignorada
	require.NoError(t, repo.UpdateLastGeneratedDate(ctx, s.ID, "2024-03-01"))

	got, err := repo.GetSeriesByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.LastGeneratedDate)
}

func TestListAppointmentDates(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	seriesID := uint(1)
	_, err := repo.BulkInsertAppointments(ctx, []models.Appointment{
		{BarberID: 10, Date: "2024-01-01", TimeSlot: "10:00", CustomerName: "J", SeriesID: &seriesID, Status: "scheduled"},
		{BarberID: 10, Date: "2024-01-08", TimeSlot: "09:00", CustomerName: "J", SeriesID: &seriesID, Status: "scheduled"},
	})
	require.NoError(t, err)

	existing, err := repo.ListAppointmentDates(ctx, 10, "10:00", []string{"2024-01-01", "2024-01-08", "2024-01-15"})
	require.NoError(t, err)

	assert.True(t, existing["2024-01-01"])
	assert.False(t, existing["2024-01-08"]) // horário diferente
	assert.False(t, existing["2024-01-15"])
}

func TestExceptions(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	s := models.Series{BarberID: 1, CustomerName: "A", StartDate: "2024-01-01", TimeSlot: "10:00", Active: true}
	seedSeries(t, db, &s)

	exc := models.SeriesException{SeriesID: s.ID, Date: "2024-01-08", Reason: "cancelled"}
	require.NoError(t, repo.CreateException(ctx, &exc))

	// idempotente
	dup := models.SeriesException{SeriesID: s.ID, Date: "2024-01-08", Reason: "cancelled"}
	require.NoError(t, repo.CreateException(ctx, &dup))

	excluded, err := repo.ListExceptionDates(ctx, s.ID, []string{"2024-01-01", "2024-01-08"})
	require.NoError(t, err)

	assert.False(t, excluded["2024-01-01"])
	assert.True(t, excluded["2024-01-08"])

	var count int64
	db.Model(&models.SeriesException{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReclassifyPauseAppointments(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeriesGormRepository(db)
	ctx := context.Background()

	_, err := repo.BulkInsertAppointments(ctx, []models.Appointment{
		{BarberID: 1, Date: "2024-01-01", TimeSlot: "12:00", CustomerName: "Pausa almoço", Status: "scheduled"},
		{BarberID: 1, Date: "2024-01-01", TimeSlot: "10:00", CustomerName: "João", Status: "scheduled"},
		{BarberID: 1, Date: "2024-01-02", TimeSlot: "12:00", CustomerName: "PAUSA", Status: "scheduled"},
	})
	require.NoError(t, err)

	n, err := repo.ReclassifyPauseAppointments(ctx, "pausa")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// segunda passada não reclassifica de novo
	n, err = repo.ReclassifyPauseAppointments(ctx, "pausa")
	require.NoError(t, err)
	assert.Zero(t, n)

	var joao models.Appointment
	require.NoError(t, db.Where("customer_name = ?", "João").First(&joao).Error)
	assert.False(t, joao.IsPause)
}
