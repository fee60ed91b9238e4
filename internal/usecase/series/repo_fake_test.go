package series

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/barber-series-engine/internal/domain/series"
	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

// fakeRepo simula o comportamento do storage real: índice único por
// barbeiro/data/horário e exceções por (série, data).
type fakeRepo struct {
	series       []models.Series
	appointments map[string]models.Appointment // chave barber|date|slot
	exceptions   map[string]bool               // chave seriesID|date

	lastGenerated map[uint]string
	pauseMatches  int64

	failList            bool
	failInsertForSeries uint
}

func newFakeRepo(series ...models.Series) *fakeRepo {
	return &fakeRepo{
		series:        series,
		appointments:  make(map[string]models.Appointment),
		exceptions:    make(map[string]bool),
		lastGenerated: make(map[uint]string),
	}
}

func slotKey(barberID uint, date, slot string) string {
	return fmt.Sprintf("%d|%s|%s", barberID, date, slot)
}

func excKey(seriesID uint, date string) string {
	return fmt.Sprintf("%d|%s", seriesID, date)
}

func (r *fakeRepo) addException(seriesID uint, date string) {
	r.exceptions[excKey(seriesID, date)] = true
}

func (r *fakeRepo) ListActiveSeries(_ context.Context, today string) ([]models.Series, error) {
	if r.failList {
		return nil, errors.New("connection refused")
	}

	var out []models.Series
	for _, s := range r.series {
		if !s.Active {
			continue
		}
		if s.EndDate != nil && *s.EndDate != "" && *s.EndDate <= today {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) GetSeriesByID(_ context.Context, id uint) (*models.Series, error) {
	for i := range r.series {
		if r.series[i].ID == id {
			return &r.series[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) UpdateLastGeneratedDate(_ context.Context, seriesID uint, date string) error {
	if cur, ok := r.lastGenerated[seriesID]; !ok || cur < date {
		r.lastGenerated[seriesID] = date
	}
	return nil
}

func (r *fakeRepo) ListAppointmentDates(
	_ context.Context,
	barberID uint,
	timeSlot string,
	dates []string,
) (map[string]bool, error) {

	existing := make(map[string]bool)
	for _, d := range dates {
		if _, ok := r.appointments[slotKey(barberID, d, timeSlot)]; ok {
			existing[d] = true
		}
	}
	return existing, nil
}

func (r *fakeRepo) BulkInsertAppointments(
	_ context.Context,
	appointments []models.Appointment,
) (int64, error) {

	if len(appointments) > 0 && appointments[0].SeriesID != nil &&
		*appointments[0].SeriesID == r.failInsertForSeries && r.failInsertForSeries != 0 {
		return 0, errors.New("storage error during insert")
	}

	var created int64
	for _, ap := range appointments {
		key := slotKey(ap.BarberID, ap.Date, ap.TimeSlot)
		if _, ok := r.appointments[key]; ok {
			continue // conflito de unicidade: linha rejeitada
		}
		r.appointments[key] = ap
		created++
	}
	return created, nil
}

func (r *fakeRepo) ListExceptionDates(
	_ context.Context,
	seriesID uint,
	dates []string,
) (map[string]bool, error) {

	excluded := make(map[string]bool)
	for _, d := range dates {
		if r.exceptions[excKey(seriesID, d)] {
			excluded[d] = true
		}
	}
	return excluded, nil
}

func (r *fakeRepo) CreateException(_ context.Context, exc *models.SeriesException) error {
	r.addException(exc.SeriesID, exc.Date)
	return nil
}

func (r *fakeRepo) ReclassifyPauseAppointments(_ context.Context, _ string) (int64, error) {
	return r.pauseMatches, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
