package series

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-series-engine/internal/models"
)

func TestMaterialize_PartitionsCandidates(t *testing.T) {
	s := mondaySeries(1, 10)
	repo := newFakeRepo(s)

	// uma data já materializada, uma com exceção
	repo.appointments[slotKey(10, "2024-01-08", "10:00")] = models.Appointment{}
	repo.addException(1, "2024-01-15")

	uc := NewMaterializeBatch(repo)
	res, err := uc.Execute(context.Background(), &s, []string{
		"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.ExceptionSkipped)
}

func TestMaterialize_EmptyDates(t *testing.T) {
	s := mondaySeries(1, 10)
	repo := newFakeRepo(s)

	uc := NewMaterializeBatch(repo)
	res, err := uc.Execute(context.Background(), &s, nil)
	require.NoError(t, err)

	assert.Zero(t, res.Created)
	assert.Zero(t, res.Skipped)
	assert.Zero(t, res.ExceptionSkipped)
}

func TestMaterialize_RowsCarrySeriesData(t *testing.T) {
	s := mondaySeries(1, 10)
	s.CustomerPhone = "+55 11 99999-0000"
	s.Notes = "cliente fixo"

	repo := newFakeRepo(s)

	uc := NewMaterializeBatch(repo)
	_, err := uc.Execute(context.Background(), &s, []string{"2024-01-01"})
	require.NoError(t, err)

	ap, ok := repo.appointments[slotKey(10, "2024-01-01", "10:00")]
	require.True(t, ok)

	assert.Equal(t, s.CustomerName, ap.CustomerName)
	assert.Equal(t, s.CustomerPhone, ap.CustomerPhone)
	assert.Equal(t, s.Notes, ap.Notes)
	assert.Equal(t, "scheduled", ap.Status)
	require.NotNil(t, ap.SeriesID)
	assert.Equal(t, uint(1), *ap.SeriesID)
	assert.False(t, ap.IsPause)
}

func TestMaterialize_PauseSeriesMarksRows(t *testing.T) {
	s := mondaySeries(2, 10)
	s.CustomerName = "Pausa almoço"
	s.TimeSlot = "12:00"

	repo := newFakeRepo(s)

	uc := NewMaterializeBatch(repo)
	_, err := uc.Execute(context.Background(), &s, []string{"2024-01-01"})
	require.NoError(t, err)

	ap := repo.appointments[slotKey(10, "2024-01-01", "12:00")]
	assert.True(t, ap.IsPause)
}

func TestMaterialize_ConcurrentConflictCountsAsSkipped(t *testing.T) {
	s := mondaySeries(1, 10)
	repo := newFakeRepo(s)

	uc := NewMaterializeBatch(repo)

	// janela já coberta por uma execução anterior: tudo vira skipped
	dates := []string{"2024-01-01", "2024-01-08"}
	_, err := uc.Execute(context.Background(), &s, dates)
	require.NoError(t, err)

	res, err := uc.Execute(context.Background(), &s, dates)
	require.NoError(t, err)

	assert.Zero(t, res.Created)
	assert.Equal(t, 2, res.Skipped)
}
