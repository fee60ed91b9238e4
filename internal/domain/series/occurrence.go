package series

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-series-engine/internal/models"
	"github.com/BruksfildServices01/barber-series-engine/internal/timezone"
)

// ===============================
// Geração de ocorrências
// ===============================
//
// Função pura: não consulta repositório nem relógio. Quem chama decide a
// janela e filtra datas já materializadas ou com exceção.

// Occurrences computes the candidate calendar dates of a series starting
// at fromDate (inclusive): the first occurrence of the series' weekday on
// or after max(fromDate, StartDate), stepping by exactly 7 local days,
// stopping before fromDate+weeks*7 and never after EndDate (when set).
//
// Janela vazia (início depois da janela, fim antes do início) retorna
// lista vazia, não erro.
func Occurrences(
	s *models.Series,
	fromDate string,
	weeks int,
	loc *time.Location,
) ([]string, error) {

	if weeks <= 0 {
		return nil, fmt.Errorf("series %d: invalid look-ahead of %d weeks", s.ID, weeks)
	}

	anchor, err := timezone.ParseDateNoon(s.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("series %d: start_date: %w", s.ID, err)
	}

	from, err := timezone.ParseDateNoon(fromDate, loc)
	if err != nil {
		return nil, fmt.Errorf("series %d: from: %w", s.ID, err)
	}

	// Janela meia-aberta [from, from+weeks*7).
	windowEnd := timezone.AddDaysLocal(from, weeks*7, loc)

	var seriesEnd *time.Time
	if s.EndDate != nil && *s.EndDate != "" {
		e, err := timezone.ParseDateNoon(*s.EndDate, loc)
		if err != nil {
			return nil, fmt.Errorf("series %d: end_date: %w", s.ID, err)
		}
		seriesEnd = &e
	}

	cur := from
	if anchor.After(cur) {
		cur = anchor
	}

	// Avança até o dia da semana ancorado pelo start_date.
	offset := (int(anchor.Weekday()) - int(cur.Weekday()) + 7) % 7
	if offset != 0 {
		cur = timezone.AddDaysLocal(cur, offset, loc)
	}

	var dates []string
	for cur.Before(windowEnd) {
		if seriesEnd != nil && cur.After(*seriesEnd) {
			break
		}
		dates = append(dates, timezone.FormatDateLocal(cur, loc))
		cur = timezone.AddDaysLocal(cur, 7, loc)
	}

	return dates, nil
}

// HorizonEnd é a data final da janela coberta por uma extensão: o novo
// last_generated_date da série.
func HorizonEnd(fromDate string, weeks int, loc *time.Location) (string, error) {
	from, err := timezone.ParseDateNoon(fromDate, loc)
	if err != nil {
		return "", err
	}
	return timezone.FormatDateLocal(timezone.AddDaysLocal(from, weeks*7, loc), loc), nil
}
