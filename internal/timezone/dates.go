package timezone

import (
	"fmt"
	"time"
)

// --------------------------------------------------
// Aritmética de datas do motor de séries
// --------------------------------------------------
//
// Todas as datas de séries circulam como "2006-01-02" no calendário local
// da barbearia. Converter para UTC antes de somar dias desloca a data em
// um dia perto da meia-noite ou na virada do horário de verão; por isso
// toda conta ancora o horário em meio-dia local antes de operar.

const DateLayout = "2006-01-02"

// FormatDateLocal renders the local calendar day of t, never the UTC day.
func FormatDateLocal(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDateNoon parses "YYYY-MM-DD" anchored at local noon, so that later
// day arithmetic never crosses a DST transition into another calendar day.
func ParseDateNoon(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

// AddDaysLocal returns a time whose local calendar day is exactly n days
// after t's local calendar day, regardless of DST transitions crossed.
// n pode ser negativo.
func AddDaysLocal(t time.Time, n int, loc *time.Location) time.Time {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+n, 12, 0, 0, 0, loc)
}

// TodayLocal é a data-calendário de hoje no fuso da barbearia.
func TodayLocal(loc *time.Location) string {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	return time.Now().In(loc).Format(DateLayout)
}
