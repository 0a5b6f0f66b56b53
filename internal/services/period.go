package services

import (
	"time"

	"fincoach/internal/models"
)

// CurrentPeriod returns the month-to-date period ending on today.
func CurrentPeriod(today time.Time) Period {
	d := models.CivilDate(today)
	return Period{
		Start: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   d,
	}
}

// PriorPeriod returns the full calendar month before today's month.
func PriorPeriod(today time.Time) Period {
	first := CurrentPeriod(today).Start
	return Period{
		Start: first.AddDate(0, -1, 0),
		End:   first.AddDate(0, 0, -1),
	}
}

// until is the exclusive upper bound used in range queries.
func (p Period) until() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// String renders the period as "2006-01-02..2006-01-02".
func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + ".." + p.End.Format(time.DateOnly)
}
