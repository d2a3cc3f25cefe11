// Package report builds the rows behind the daily time chart and the
// burndown view. Everything here is a pure function over data the store
// already aggregated; nothing in this package writes.
package report

import (
	"time"

	"timetrack/pkg/db"
)

const (
	boundLayout = "2006-01-02 15:04:05"
	dayLayout   = "2006-01-02"
)

// DayBounds expands two dates into the closed range the ledger query binds:
// local midnight of the first day through 23:59:59 of the last.
func DayBounds(start, end time.Time) (string, string) {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	return first.Format(boundLayout), last.Format(boundLayout)
}

// Row is one day of the report chart.
type Row struct {
	Day          string
	TotalSeconds int
	Minutes      int
}

// Rows converts day totals into display rows with minute values.
func Rows(totals []*db.DayTotal) []Row {
	rows := make([]Row, 0, len(totals))

	for _, total := range totals {
		rows = append(rows, Row{
			Day:          total.Day,
			TotalSeconds: total.TotalSeconds,
			Minutes:      total.TotalSeconds / 60,
		})
	}

	return rows
}

// Point is one day of a burndown series: how many tasks remain open.
type Point struct {
	Day       string
	Remaining float64
}

// Burndown builds the ideal and actual series for a project over the given
// date range. The ideal series decays linearly from the total task count to
// zero. The actual series subtracts tasks as they complete; a task's
// completion day comes from db.TaskCompletions (latest timing day, or
// creation day if never timed).
func Burndown(completions []*db.TaskCompletion, start, end time.Time) (ideal, actual []Point) {
	days := enumerateDays(start, end)
	if len(days) == 0 {
		return nil, nil
	}

	total := float64(len(completions))

	ideal = make([]Point, 0, len(days))
	actual = make([]Point, 0, len(days))

	for i, day := range days {
		remaining := total
		if len(days) > 1 {
			remaining = total * float64(len(days)-1-i) / float64(len(days)-1)
		}

		ideal = append(ideal, Point{Day: day, Remaining: remaining})

		done := 0

		for _, completion := range completions {
			if completion.Completed && completion.Day <= day {
				done++
			}
		}

		actual = append(actual, Point{Day: day, Remaining: total - float64(done)})
	}

	return ideal, actual
}

// enumerateDays lists every calendar day of the closed range as YYYY-MM-DD.
func enumerateDays(start, end time.Time) []string {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	days := []string{}

	for current := first; !current.After(last); current = current.AddDate(0, 0, 1) {
		days = append(days, current.Format(dayLayout))
	}

	return days
}
