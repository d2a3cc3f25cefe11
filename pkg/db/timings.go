package db

import (
	"context"
	"fmt"
)

// AddTiming appends one completed interval to the ledger. Seconds must be a
// non-negative whole number. The write fails if the task no longer exists
// (foreign key); callers treat that as the task having been deleted and
// discard the interval.
func (d *Database) AddTiming(ctx context.Context, taskID int64, seconds int) (*Timing, error) {
	if seconds < 0 {
		return nil, fmt.Errorf("error adding timing for task %d: negative duration %d", taskID, seconds)
	}

	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO timings (task_id, time) VALUES (?, ?)`,
		taskID, seconds,
	)
	if err != nil {
		return nil, fmt.Errorf("error adding timing for task %d: %w", taskID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error getting id of new timing for task %d: %w", taskID, err)
	}

	row := d.conn.QueryRowContext(ctx,
		`SELECT timing_id, task_id, time, created_at FROM timings WHERE timing_id = ?`,
		id,
	)

	var timing Timing

	var createdAt string

	if err := row.Scan(&timing.ID, &timing.TaskID, &timing.Seconds, &createdAt); err != nil {
		return nil, fmt.Errorf("error loading timing %d: %w", id, err)
	}

	timing.CreatedAt = parseTimestamp(createdAt)

	return &timing, nil
}

// DeleteTiming removes one ledger row. Deleting a row that is already gone
// is not an error; callers refresh their view afterward either way.
func (d *Database) DeleteTiming(ctx context.Context, id int64) error {
	if _, err := d.conn.ExecContext(ctx, `DELETE FROM timings WHERE timing_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting timing %d: %w", id, err)
	}

	return nil
}

// TimingsByTask returns all timings of a task, most recent first. The slice
// is a snapshot; re-issue the call for fresh data.
func (d *Database) TimingsByTask(ctx context.Context, taskID int64) ([]*Timing, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT timing_id, task_id, time, created_at FROM timings WHERE task_id = ? ORDER BY created_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading timings for task %d: %w", taskID, err)
	}
	defer rows.Close()

	timings := []*Timing{}

	for rows.Next() {
		var timing Timing

		var createdAt string

		if err := rows.Scan(&timing.ID, &timing.TaskID, &timing.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning timing: %w", err)
		}

		timing.CreatedAt = parseTimestamp(createdAt)
		timings = append(timings, &timing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning timings: %w", err)
	}

	return timings, nil
}

// DayTotals sums the tracked seconds of a project per calendar day within
// the closed range [start, end]. Both bounds are pre-formatted local
// timestamps (YYYY-MM-DD HH:MM:SS); report.DayBounds produces them.
func (d *Database) DayTotals(ctx context.Context, projectID int64, start, end string) ([]*DayTotal, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT DATE(t.created_at) AS day, SUM(t.time) AS total_time
		   FROM timings t
		   JOIN tasks tk ON t.task_id = tk.task_id
		  WHERE tk.project_id = ? AND t.created_at BETWEEN ? AND ?
		  GROUP BY day
		  ORDER BY day`,
		projectID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading day totals for project %d: %w", projectID, err)
	}
	defer rows.Close()

	totals := []*DayTotal{}

	for rows.Next() {
		var total DayTotal

		if err := rows.Scan(&total.Day, &total.TotalSeconds); err != nil {
			return nil, fmt.Errorf("error scanning day total: %w", err)
		}

		totals = append(totals, &total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning day totals: %w", err)
	}

	return totals, nil
}
