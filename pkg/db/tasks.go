package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NewTask creates a task under the given project.
func (d *Database) NewTask(ctx context.Context, projectID int64, name string) (*Task, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO tasks (project_id, name) VALUES (?, ?)`,
		projectID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("error adding task '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error getting id of new task '%s': %w", name, err)
	}

	return d.Task(ctx, id)
}

// Task returns one task by id, or ErrNotFound.
func (d *Database) Task(ctx context.Context, id int64) (*Task, error) {
	row := d.conn.QueryRowContext(ctx,
		`SELECT task_id, project_id, name, completed, created_at FROM tasks WHERE task_id = ?`,
		id,
	)

	var task Task

	var createdAt string

	err := row.Scan(&task.ID, &task.ProjectID, &task.Name, &task.Completed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("error loading task %d: %w", id, err)
	}

	task.CreatedAt = parseTimestamp(createdAt)

	return &task, nil
}

// SetTaskCompleted flips the completion flag of a task. The flag is
// independent of any timer state.
func (d *Database) SetTaskCompleted(ctx context.Context, id int64, completed bool) error {
	result, err := d.conn.ExecContext(ctx,
		`UPDATE tasks SET completed = ? WHERE task_id = ?`,
		completed, id,
	)
	if err != nil {
		return fmt.Errorf("error updating task %d: %w", id, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteTask removes a task and its timings.
func (d *Database) DeleteTask(ctx context.Context, id int64) error {
	if _, err := d.conn.ExecContext(ctx, `DELETE FROM timings WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting timings of task %d: %w", id, err)
	}

	if _, err := d.conn.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting task %d: %w", id, err)
	}

	return nil
}

// TaskTotals returns every task of a project joined with its total tracked
// seconds, ordered by task creation time. Tasks without timings report a
// total of zero.
func (d *Database) TaskTotals(ctx context.Context, projectID int64) ([]*TaskTotal, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT t.task_id, t.name, t.completed, t.created_at AS task_created_at,
		        COALESCE(SUM(ti.time),0) AS timed_until_now
		   FROM tasks t
		   LEFT JOIN timings ti ON t.task_id = ti.task_id
		  WHERE t.project_id = ?
		  GROUP BY t.task_id, t.name, t.completed, t.created_at
		  ORDER BY t.created_at, t.task_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading task totals for project %d: %w", projectID, err)
	}
	defer rows.Close()

	totals := []*TaskTotal{}

	for rows.Next() {
		var total TaskTotal

		var createdAt string

		err := rows.Scan(&total.ID, &total.Name, &total.Completed, &createdAt, &total.TotalSeconds)
		if err != nil {
			return nil, fmt.Errorf("error scanning task total: %w", err)
		}

		total.ProjectID = projectID
		total.CreatedAt = parseTimestamp(createdAt)
		totals = append(totals, &total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning task totals: %w", err)
	}

	return totals, nil
}

// TaskCompletions returns, per task of a project, the completion flag and
// the day the task last saw activity (latest timing, or creation day when
// never timed). The burndown view builds its actual series from this.
func (d *Database) TaskCompletions(ctx context.Context, projectID int64) ([]*TaskCompletion, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT t.task_id, t.completed,
		        DATE(COALESCE(MAX(ti.created_at), t.created_at)) AS day
		   FROM tasks t
		   LEFT JOIN timings ti ON t.task_id = ti.task_id
		  WHERE t.project_id = ?
		  GROUP BY t.task_id, t.completed, t.created_at
		  ORDER BY t.created_at, t.task_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading task completions for project %d: %w", projectID, err)
	}
	defer rows.Close()

	completions := []*TaskCompletion{}

	for rows.Next() {
		var completion TaskCompletion

		if err := rows.Scan(&completion.TaskID, &completion.Completed, &completion.Day); err != nil {
			return nil, fmt.Errorf("error scanning task completion: %w", err)
		}

		completions = append(completions, &completion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning task completions: %w", err)
	}

	return completions, nil
}
