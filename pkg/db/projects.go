package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NewProject creates a project and returns it with its assigned id and
// creation timestamp.
func (d *Database) NewProject(ctx context.Context, name string, hourlyCost float64) (*Project, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO projects (name, hourly_cost) VALUES (?, ?)`,
		name, hourlyCost,
	)
	if err != nil {
		return nil, fmt.Errorf("error adding project '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error getting id of new project '%s': %w", name, err)
	}

	return d.Project(ctx, id)
}

// Project returns one project by id, or ErrNotFound.
func (d *Database) Project(ctx context.Context, id int64) (*Project, error) {
	row := d.conn.QueryRowContext(ctx,
		`SELECT project_id, name, hourly_cost, created_at FROM projects WHERE project_id = ?`,
		id,
	)

	var project Project

	var createdAt string

	err := row.Scan(&project.ID, &project.Name, &project.HourlyCost, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("error loading project %d: %w", id, err)
	}

	project.CreatedAt = parseTimestamp(createdAt)

	return &project, nil
}

// Projects returns all projects ordered by creation time.
func (d *Database) Projects(ctx context.Context) ([]*Project, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT project_id, name, hourly_cost, created_at FROM projects ORDER BY created_at, project_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}

	for rows.Next() {
		var project Project

		var createdAt string

		if err := rows.Scan(&project.ID, &project.Name, &project.HourlyCost, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning project: %w", err)
		}

		project.CreatedAt = parseTimestamp(createdAt)
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning projects: %w", err)
	}

	return projects, nil
}

// DeleteProject removes a project together with its tasks and timings.
// Children go first (timings, then tasks, then the project) to satisfy the
// foreign keys. Destructive and not reversible; callers confirm with the
// user before getting here.
func (d *Database) DeleteProject(ctx context.Context, id int64) error {
	_, err := d.conn.ExecContext(ctx,
		`DELETE FROM timings WHERE task_id IN (SELECT task_id FROM tasks WHERE project_id = ?)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("error deleting timings of project %d: %w", id, err)
	}

	if _, err := d.conn.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting tasks of project %d: %w", id, err)
	}

	if _, err := d.conn.ExecContext(ctx, `DELETE FROM projects WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting project %d: %w", id, err)
	}

	return nil
}
