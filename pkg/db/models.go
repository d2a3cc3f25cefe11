package db

import "time"

// Project is a billable unit of work that owns tasks.
type Project struct {
	ID         int64
	Name       string
	HourlyCost float64
	CreatedAt  *time.Time
}

// Task is a single item of work within a project.
type Task struct {
	ID        int64
	ProjectID int64
	Name      string
	Completed bool
	CreatedAt *time.Time
}

// Timing is one completed stopwatch interval for a task. Rows are appended
// when a timer stops and deleted explicitly by the user; they are never
// updated in place.
type Timing struct {
	ID        int64
	TaskID    int64
	Seconds   int
	CreatedAt *time.Time
}

// TaskTotal is a task joined with the sum of its timing rows. TotalSeconds
// is derived by the store on every read, never persisted.
type TaskTotal struct {
	Task
	TotalSeconds int
}

// DayTotal is the tracked time of one calendar day, summed across all tasks
// of a project. Day is formatted YYYY-MM-DD.
type DayTotal struct {
	Day          string
	TotalSeconds int
}

// TaskCompletion supports the burndown view: the day a task is considered
// finished is the day of its most recent timing, or its creation day if it
// was never timed.
type TaskCompletion struct {
	TaskID    int64
	Completed bool
	Day       string
}
