package db_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"timetrack/pkg/db"
)

func getDB(assert *assert.Assertions) (*db.Database, string) {
	tempFile, err := os.CreateTemp("", "test_timetrack*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	return database, tempFile.Name()
}

func addProjectAndTask(assert *assert.Assertions, database *db.Database) (*db.Project, *db.Task) {
	project, err := database.NewProject(context.Background(), "website relaunch", 85.0)
	assert.Nil(err)

	task, err := database.NewTask(context.Background(), project.ID, "draft landing page")
	assert.Nil(err)

	return project, task
}

// backdateTiming inserts a timing with an explicit created_at, which the
// exported API deliberately does not allow.
func backdateTiming(assert *assert.Assertions, filename string, taskID int64, seconds int, at string) {
	conn, err := sql.Open("sqlite3", filename)
	assert.Nil(err)

	defer conn.Close()

	_, err = conn.Exec(
		`INSERT INTO timings (task_id, time, created_at) VALUES (?, ?, ?)`,
		taskID, seconds, at,
	)
	assert.Nil(err)
}

func TestNewDatabaseBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
}

func TestNewDatabaseIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)

	err := database.Close()
	assert.Nil(err)

	database2, err := db.NewDatabase(context.Background(), filename)
	assert.NotNil(database2)
	assert.Nil(err)
}

func TestNewProject(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)

	project, err := database.NewProject(context.Background(), "side gig", 40.5)
	assert.Nil(err)
	assert.Equal("side gig", project.Name)
	assert.Equal(40.5, project.HourlyCost)
	assert.NotNil(project.CreatedAt)
	assert.False(project.CreatedAt.IsZero())

	projects, err := database.Projects(context.Background())
	assert.Nil(err)
	assert.Len(projects, 1)
	assert.Equal(project.ID, projects[0].ID)
}

func TestProjectNotFound(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)

	project, err := database.Project(context.Background(), 12345)
	assert.Nil(project)
	assert.True(errors.Is(err, db.ErrNotFound))
}

func TestDeleteProjectCascades(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	project, task := addProjectAndTask(assert, database)

	_, err := database.AddTiming(context.Background(), task.ID, 90)
	assert.Nil(err)

	err = database.DeleteProject(context.Background(), project.ID)
	assert.Nil(err)

	_, err = database.Project(context.Background(), project.ID)
	assert.True(errors.Is(err, db.ErrNotFound))

	_, err = database.Task(context.Background(), task.ID)
	assert.True(errors.Is(err, db.ErrNotFound))

	timings, err := database.TimingsByTask(context.Background(), task.ID)
	assert.Nil(err)
	assert.Empty(timings)
}

func TestSetTaskCompleted(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	assert.False(task.Completed)

	err := database.SetTaskCompleted(context.Background(), task.ID, true)
	assert.Nil(err)

	task2, err := database.Task(context.Background(), task.ID)
	assert.Nil(err)
	assert.True(task2.Completed)

	err = database.SetTaskCompleted(context.Background(), 9999, true)
	assert.True(errors.Is(err, db.ErrNotFound))
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	project, task := addProjectAndTask(assert, database)

	_, err := database.AddTiming(context.Background(), task.ID, 30)
	assert.Nil(err)

	err = database.DeleteTask(context.Background(), task.ID)
	assert.Nil(err)

	totals, err := database.TaskTotals(context.Background(), project.ID)
	assert.Nil(err)
	assert.Empty(totals)
}

func TestAddTiming(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	timing, err := database.AddTiming(context.Background(), task.ID, 42)
	assert.Nil(err)
	assert.Equal(task.ID, timing.TaskID)
	assert.Equal(42, timing.Seconds)
	assert.NotNil(timing.CreatedAt)

	// the just-appended row is visible to an immediately following read
	timings, err := database.TimingsByTask(context.Background(), task.ID)
	assert.Nil(err)
	assert.Len(timings, 1)
	assert.Equal(42, timings[0].Seconds)
}

func TestAddTimingNegative(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	timing, err := database.AddTiming(context.Background(), task.ID, -1)
	assert.Nil(timing)
	assert.NotNil(err)
}

func TestAddTimingDeletedTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	err := database.DeleteTask(context.Background(), task.ID)
	assert.Nil(err)

	// foreign keys are on, so the append is rejected rather than orphaned
	timing, err := database.AddTiming(context.Background(), task.ID, 10)
	assert.Nil(timing)
	assert.NotNil(err)
}

func TestDeleteTimingIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	timing, err := database.AddTiming(context.Background(), task.ID, 15)
	assert.Nil(err)

	err = database.DeleteTiming(context.Background(), timing.ID)
	assert.Nil(err)

	err = database.DeleteTiming(context.Background(), timing.ID)
	assert.Nil(err)
}

func TestTimingsByTaskOrder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)
	_, task := addProjectAndTask(assert, database)

	backdateTiming(assert, filename, task.ID, 100, "2026-02-01 09:00:00")
	backdateTiming(assert, filename, task.ID, 200, "2026-02-02 09:00:00")
	backdateTiming(assert, filename, task.ID, 300, "2026-02-03 09:00:00")

	timings, err := database.TimingsByTask(context.Background(), task.ID)
	assert.Nil(err)
	assert.Len(timings, 3)

	// most recent first
	assert.Equal(300, timings[0].Seconds)
	assert.Equal(200, timings[1].Seconds)
	assert.Equal(100, timings[2].Seconds)
}

func TestTaskTotals(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, _ := getDB(assert)
	project, task1 := addProjectAndTask(assert, database)

	task2, err := database.NewTask(context.Background(), project.ID, "set up analytics")
	assert.Nil(err)

	_, err = database.AddTiming(context.Background(), task1.ID, 60)
	assert.Nil(err)

	_, err = database.AddTiming(context.Background(), task1.ID, 120)
	assert.Nil(err)

	totals, err := database.TaskTotals(context.Background(), project.ID)
	assert.Nil(err)
	assert.Len(totals, 2)

	assert.Equal(task1.ID, totals[0].ID)
	assert.Equal(180, totals[0].TotalSeconds)

	// a task with no timings still shows up, with a zero total
	assert.Equal(task2.ID, totals[1].ID)
	assert.Equal(0, totals[1].TotalSeconds)
}

func TestDayTotals(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)
	project, task := addProjectAndTask(assert, database)

	backdateTiming(assert, filename, task.ID, 3600, "2026-03-01 10:00:00")
	backdateTiming(assert, filename, task.ID, 1800, "2026-03-02 11:30:00")
	backdateTiming(assert, filename, task.ID, 900, "2026-03-03 23:59:59")

	totals, err := database.DayTotals(
		context.Background(), project.ID,
		"2026-03-01 00:00:00", "2026-03-03 23:59:59",
	)
	assert.Nil(err)
	assert.Len(totals, 3)

	assert.Equal("2026-03-01", totals[0].Day)
	assert.Equal(3600, totals[0].TotalSeconds)
	assert.Equal("2026-03-02", totals[1].Day)
	assert.Equal(1800, totals[1].TotalSeconds)
	assert.Equal("2026-03-03", totals[2].Day)
	assert.Equal(900, totals[2].TotalSeconds)
}

func TestDayTotalsRange(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)
	project, task := addProjectAndTask(assert, database)

	backdateTiming(assert, filename, task.ID, 600, "2026-03-01 10:00:00")
	backdateTiming(assert, filename, task.ID, 1200, "2026-03-05 10:00:00")

	// the range is closed on both ends; the row outside it is excluded
	totals, err := database.DayTotals(
		context.Background(), project.ID,
		"2026-03-01 00:00:00", "2026-03-01 23:59:59",
	)
	assert.Nil(err)
	assert.Len(totals, 1)
	assert.Equal(600, totals[0].TotalSeconds)
}

func TestTaskCompletions(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, filename := getDB(assert)
	project, task1 := addProjectAndTask(assert, database)

	task2, err := database.NewTask(context.Background(), project.ID, "write copy")
	assert.Nil(err)

	backdateTiming(assert, filename, task1.ID, 300, "2026-04-01 09:00:00")
	backdateTiming(assert, filename, task1.ID, 300, "2026-04-03 09:00:00")

	err = database.SetTaskCompleted(context.Background(), task1.ID, true)
	assert.Nil(err)

	completions, err := database.TaskCompletions(context.Background(), project.ID)
	assert.Nil(err)
	assert.Len(completions, 2)

	// completion day is the day of the most recent timing
	assert.Equal(task1.ID, completions[0].TaskID)
	assert.True(completions[0].Completed)
	assert.Equal("2026-04-03", completions[0].Day)

	// a never-timed task falls back to its creation day
	assert.Equal(task2.ID, completions[1].TaskID)
	assert.False(completions[1].Completed)
}
