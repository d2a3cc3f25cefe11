package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"timetrack/pkg/timer"
)

const timestampDisplay = "2006-01-02 15:04:05"

// ProjectsContent implements tview.TableContent over the project list, so
// the table re-reads the controller's slice on every draw.
type ProjectsContent struct {
	tview.TableContentReadOnly
	controller *Controller
}

// GetCell returns the cell at the given position or nil if no cell.
func (p *ProjectsContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return headerCell("project").SetExpansion(2)
		case 1:
			return headerCell("hourly cost").SetExpansion(1)
		case 2:
			return headerCell("created").SetExpansion(1)
		}

		return nil
	}

	projects := p.controller.projects
	if row-1 >= len(projects) {
		return nil
	}

	project := projects[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(project.Name).SetExpansion(2).SetReference(project)
	case 1:
		return tview.NewTableCell(fmt.Sprintf("%.2f", project.HourlyCost)).SetExpansion(1)
	case 2:
		created := ""
		if project.CreatedAt != nil && !project.CreatedAt.IsZero() {
			created = project.CreatedAt.Format("2006-01-02")
		}

		return tview.NewTableCell(created).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (p *ProjectsContent) GetRowCount() int {
	return len(p.controller.projects) + 1
}

// GetColumnCount returns the number of columns in the table.
func (p *ProjectsContent) GetColumnCount() int {
	return 3
}

// TasksContent renders the task list with derived totals and the live
// stopwatch of the running task.
type TasksContent struct {
	tview.TableContentReadOnly
	controller *Controller
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TasksContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return headerCell("task").SetExpansion(2)
		case 1:
			return headerCell("done").SetExpansion(1)
		case 2:
			return headerCell("tracked").SetExpansion(1)
		case 3:
			return headerCell("timer").SetExpansion(1)
		}

		return nil
	}

	totals := t.controller.totals
	if row-1 >= len(totals) {
		return nil
	}

	total := totals[row-1]

	switch col {
	case 0:
		name := total.Name
		if total.Completed {
			name = fmt.Sprintf("[gray]%s", name)
		}

		return tview.NewTableCell(name).SetExpansion(2).SetReference(total)
	case 1:
		done := ""
		if total.Completed {
			done = "[green]✓"
		}

		return tview.NewTableCell(done).SetExpansion(1)
	case 2:
		return tview.NewTableCell(timer.FormatTotalTime(total.TotalSeconds)).SetExpansion(1)
	case 3:
		return tview.NewTableCell(t.timerCell(total.ID)).SetExpansion(1)
	}

	return nil
}

func (t *TasksContent) timerCell(taskID int64) string {
	timers := t.controller.timers
	if timers == nil {
		return ""
	}

	switch timers.State(taskID) {
	case timer.StateRunning:
		return fmt.Sprintf("[green]▶ %s", timers.Display(taskID))
	case timer.StatePaused:
		return fmt.Sprintf("[yellow]‖ %s", timers.Display(taskID))
	case timer.StateIdle:
	}

	return ""
}

// GetRowCount returns the number of rows in the table.
func (t *TasksContent) GetRowCount() int {
	return len(t.controller.totals) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TasksContent) GetColumnCount() int {
	return 4
}

// TimingsContent renders the ledger rows of one task, most recent first.
type TimingsContent struct {
	tview.TableContentReadOnly
	controller *Controller
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TimingsContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return headerCell("recorded").SetExpansion(1)
		case 1:
			return headerCell("seconds").SetExpansion(1)
		case 2:
			return headerCell("duration").SetExpansion(1)
		}

		return nil
	}

	timings := t.controller.timings
	if row-1 >= len(timings) {
		return nil
	}

	timing := timings[row-1]

	switch col {
	case 0:
		recorded := ""
		if timing.CreatedAt != nil && !timing.CreatedAt.IsZero() {
			recorded = timing.CreatedAt.Format(timestampDisplay)
		}

		return tview.NewTableCell(recorded).SetExpansion(1).SetReference(timing)
	case 1:
		return tview.NewTableCell(fmt.Sprintf("%d", timing.Seconds)).SetExpansion(1)
	case 2:
		return tview.NewTableCell(timer.FormatTotalTime(timing.Seconds)).
			SetTextColor(tcell.ColorGreen).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *TimingsContent) GetRowCount() int {
	return len(t.controller.timings) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TimingsContent) GetColumnCount() int {
	return 3
}
