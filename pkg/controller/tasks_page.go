package controller

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/db"
	"timetrack/pkg/timer"
)

func (c *Controller) getTasksGrid() *tview.Grid {
	header := c.getHeader(pageTasks, "Tasks", c.taskEvents)

	c.tasksTable = tview.NewTable().SetBorders(false)
	c.tasksTable.SetContent(&TasksContent{controller: c})
	c.tasksTable.SetSelectable(true, false)
	c.tasksTable.SetSelectionChangedFunc(c.setCurrentTask)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.tasksTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// reloadTasks re-queries the task totals so derived values reflect the
// latest persisted state. Runs after every mutation and every running-timer
// change; errors degrade to an empty list.
func (c *Controller) reloadTasks() {
	if c.selectedProject == nil {
		return
	}

	totals, err := c.db.TaskTotals(c.ctx, c.selectedProject.ID)
	if err != nil {
		log.Warn().Err(err).Msgf("error loading tasks for project '%s'", c.selectedProject.Name)

		totals = []*db.TaskTotal{}
	}

	c.totals = totals
}

// when the row selection changes, update the selected Task.
func (c *Controller) setCurrentTask(row, col int) {
	if idx := row - 1; idx >= 0 && idx < len(c.totals) {
		c.selectedTask = c.totals[idx]
	} else {
		c.selectedTask = nil
	}
}

func (c *Controller) showTasks() {
	c.activeEvents = c.taskEvents
	c.app.SetInputCapture(c.handleKeys)

	if len(c.totals) > 0 {
		row, _ := c.tasksTable.GetSelection()
		if row < 1 {
			row = 1
		}

		if row > len(c.totals) {
			row = len(c.totals)
		}

		c.tasksTable.Select(row, 0).SetFixed(1, 0)
		c.setCurrentTask(row, 0)
	} else {
		c.selectedTask = nil
	}

	c.pages.SwitchToPage(pageName(pageTasks))
	c.app.SetFocus(c.tasksTable)
}

func (c *Controller) startSelectedTimer() {
	task := c.selectedTask
	if task == nil || c.timers == nil {
		return
	}

	c.timers.Start(task.ID, task.Name)
}

func (c *Controller) toggleSelectedTimer() {
	if c.selectedTask == nil || c.timers == nil {
		return
	}

	c.timers.Toggle(c.selectedTask.ID)
}

func (c *Controller) stopSelectedTimer() {
	if c.selectedTask == nil || c.timers == nil {
		return
	}

	c.timers.Stop(c.selectedTask.ID)
}

func (c *Controller) toggleSelectedCompleted() {
	task := c.selectedTask
	if task == nil {
		return
	}

	if err := c.db.SetTaskCompleted(c.ctx, task.ID, !task.Completed); err != nil {
		log.Err(err).Msgf("error toggling completion of task '%s'", task.Name)
		c.showNotice(fmt.Sprintf("Could not update task '%s': %s", task.Name, err))

		return
	}

	c.reloadTasks()
}

func (c *Controller) confirmDeleteTask() {
	task := c.selectedTask
	if task == nil {
		return
	}

	if c.timers != nil && c.timers.Running() == task.ID {
		c.showNotice(fmt.Sprintf("Stop the timer for '%s' before deleting it.", task.Name))

		return
	}

	message := fmt.Sprintf("Delete task '%s' and its recorded timings?", task.Name)

	c.showConfirm(message, "Delete", func() {
		if err := c.db.DeleteTask(c.ctx, task.ID); err != nil {
			log.Err(err).Msgf("error deleting task '%s'", task.Name)
			c.showNotice(fmt.Sprintf("Could not delete task '%s': %s", task.Name, err))

			return
		}

		c.reloadTasks()
		c.showTasks()
	})
}

// leaveTasks navigates back to the project list. With a timer active the
// user must confirm first: leaving discards the unpersisted elapsed time,
// and that is presented as the data loss it is.
func (c *Controller) leaveTasks() {
	if c.timers != nil && c.timers.Active() {
		running := c.timers.Running()

		elapsed := timer.FormatClock(c.timers.Elapsed(running))
		message := fmt.Sprintf(
			"A timer is still active (%s on the clock). Leave and discard the unsaved time?",
			elapsed,
		)

		c.showConfirm(message, "Discard", func() {
			c.timers.DiscardRunning()
			c.closeTasks()
		})

		return
	}

	c.closeTasks()
}

// closeTasks tears the task screen down: every pending tick is cancelled so
// a stale timer cannot keep reporting to a dead view.
func (c *Controller) closeTasks() {
	if c.timers != nil {
		c.timers.Close()
		c.timers = nil
	}

	c.reloadProjects()
	c.showProjects()
}
