package controller

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/db"
)

func (c *Controller) getTimingsGrid() *tview.Grid {
	header := c.getHeader(pageTimings, "Timings", c.timingEvents)

	c.timingsTable = tview.NewTable().SetBorders(false)
	c.timingsTable.SetContent(&TimingsContent{controller: c})
	c.timingsTable.SetSelectable(true, false)
	c.timingsTable.SetSelectionChangedFunc(c.setCurrentTiming)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.timingsTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) reloadTimings() {
	if c.selectedTask == nil {
		return
	}

	timings, err := c.db.TimingsByTask(c.ctx, c.selectedTask.ID)
	if err != nil {
		log.Warn().Err(err).Msgf("error loading timings for task '%s'", c.selectedTask.Name)

		timings = []*db.Timing{}
	}

	c.timings = timings
}

// when the row selection changes, update the selected Timing.
func (c *Controller) setCurrentTiming(row, col int) {
	if idx := row - 1; idx >= 0 && idx < len(c.timings) {
		c.selectedTiming = c.timings[idx]
	} else {
		c.selectedTiming = nil
	}
}

func (c *Controller) showTimings() {
	if c.selectedTask == nil {
		return
	}

	c.reloadTimings()
	c.setHeaderTitle(pageTimings, fmt.Sprintf("Timings - %s", c.selectedTask.Name))

	c.activeEvents = c.timingEvents
	c.app.SetInputCapture(c.handleKeys)

	if len(c.timings) > 0 {
		c.timingsTable.Select(1, 0).SetFixed(1, 0)
		c.setCurrentTiming(1, 0)
	} else {
		c.selectedTiming = nil
	}

	c.pages.SwitchToPage(pageName(pageTimings))
	c.app.SetFocus(c.timingsTable)
}

func (c *Controller) deleteSelectedTiming() {
	timing := c.selectedTiming
	if timing == nil {
		return
	}

	// ledger rows may only be removed while no timer is active
	if c.timers != nil && c.timers.Active() {
		c.showNotice("Stop the running timer before deleting timings.")

		return
	}

	if err := c.db.DeleteTiming(c.ctx, timing.ID); err != nil {
		log.Err(err).Msgf("error deleting timing %d", timing.ID)
		c.showNotice(fmt.Sprintf("Could not delete the timing: %s", err))
	}

	// refresh regardless; a missing row deleted twice is still gone
	c.reloadTimings()
	c.reloadTasks()
	c.showTimings()
}
