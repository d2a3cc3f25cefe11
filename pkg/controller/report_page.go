package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/db"
	"timetrack/pkg/report"
)

const (
	// reportDays is the trailing window of the daily chart.
	reportDays = 14
	// barWidth is the width of the longest chart bar in cells.
	barWidth = 40
)

func (c *Controller) getReportGrid() *tview.Grid {
	header := c.getHeader(pageReport, "Report", c.reportEvents)

	c.reportTable = tview.NewTable().SetBorders(false)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.reportTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getBurndownGrid() *tview.Grid {
	header := c.getHeader(pageBurndown, "Burndown", c.reportEvents)

	c.burndownTable = tview.NewTable().SetBorders(false)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.burndownTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// showReport renders the tracked minutes per day of the selected project
// over the trailing window as a horizontal bar chart.
func (c *Controller) showReport() {
	project := c.selectedProject
	if project == nil {
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(reportDays - 1))
	first, last := report.DayBounds(start, end)

	totals, err := c.db.DayTotals(c.ctx, project.ID, first, last)
	if err != nil {
		// an empty chart and the empty state look the same on purpose
		log.Warn().Err(err).Msgf("error loading day totals for project '%s'", project.Name)

		totals = []*db.DayTotal{}
	}

	c.fillReport(report.Rows(totals))
	c.setHeaderTitle(pageReport, fmt.Sprintf("Report - %s (last %d days)", project.Name, reportDays))

	c.activeEvents = c.reportEvents
	c.app.SetInputCapture(c.handleKeys)
	c.pages.SwitchToPage(pageName(pageReport))
	c.app.SetFocus(c.reportTable)
}

func (c *Controller) fillReport(rows []report.Row) {
	c.reportTable.Clear()

	c.reportTable.SetCell(0, 0, headerCell("day"))
	c.reportTable.SetCell(0, 1, headerCell("minutes"))
	c.reportTable.SetCell(0, 2, headerCell(""))

	maxMinutes := 0

	for _, row := range rows {
		if row.Minutes > maxMinutes {
			maxMinutes = row.Minutes
		}
	}

	for i, row := range rows {
		c.reportTable.SetCell(i+1, 0, tview.NewTableCell(row.Day))
		c.reportTable.SetCell(i+1, 1, tview.NewTableCell(fmt.Sprintf("%d", row.Minutes)))

		width := 0
		if maxMinutes > 0 {
			width = row.Minutes * barWidth / maxMinutes
		}

		bar := fmt.Sprintf("[green]%s", strings.Repeat("▇", width))
		c.reportTable.SetCell(i+1, 2, tview.NewTableCell(bar).SetExpansion(1))
	}

	if len(rows) == 0 {
		c.reportTable.SetCell(1, 0, tview.NewTableCell("no timings yet").SetTextColor(tcell.ColorGray))
	}
}

// showBurndown renders remaining-task counts, ideal vs actual, from the
// project's first day through today.
func (c *Controller) showBurndown() {
	project := c.selectedProject
	if project == nil {
		return
	}

	completions, err := c.db.TaskCompletions(c.ctx, project.ID)
	if err != nil {
		log.Warn().Err(err).Msgf("error loading completions for project '%s'", project.Name)

		completions = []*db.TaskCompletion{}
	}

	start := time.Now()
	if project.CreatedAt != nil && !project.CreatedAt.IsZero() {
		start = *project.CreatedAt
	}

	ideal, actual := report.Burndown(completions, start, time.Now())

	c.fillBurndown(ideal, actual)
	c.setHeaderTitle(pageBurndown, fmt.Sprintf("Burndown - %s", project.Name))

	c.activeEvents = c.reportEvents
	c.app.SetInputCapture(c.handleKeys)
	c.pages.SwitchToPage(pageName(pageBurndown))
	c.app.SetFocus(c.burndownTable)
}

func (c *Controller) fillBurndown(ideal, actual []report.Point) {
	c.burndownTable.Clear()

	c.burndownTable.SetCell(0, 0, headerCell("day"))
	c.burndownTable.SetCell(0, 1, headerCell("ideal"))
	c.burndownTable.SetCell(0, 2, headerCell("actual"))

	for i := range ideal {
		c.burndownTable.SetCell(i+1, 0, tview.NewTableCell(ideal[i].Day))
		c.burndownTable.SetCell(i+1, 1, tview.NewTableCell(fmt.Sprintf("%.1f", ideal[i].Remaining)))

		actualCell := tview.NewTableCell(fmt.Sprintf("%.1f", actual[i].Remaining))
		if actual[i].Remaining > ideal[i].Remaining {
			// behind the ideal line
			actualCell.SetTextColor(tcell.ColorRed)
		} else {
			actualCell.SetTextColor(tcell.ColorGreen)
		}

		c.burndownTable.SetCell(i+1, 2, actualCell)
	}

	if len(ideal) == 0 {
		c.burndownTable.SetCell(1, 0, tview.NewTableCell("no tasks yet").SetTextColor(tcell.ColorGray))
	}
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetTextColor(tcell.ColorYellow).SetSelectable(false)
}
