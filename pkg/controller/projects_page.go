package controller

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/db"
)

func (c *Controller) getProjectsGrid() *tview.Grid {
	header := c.getHeader(pageProjects, "Projects", c.projectEvents)

	c.projectsTable = tview.NewTable().SetBorders(false)
	c.projectsTable.SetContent(&ProjectsContent{controller: c})
	c.projectsTable.SetSelectable(true, false)
	c.projectsTable.SetSelectionChangedFunc(c.setCurrentProject)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.projectsTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) reloadProjects() {
	projects, err := c.db.Projects(c.ctx)
	if err != nil {
		// degrade to an empty list; the empty state is the error state
		log.Warn().Err(err).Msg("error loading projects")

		projects = []*db.Project{}
	}

	c.projects = projects
}

// when the row selection changes, update the selected Project.
func (c *Controller) setCurrentProject(row, col int) {
	if idx := row - 1; idx >= 0 && idx < len(c.projects) {
		c.selectedProject = c.projects[idx]
	} else {
		c.selectedProject = nil
	}
}

func (c *Controller) showProjects() {
	c.activeEvents = c.projectEvents
	c.app.SetInputCapture(c.handleKeys)

	if len(c.projects) > 0 {
		row, _ := c.projectsTable.GetSelection()
		if row < 1 {
			row = 1
		}

		// keep the selection in bounds after a delete
		if row > len(c.projects) {
			row = len(c.projects)
		}

		c.projectsTable.Select(row, 0).SetFixed(1, 0)
		c.setCurrentProject(row, 0)
	} else {
		c.selectedProject = nil
	}

	c.pages.SwitchToPage(pageName(pageProjects))
	c.app.SetFocus(c.projectsTable)
}

func (c *Controller) openSelectedProject() {
	if c.selectedProject == nil {
		return
	}

	// each visit gets a fresh screen-scoped timer set
	c.timers = c.newTimerSet()

	c.reloadTasks()
	c.setHeaderTitle(pageTasks, fmt.Sprintf("Tasks - %s", c.selectedProject.Name))
	c.showTasks()
}

func (c *Controller) confirmDeleteProject() {
	project := c.selectedProject
	if project == nil {
		return
	}

	message := fmt.Sprintf(
		"Delete project '%s' and all of its tasks and timings? This cannot be undone.",
		project.Name,
	)

	c.showConfirm(message, "Delete", func() {
		if err := c.db.DeleteProject(c.ctx, project.ID); err != nil {
			log.Err(err).Msgf("error deleting project '%s'", project.Name)
			c.showNotice(fmt.Sprintf("Could not delete project '%s': %s", project.Name, err))

			return
		}

		c.reloadProjects()
		c.showProjects()
	})
}
